package admin

import (
	"web-travelsite/internal/activity"
	"web-travelsite/internal/auth"
	"web-travelsite/internal/content"
	"web-travelsite/internal/listing"
	"web-travelsite/internal/provider"
	"web-travelsite/internal/shared/validate"

	"github.com/gofiber/fiber/v2"
)

// rules validates one entity type and names its listing spec.
type rules[T content.Entity] struct {
	spec  listing.Spec[T]
	check func(T) validate.Errors
}

func registerResource[T content.Entity](r fiber.Router, h *handler, res *provider.Resource[T], rl rules[T]) {
	r.Get("/", func(c *fiber.Ctx) error {
		items, err := res.Fetch(c.Context())
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(listing.Apply(items, listing.ParseQuery(c.Queries()), rl.spec))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		if _, err := res.Fetch(c.Context()); err != nil {
			return h.fail(c, err)
		}
		item, ok := res.Get(c.Params("id"))
		if !ok {
			return h.fail(c, provider.ErrNotFound)
		}
		return c.JSON(item)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var item T
		files, _, err := decodeWrite(c, &item)
		if err != nil {
			return h.fail(c, err)
		}
		if err := rl.check(item).Err(); err != nil {
			return h.fail(c, err)
		}
		created, err := res.Create(c.Context(), item, files, auth.Token(c))
		if err != nil {
			return h.fail(c, err)
		}
		h.record(c, res.Name(), created.EntityID(), activity.ActionCreate, fiber.StatusCreated)
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var item T
		files, _, err := decodeWrite(c, &item)
		if err != nil {
			return h.fail(c, err)
		}
		if err := rl.check(item).Err(); err != nil {
			return h.fail(c, err)
		}
		updated, err := res.Update(c.Context(), c.Params("id"), item, files, auth.Token(c))
		if err != nil {
			return h.fail(c, err)
		}
		h.record(c, res.Name(), c.Params("id"), activity.ActionUpdate, fiber.StatusOK)
		return c.JSON(updated)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := res.Delete(c.Context(), c.Params("id"), auth.Token(c)); err != nil {
			return h.fail(c, err)
		}
		h.record(c, res.Name(), c.Params("id"), activity.ActionDelete, fiber.StatusOK)
		return c.JSON(fiber.Map{"deleted": c.Params("id")})
	})

	r.Patch("/:id/status", func(c *fiber.Ctx) error {
		id := c.Params("id")
		// The admin screen may toggle before anything was listed in this process.
		if _, ok := res.Get(id); !ok {
			if _, err := res.Fetch(c.Context()); err != nil {
				return h.fail(c, err)
			}
		}
		toggled, err := res.ToggleStatus(c.Context(), id, auth.Token(c))
		if err != nil {
			return h.fail(c, err)
		}
		h.record(c, res.Name(), id, activity.ActionToggle, fiber.StatusOK)
		return c.JSON(toggled)
	})
}

var placeRules = rules[content.Place]{
	spec: listing.Places,
	check: func(p content.Place) validate.Errors {
		errs := validate.Errors{}
		errs.Required("title", p.Title)
		errs.Required("location", p.Location)
		if p.Price < 0 || p.EntryFee < 0 {
			errs["price"] = "must not be negative"
		}
		return errs
	},
}

var packageRules = rules[content.Package]{
	spec: listing.Packages,
	check: func(p content.Package) validate.Errors {
		errs := validate.Errors{}
		errs.Required("name", p.Name)
		if p.Price < 0 {
			errs["price"] = "must not be negative"
		}
		if p.Discount < 0 || p.Discount > 100 {
			errs["discount"] = "must be between 0 and 100"
		}
		return errs
	},
}

var blogRules = rules[content.Blog]{
	spec: listing.Blogs,
	check: func(b content.Blog) validate.Errors {
		errs := validate.Errors{}
		errs.Required("title", b.Title)
		errs.Required("content", b.Content)
		return errs
	},
}

var contactRules = rules[content.Contact]{
	spec: listing.Contacts,
	check: func(ct content.Contact) validate.Errors {
		errs := validate.Errors{}
		errs.Required("name", ct.Name)
		errs.Required("email", ct.Email)
		errs.Email("email", ct.Email)
		errs.Required("message", ct.Message)
		return errs
	},
}

var reviewRules = rules[content.Review]{
	spec: listing.Reviews,
	check: func(rv content.Review) validate.Errors {
		errs := validate.Errors{}
		errs.Required("userName", rv.UserName)
		errs.Range("rating", rv.Rating, 1, 5)
		errs.Required("comment", rv.Comment)
		return errs
	},
}
