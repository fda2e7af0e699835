package admin

import (
	"encoding/json"

	"web-travelsite/internal/activity"
	"web-travelsite/internal/auth"
	"web-travelsite/internal/content"
	"web-travelsite/internal/gallery"
	"web-travelsite/internal/listing"
	"web-travelsite/internal/shared/validate"

	"github.com/gofiber/fiber/v2"
)

const galleryEntity = "galleries"

// galleryWrite is a gallery plus the public ids of images to keep on update.
type galleryWrite struct {
	content.Gallery
	ExistingImages []string `json:"existingImages"`
}

func checkGallery(g content.Gallery) validate.Errors {
	errs := validate.Errors{}
	errs.Required("name", g.Name)
	errs.MaxLength("story", g.Story, 5000)
	return errs
}

func registerGalleries(r fiber.Router, h *handler) {
	svc := h.Galleries

	r.Get("/", func(c *fiber.Ctx) error {
		items, err := svc.List(c.Context())
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(listing.Apply(items, listing.ParseQuery(c.Queries()), listing.Galleries))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		g, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(g)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var g content.Gallery
		files, _, err := decodeWrite(c, &g)
		if err != nil {
			return h.fail(c, err)
		}
		if err := checkGallery(g).Err(); err != nil {
			return h.fail(c, err)
		}
		created, err := svc.Create(c.Context(), g, files, auth.Token(c))
		if err != nil {
			return h.fail(c, err)
		}
		h.record(c, galleryEntity, created.ID, activity.ActionCreate, fiber.StatusCreated)
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var in galleryWrite
		files, form, err := decodeWrite(c, &in)
		if err != nil {
			return h.fail(c, err)
		}
		if form != nil {
			if raw := form.Value["existingImages"]; len(raw) > 0 {
				if err := json.Unmarshal([]byte(raw[0]), &in.ExistingImages); err != nil {
					return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "existingImages must be a JSON array"))
				}
			}
		}
		if err := checkGallery(in.Gallery).Err(); err != nil {
			return h.fail(c, err)
		}

		keep := in.ExistingImages
		if keep == nil {
			keep = gallery.PublicIDs(in.Images)
		}
		updated, err := svc.Update(c.Context(), c.Params("id"), in.Gallery, keep, files, auth.Token(c))
		if err != nil {
			return h.fail(c, err)
		}
		h.record(c, galleryEntity, c.Params("id"), activity.ActionUpdate, fiber.StatusOK)
		return c.JSON(updated)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id"), auth.Token(c)); err != nil {
			return h.fail(c, err)
		}
		h.record(c, galleryEntity, c.Params("id"), activity.ActionDelete, fiber.StatusOK)
		return c.JSON(fiber.Map{"deleted": c.Params("id")})
	})

	r.Patch("/:id/status", func(c *fiber.Ctx) error {
		g, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return h.fail(c, err)
		}
		toggled, err := svc.ToggleStatus(c.Context(), g, auth.Token(c))
		if err != nil {
			return h.fail(c, err)
		}
		h.record(c, galleryEntity, g.ID, activity.ActionToggle, fiber.StatusOK)
		return c.JSON(toggled)
	})
}
