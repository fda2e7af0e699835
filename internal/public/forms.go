package public

import (
	"errors"
	"log"
	"strings"

	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/content"
	"web-travelsite/internal/seo"
	"web-travelsite/internal/shared/validate"

	"github.com/gofiber/fiber/v2"
)

const (
	maxMessage = 2000
	maxComment = 1000
)

type contactForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

func (f contactForm) validate() validate.Errors {
	errs := validate.Errors{}
	errs.Required("name", f.Name)
	errs.MaxLength("name", f.Name, 100)
	errs.Required("email", f.Email)
	errs.Email("email", f.Email)
	errs.Phone("phone", f.Phone)
	errs.Required("message", f.Message)
	errs.MinLength("message", f.Message, 10)
	errs.MaxLength("message", f.Message, maxMessage)
	return errs
}

type reviewSubmission struct {
	UserName  string `json:"userName" form:"userName"`
	Email     string `json:"email" form:"email"`
	Rating    int    `json:"rating" form:"rating"`
	Comment   string `json:"comment" form:"comment"`
	PlaceID   string `json:"placeId" form:"placeId"`
	PackageID string `json:"packageId" form:"packageId"`
	Return    string `json:"return" form:"return"`
}

func (f reviewSubmission) validate() validate.Errors {
	errs := validate.Errors{}
	errs.Required("userName", f.UserName)
	errs.Email("email", f.Email)
	errs.Range("rating", f.Rating, 1, 5)
	errs.Required("comment", f.Comment)
	errs.MaxLength("comment", f.Comment, maxComment)
	if f.PlaceID == "" && f.PackageID == "" {
		errs["target"] = "a review must be about a place or a package"
	}
	return errs
}

func (h *handler) contactPage(c *fiber.Ctx) error {
	return h.renderContact(c, fiber.StatusOK, contactForm{}, nil, false, "")
}

func (h *handler) renderContact(c *fiber.Ctx, status int, form contactForm, errs validate.Errors, sent bool, notice string) error {
	return h.render(c, status, "contact", view{
		Meta:   seo.PageMeta(h.site, "Contact us", "Talk to "+h.site.Name+" about your next trip.", "/contact", ""),
		JSONLD: seo.Script(seo.Organization(h.site)),
		Notice: notice,
		Body:   fiber.Map{"Form": form, "Errors": errs, "Sent": sent},
	})
}

// submitContact creates a pending contact on the backend.
func (h *handler) submitContact(c *fiber.Ctx) error {
	var form contactForm
	if err := c.BodyParser(&form); err != nil {
		return h.formFailed(c, fiber.StatusBadRequest, "invalid form", nil, func(status int, msg string) error {
			return h.renderContact(c, status, form, nil, false, msg)
		})
	}
	form = contactForm{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Phone:   strings.TrimSpace(form.Phone),
		Subject: strings.TrimSpace(form.Subject),
		Message: strings.TrimSpace(form.Message),
	}
	if errs := form.validate(); len(errs) > 0 {
		return h.formFailed(c, fiber.StatusBadRequest, "please correct the highlighted fields", errs, func(status int, msg string) error {
			return h.renderContact(c, status, form, errs, false, msg)
		})
	}

	created, err := h.provider.Contacts.Create(c.Context(), content.Contact{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Subject: form.Subject,
		Message: form.Message,
		Status:  content.ContactPending,
	}, nil, "")
	if err != nil {
		status, msg := submitError(err)
		return h.formFailed(c, status, msg, nil, func(status int, msg string) error {
			return h.renderContact(c, status, form, nil, false, msg)
		})
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": created.ID, "status": created.Status})
	}
	return h.renderContact(c, fiber.StatusOK, contactForm{}, nil, true, "")
}

// submitReview creates a pending review; it shows up once an admin approves it.
func (h *handler) submitReview(c *fiber.Ctx) error {
	var form reviewSubmission
	if err := c.BodyParser(&form); err != nil {
		return h.formFailed(c, fiber.StatusBadRequest, "invalid form", nil, nil)
	}
	form.UserName = strings.TrimSpace(form.UserName)
	form.Comment = strings.TrimSpace(form.Comment)
	back := safeReturn(form.Return)

	if errs := form.validate(); len(errs) > 0 {
		return h.formFailed(c, fiber.StatusBadRequest, errs.Error(), errs, func(status int, msg string) error {
			return h.renderError(c, status, "Review not sent", msg)
		})
	}

	created, err := h.provider.Reviews.Create(c.Context(), content.Review{
		UserName:  form.UserName,
		Email:     strings.TrimSpace(form.Email),
		Rating:    form.Rating,
		Comment:   form.Comment,
		PlaceID:   form.PlaceID,
		PackageID: form.PackageID,
		Status:    content.ReviewPending,
	}, nil, "")
	if err != nil {
		status, msg := submitError(err)
		return h.formFailed(c, status, msg, nil, func(status int, msg string) error {
			return h.renderError(c, status, "Review not sent", msg)
		})
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": created.ID, "status": created.Status})
	}
	return c.Redirect(back+"?review=submitted", fiber.StatusSeeOther)
}

// formFailed answers JSON clients directly and hands HTML clients to page.
func (h *handler) formFailed(c *fiber.Ctx, status int, msg string, errs validate.Errors, page func(int, string) error) error {
	if wantsJSON(c) || page == nil {
		body := fiber.Map{"error": msg}
		if len(errs) > 0 {
			body["fields"] = errs
		}
		return c.Status(status).JSON(body)
	}
	return page(status, msg)
}

func submitError(err error) (int, string) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
		return fiber.StatusBadRequest, apiclient.UserMessage(err, "your message could not be sent")
	}
	log.Printf("public submission failed: %v", err)
	return fiber.StatusBadGateway, "we could not send that right now, please try again"
}

// safeReturn only allows local paths.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\?#") {
		return "/"
	}
	return p
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Is("json") || strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
