package admin

import (
	"context"
	"errors"
	"log"
	"net/http"

	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/auth"
	"web-travelsite/internal/gallery"
	"web-travelsite/internal/provider"
	"web-travelsite/internal/shared/validate"

	"github.com/gofiber/fiber/v2"
)

// fail turns a service error into the admin UI's error envelope. A backend
// 401 means the stored token is dead, so the session is dropped with it.
func (h *handler) fail(c *fiber.Ctx, err error) error {
	var fields validate.Errors
	var netErr *apiclient.NetworkError
	var fe *fiber.Error

	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	case errors.As(err, &fields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "fields": fields})
	case errors.Is(err, provider.ErrNotFound), errors.Is(err, gallery.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, provider.ErrNoStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "this entity has no status"})
	case apiclient.IsUnauthorized(err):
		if sess, ok := auth.CurrentSession(c); ok && h.Sessions != nil {
			if lErr := h.Sessions.Logout(c.Context(), sess.ID); lErr != nil {
				log.Printf("drop session after backend 401: %v", lErr)
			}
		}
		c.ClearCookie(auth.CookieName)
		return auth.Unauthorized(c)
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		log.Printf("backend unreachable: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "backend unavailable, please try again"})
	}

	status := apiclient.StatusCode(err)
	switch {
	case status == 0:
		log.Printf("admin request failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	case status >= 500:
		log.Printf("backend error: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": apiclient.UserMessage(err, "backend error, please try again")})
	}
	return c.Status(status).JSON(fiber.Map{"error": apiclient.UserMessage(err, http.StatusText(status))})
}
