package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieName = "admin_session"
	LoginPath  = "/admin/login"

	localsToken   = "admin_token"
	localsSession = "admin_session"
)

type Mode int

const (
	// API answers a missing session with a JSON 401.
	API Mode = iota
	// Page redirects the browser to the login form.
	Page
)

// Middleware resolves the session cookie (or a bearer session id) and
// stores the backend token in locals.
func Middleware(svc *Service, mode Mode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(CookieName)
		if id == "" {
			id = bearerFromHeader(c.Get(fiber.HeaderAuthorization))
		}

		sess, err := svc.Lookup(c.Context(), id)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				log.Printf("session lookup failed: %v", err)
			}
			if mode == Page {
				return c.Redirect(LoginPath, fiber.StatusSeeOther)
			}
			return Unauthorized(c)
		}

		c.Locals(localsToken, sess.Token)
		c.Locals(localsSession, sess)
		return c.Next()
	}
}

// Unauthorized is the JSON reply that sends the admin UI back to the login form.
func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":    "session expired",
		"redirect": LoginPath,
	})
}

func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(localsToken).(string)
	return token
}

func CurrentSession(c *fiber.Ctx) (Session, bool) {
	sess, ok := c.Locals(localsSession).(Session)
	return sess, ok
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
