package auth

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"strings"

	"web-travelsite/internal/apiclient"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/login.html
var loginFS embed.FS

var loginPage = template.Must(template.ParseFS(loginFS, "templates/login.html"))

// RegisterRoutes mounts the login/logout endpoints on the /admin group.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/login", func(c *fiber.Ctx) error {
		if _, err := svc.Lookup(c.Context(), c.Cookies(CookieName)); err == nil {
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		return renderLogin(c, fiber.StatusOK, "", "")
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return loginFailed(c, fiber.StatusBadRequest, "email and password required", req.Email)
		}

		sess, err := svc.Login(c.Context(), req)
		if err != nil {
			status, msg := loginError(err)
			return loginFailed(c, status, msg, req.Email)
		}

		cookie := &fiber.Cookie{
			Name:     CookieName,
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		}
		if sess.Remember {
			cookie.Expires = sess.ExpiresAt
		}
		c.Cookie(cookie)

		if wantsJSON(c) {
			return c.JSON(fiber.Map{"admin": sess.Admin, "expires_at": sess.ExpiresAt})
		}
		return c.Redirect("/admin", fiber.StatusSeeOther)
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		if err := svc.Logout(c.Context(), c.Cookies(CookieName)); err != nil {
			log.Printf("logout failed: %v", err)
		}
		c.ClearCookie(CookieName)
		if wantsJSON(c) {
			return c.JSON(fiber.Map{"redirect": LoginPath})
		}
		return c.Redirect(LoginPath, fiber.StatusSeeOther)
	})
}

func loginError(err error) (int, string) {
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode < 500:
		return fiber.StatusUnauthorized, apiclient.UserMessage(err, "invalid credentials")
	case errors.Is(err, ErrNoStore):
		return fiber.StatusServiceUnavailable, "login is temporarily unavailable"
	case errors.Is(err, ErrTokenMissing), errors.Is(err, ErrTokenExpired):
		return fiber.StatusBadGateway, "login failed, please try again"
	default:
		log.Printf("admin login failed: %v", err)
		return fiber.StatusBadGateway, "login failed, please try again"
	}
}

func loginFailed(c *fiber.Ctx, status int, msg, email string) error {
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return renderLogin(c, status, msg, email)
}

func renderLogin(c *fiber.Ctx, status int, msg, email string) error {
	var buf bytes.Buffer
	if err := loginPage.Execute(&buf, fiber.Map{"Error": msg, "Email": email}); err != nil {
		return err
	}
	c.Type("html")
	return c.Status(status).Send(buf.Bytes())
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Is("json") || strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
