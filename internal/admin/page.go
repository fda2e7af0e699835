package admin

import (
	"bytes"
	"embed"
	"html/template"

	"web-travelsite/internal/auth"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/shell.html
var shellFS embed.FS

var shellPage = template.Must(template.ParseFS(shellFS, "templates/shell.html"))

var sections = []string{"dashboard", "places", "packages", "blogs", "galleries", "contacts", "reviews", "activity"}

// RegisterPages serves the admin shell at GET / of r; the browser UI loads
// everything else from the JSON API.
func RegisterPages(r fiber.Router, siteName string, pageMiddleware fiber.Handler) {
	r.Get("/", pageMiddleware, func(c *fiber.Ctx) error {
		sess, _ := auth.CurrentSession(c)
		var buf bytes.Buffer
		err := shellPage.Execute(&buf, fiber.Map{
			"SiteName": siteName,
			"Admin":    sess.Admin,
			"Sections": sections,
		})
		if err != nil {
			return err
		}
		c.Type("html")
		return c.Send(buf.Bytes())
	})
}
