package public

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"web-travelsite/internal/content"
	"web-travelsite/internal/seo"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"slug": func(slug, id string) string {
		if slug != "" {
			return slug
		}
		return id
	},
	"money": func(v float64) string {
		return "₹" + groupThousands(strconv.FormatFloat(v, 'f', 0, 64))
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2 Jan 2006")
	},
	"firstImage": func(images []content.Image) string {
		for _, img := range images {
			if img.URL != "" {
				return img.URL
			}
		}
		return ""
	},
	"excerpt":    func(s string) string { return seo.Truncate(seo.StripTags(s), 180) },
	"paragraphs": paragraphs,
	"stars":      func() []int { return []int{5, 4, 3, 2, 1} },
	"add":        func(a, b int) int { return a + b },
	"sub":        func(a, b int) int { return a - b },
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home", "places", "place", "packages", "package", "blogs", "blog", "gallery", "contact", "error"} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
}

// view is what every page template receives.
type view struct {
	Meta     seo.Meta
	JSONLD   template.JS
	Site     seo.Site
	Notice   string
	Year     int
	Call     string
	WhatsApp string
	Body     any
}

func (h *handler) render(c *fiber.Ctx, status int, page string, v view) error {
	tmpl, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	v.Site = h.site
	v.Meta.GAID = h.gaID
	v.Year = time.Now().Year()
	v.Call = seo.CallLink(h.site.Phone)
	v.WhatsApp = seo.WhatsAppLink(h.whatsApp, "Hi, I'd like to plan a trip.")

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		return err
	}
	c.Type("html")
	return c.Status(status).Send(buf.Bytes())
}

func (h *handler) renderError(c *fiber.Ctx, status int, title, msg string) error {
	return h.render(c, status, "error", view{
		Meta: seo.PageMeta(h.site, title, msg, c.Path(), ""),
		Body: fiber.Map{"Title": title, "Message": msg},
	})
}

// paragraphs splits plain post content on blank lines; markup is dropped.
func paragraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = seo.StripTags(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// groupThousands formats digits the Indian way (12,34,567).
func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")
	if len(digits) <= 3 {
		if neg {
			return "-" + digits
		}
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	out := strings.Join(parts, ",") + "," + tail
	if neg {
		return "-" + out
	}
	return out
}
