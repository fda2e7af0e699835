package public

import (
	"log"
	"time"

	"web-travelsite/internal/seo"

	"github.com/gofiber/fiber/v2"
)

var staticPages = []seo.SitemapEntry{
	{Path: "/", ChangeFreq: "daily", Priority: 1},
	{Path: "/places", ChangeFreq: "weekly", Priority: 0.8},
	{Path: "/packages", ChangeFreq: "weekly", Priority: 0.9},
	{Path: "/blogs", ChangeFreq: "weekly", Priority: 0.7},
	{Path: "/gallery", ChangeFreq: "monthly", Priority: 0.5},
	{Path: "/contact", ChangeFreq: "yearly", Priority: 0.4},
}

// sitemap lists static pages plus every public detail page that could be
// loaded; a failed collection is left out rather than failing the file.
func (h *handler) sitemap(c *fiber.Ctx) error {
	entries := append([]seo.SitemapEntry(nil), staticPages...)

	if places, err := h.provider.Places.Fetch(c.Context()); err != nil {
		log.Printf("sitemap places: %v", err)
	} else {
		for _, p := range activePlaces(places) {
			entries = append(entries, seo.SitemapEntry{Path: "/places/" + orID(p.Slug, p.ID), LastMod: lastMod(p.UpdatedAt, p.CreatedAt), ChangeFreq: "monthly", Priority: 0.7})
		}
	}
	if packages, err := h.provider.Packages.Fetch(c.Context()); err != nil {
		log.Printf("sitemap packages: %v", err)
	} else {
		for _, p := range activePackages(packages) {
			entries = append(entries, seo.SitemapEntry{Path: "/packages/" + orID(p.Slug, p.ID), LastMod: lastMod(p.UpdatedAt, p.CreatedAt), ChangeFreq: "weekly", Priority: 0.8})
		}
	}
	if blogs, err := h.provider.Blogs.Fetch(c.Context()); err != nil {
		log.Printf("sitemap blogs: %v", err)
	} else {
		for _, b := range blogs {
			entries = append(entries, seo.SitemapEntry{Path: "/blogs/" + orID(b.Slug, b.EntityID()), LastMod: lastMod(b.UpdatedAt, b.Date, b.CreatedAt), ChangeFreq: "monthly", Priority: 0.6})
		}
	}

	body, err := seo.Sitemap(h.site, entries)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(body)
}

func (h *handler) robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(seo.Robots(h.site))
}

func orID(slug, id string) string {
	if slug != "" {
		return slug
	}
	return id
}

func lastMod(times ...*time.Time) time.Time {
	for _, t := range times {
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}
