package public

import (
	"context"
	"errors"
	"log"
	"slices"
	"sort"
	"strings"
	"sync"

	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/content"
	"web-travelsite/internal/gallery"
	"web-travelsite/internal/listing"
	"web-travelsite/internal/provider"
	"web-travelsite/internal/seo"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	homePlaces   = 6
	homePackages = 6
	homeBlogs    = 3
	homeReviews  = 6
	listPerPage  = 12

	unavailable = "Some content could not be loaded right now. Please try again shortly."
)

type Deps struct {
	Provider  *provider.Provider
	Galleries *gallery.Service
	Site      seo.Site
	GAID      string
	WhatsApp  string
}

type handler struct {
	provider  *provider.Provider
	galleries *gallery.Service
	site      seo.Site
	gaID      string
	whatsApp  string
}

// RegisterRoutes mounts the marketing pages. Every request re-fetches what it
// shows; visitors only ever see active, published or approved content.
func RegisterRoutes(r fiber.Router, d Deps) {
	h := &handler{
		provider:  d.Provider,
		galleries: d.Galleries,
		site:      d.Site,
		gaID:      d.GAID,
		whatsApp:  d.WhatsApp,
	}

	r.Get("/", h.home)
	r.Get("/places", h.places)
	r.Get("/places/:slug", h.place)
	r.Get("/packages", h.packages)
	r.Get("/packages/:slug", h.pkg)
	r.Get("/blogs", h.blogs)
	r.Get("/blogs/:slug", h.blog)
	r.Get("/gallery", h.gallery)
	r.Get("/contact", h.contactPage)
	r.Post("/contact", h.submitContact)
	r.Post("/reviews", h.submitReview)
	r.Get("/sitemap.xml", h.sitemap)
	r.Get("/robots.txt", h.robots)
}

func (h *handler) home(c *fiber.Ctx) error {
	var (
		mu     sync.Mutex
		failed bool
		body   struct {
			Places   []content.Place
			Packages []content.Package
			Blogs    []content.Blog
			Reviews  []content.Review
		}
	)
	note := func(err error) {
		log.Printf("home section failed: %v", err)
		mu.Lock()
		failed = true
		mu.Unlock()
	}

	// Sections load independently; a failed one renders empty.
	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		items, err := h.provider.Places.Fetch(ctx)
		if err != nil {
			note(err)
			return nil
		}
		body.Places = firstN(activePlaces(items), homePlaces)
		return nil
	})
	g.Go(func() error {
		items, err := h.provider.Packages.Fetch(ctx)
		if err != nil {
			note(err)
			return nil
		}
		body.Packages = firstN(activePackages(items), homePackages)
		return nil
	})
	g.Go(func() error {
		items, err := h.provider.Blogs.Fetch(ctx)
		if err != nil {
			note(err)
			return nil
		}
		sorted := slices.Clone(items)
		slices.SortStableFunc(sorted, func(a, b content.Blog) int { return b.Published().Compare(a.Published()) })
		body.Blogs = firstN(sorted, homeBlogs)
		return nil
	})
	g.Go(func() error {
		items, err := h.provider.Reviews.Fetch(ctx)
		if err != nil {
			note(err)
			return nil
		}
		body.Reviews = firstN(approved(items, func(content.Review) bool { return true }), homeReviews)
		return nil
	})
	_ = g.Wait()

	v := view{
		Meta:   seo.PageMeta(h.site, "", "Plan your next holiday with "+h.site.Name+": curated places, tour packages and travel stories.", "/", ""),
		JSONLD: seo.Script(seo.Organization(h.site)),
		Body:   body,
	}
	if failed {
		v.Notice = unavailable
	}
	return h.render(c, fiber.StatusOK, "home", v)
}

func (h *handler) places(c *fiber.Ctx) error {
	items, err := h.provider.Places.Fetch(c.Context())
	if err != nil {
		return h.backendDown(c, err)
	}
	q := publicQuery(c)
	return h.render(c, fiber.StatusOK, "places", view{
		Meta:   seo.PageMeta(h.site, "Places to visit", "Explore destinations curated by "+h.site.Name+".", "/places", ""),
		JSONLD: seo.Script(seo.Breadcrumbs(h.site, seo.Crumb{Name: "Home", Path: "/"}, seo.Crumb{Name: "Places"})),
		Body: fiber.Map{
			"Query": q,
			"Page":  listing.Apply(activePlaces(items), q, listing.Places),
		},
	})
}

func (h *handler) place(c *fiber.Ctx) error {
	if _, err := h.provider.Places.Fetch(c.Context()); err != nil {
		return h.backendDown(c, err)
	}
	p, ok := h.provider.Places.BySlug(c.Params("slug"))
	if !ok || !p.Active {
		return h.renderError(c, fiber.StatusNotFound, "Place not found", "We could not find that destination.")
	}

	reviews := h.reviewsFor(c.Context(), func(r content.Review) bool { return r.PlaceID == p.ID })
	path := "/places/" + c.Params("slug")
	docs := []seo.Doc{
		seo.Place(h.site, p, reviews),
		seo.Breadcrumbs(h.site, seo.Crumb{Name: "Home", Path: "/"}, seo.Crumb{Name: "Places", Path: "/places"}, seo.Crumb{Name: p.Title}),
	}
	for _, r := range reviews {
		docs = append(docs, seo.Review(r))
	}

	return h.render(c, fiber.StatusOK, "place", view{
		Meta:   seo.PageMeta(h.site, p.Title, p.Description, path, firstURL(p.Images)),
		JSONLD: seo.Script(docs...),
		Notice: reviewNotice(c),
		Body: fiber.Map{
			"Place":      p,
			"Reviews":    reviews,
			"Share":      seo.Share(h.site.URL(path), p.Title, h.whatsApp, h.site.Phone),
			"ReviewForm": reviewForm{PlaceID: p.ID, Return: path},
		},
	})
}

func (h *handler) packages(c *fiber.Ctx) error {
	items, err := h.provider.Packages.Fetch(c.Context())
	if err != nil {
		return h.backendDown(c, err)
	}
	active := activePackages(items)
	q := publicQuery(c)
	return h.render(c, fiber.StatusOK, "packages", view{
		Meta:   seo.PageMeta(h.site, "Tour packages", "Tour packages with itineraries, inclusions and honest prices.", "/packages", ""),
		JSONLD: seo.Script(seo.Breadcrumbs(h.site, seo.Crumb{Name: "Home", Path: "/"}, seo.Crumb{Name: "Packages"})),
		Body: fiber.Map{
			"Query":      q,
			"Categories": packageCategories(active),
			"Page":       listing.Apply(active, q, listing.Packages),
		},
	})
}

func (h *handler) pkg(c *fiber.Ctx) error {
	if _, err := h.provider.Packages.Fetch(c.Context()); err != nil {
		return h.backendDown(c, err)
	}
	p, ok := h.provider.Packages.BySlug(c.Params("slug"))
	if !ok || !p.Status {
		return h.renderError(c, fiber.StatusNotFound, "Package not found", "That tour package is not available.")
	}

	reviews := h.reviewsFor(c.Context(), func(r content.Review) bool { return r.PackageID == p.ID })
	path := "/packages/" + c.Params("slug")
	docs := []seo.Doc{
		seo.Package(h.site, p, reviews),
		seo.Breadcrumbs(h.site, seo.Crumb{Name: "Home", Path: "/"}, seo.Crumb{Name: "Packages", Path: "/packages"}, seo.Crumb{Name: p.Name}),
	}
	for _, r := range reviews {
		docs = append(docs, seo.Review(r))
	}

	return h.render(c, fiber.StatusOK, "package", view{
		Meta:   seo.PageMeta(h.site, p.Name, p.Description, path, firstURL(p.Images)),
		JSONLD: seo.Script(docs...),
		Notice: reviewNotice(c),
		Body: fiber.Map{
			"Package":    p,
			"Reviews":    reviews,
			"Enquiry":    seo.PackageEnquiry(h.whatsApp, p.Name, h.site.URL(path)),
			"Share":      seo.Share(h.site.URL(path), p.Name, h.whatsApp, h.site.Phone),
			"ReviewForm": reviewForm{PackageID: p.ID, Return: path},
		},
	})
}

func (h *handler) blogs(c *fiber.Ctx) error {
	items, err := h.provider.Blogs.Fetch(c.Context())
	if err != nil {
		return h.backendDown(c, err)
	}
	q := publicQuery(c)
	if q.Sort == "" {
		q.Sort, q.Desc = "date", true
	}
	return h.render(c, fiber.StatusOK, "blogs", view{
		Meta:   seo.PageMeta(h.site, "Travel blog", "Stories, guides and tips from "+h.site.Name+".", "/blogs", ""),
		JSONLD: seo.Script(seo.Breadcrumbs(h.site, seo.Crumb{Name: "Home", Path: "/"}, seo.Crumb{Name: "Blog"})),
		Body: fiber.Map{
			"Query": q,
			"Page":  listing.Apply(items, q, listing.Blogs),
		},
	})
}

func (h *handler) blog(c *fiber.Ctx) error {
	if _, err := h.provider.Blogs.Fetch(c.Context()); err != nil {
		return h.backendDown(c, err)
	}
	b, ok := h.provider.Blogs.BySlug(c.Params("slug"))
	if !ok {
		return h.renderError(c, fiber.StatusNotFound, "Post not found", "That article does not exist.")
	}

	path := "/blogs/" + c.Params("slug")
	desc := b.Excerpt
	if desc == "" {
		desc = b.Content
	}
	meta := seo.PageMeta(h.site, b.Title, desc, path, b.Image)
	meta.Type = "article"
	return h.render(c, fiber.StatusOK, "blog", view{
		Meta: meta,
		JSONLD: seo.Script(
			seo.BlogPosting(h.site, b),
			seo.Breadcrumbs(h.site, seo.Crumb{Name: "Home", Path: "/"}, seo.Crumb{Name: "Blog", Path: "/blogs"}, seo.Crumb{Name: b.Title}),
		),
		Body: fiber.Map{
			"Blog":  b,
			"Share": seo.Share(h.site.URL(path), b.Title, h.whatsApp, h.site.Phone),
		},
	})
}

func (h *handler) gallery(c *fiber.Ctx) error {
	items, err := h.galleries.Active(c.Context())
	if err != nil {
		return h.backendDown(c, err)
	}
	return h.render(c, fiber.StatusOK, "gallery", view{
		Meta:   seo.PageMeta(h.site, "Gallery", "Photos and stories shared by our travellers.", "/gallery", ""),
		JSONLD: seo.Script(seo.ImageGallery(h.site, items)),
		Body:   fiber.Map{"Galleries": items},
	})
}

// reviewsFor returns approved reviews matching keep. A failed fetch only
// hides the reviews section.
func (h *handler) reviewsFor(ctx context.Context, keep func(content.Review) bool) []content.Review {
	items, err := h.provider.Reviews.Fetch(ctx)
	if err != nil {
		log.Printf("reviews unavailable: %v", err)
		return nil
	}
	return approved(items, keep)
}

func (h *handler) backendDown(c *fiber.Ctx, err error) error {
	log.Printf("public page %s: %v", c.Path(), err)
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusNotFound {
		return h.renderError(c, fiber.StatusNotFound, "Not found", "The page you asked for does not exist.")
	}
	return h.renderError(c, fiber.StatusBadGateway, "Temporarily unavailable", unavailable)
}

func reviewNotice(c *fiber.Ctx) string {
	if c.Query("review") == "submitted" {
		return "Thanks! Your review will appear once it has been approved."
	}
	return ""
}

type reviewForm struct {
	PlaceID   string
	PackageID string
	Return    string
}

func publicQuery(c *fiber.Ctx) listing.Query {
	q := listing.ParseQuery(c.Queries())
	q.Status = ""
	q.PerPage = listPerPage
	return q
}

func activePlaces(items []content.Place) []content.Place {
	out := make([]content.Place, 0, len(items))
	for _, p := range items {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

func activePackages(items []content.Package) []content.Package {
	out := make([]content.Package, 0, len(items))
	for _, p := range items {
		if p.Status {
			out = append(out, p)
		}
	}
	return out
}

func approved(items []content.Review, keep func(content.Review) bool) []content.Review {
	out := make([]content.Review, 0)
	for _, r := range items {
		if r.Status == content.ReviewApproved && keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func packageCategories(items []content.Package) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range items {
		cat := strings.TrimSpace(p.Category)
		if cat == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(cat)]; ok {
			continue
		}
		seen[strings.ToLower(cat)] = struct{}{}
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func firstURL(images []content.Image) string {
	for _, img := range images {
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}
