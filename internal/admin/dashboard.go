package admin

import (
	"context"
	"time"

	"web-travelsite/internal/content"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDashboardTimeout = 15 * time.Second
	recentPending           = 5
)

// Counts.Active is the live subset: active places/packages/galleries,
// approved reviews and contacts still awaiting a reply.
type Counts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type Dashboard struct {
	Places          Counts            `json:"places"`
	Packages        Counts            `json:"packages"`
	Blogs           Counts            `json:"blogs"`
	Contacts        Counts            `json:"contacts"`
	Reviews         Counts            `json:"reviews"`
	Galleries       Counts            `json:"galleries"`
	PendingContacts []content.Contact `json:"pending_contacts"`
	PendingReviews  []content.Review  `json:"pending_reviews"`
}

// loadDashboard fetches every collection concurrently. The first failure
// cancels the rest and the whole load fails.
func (h *handler) loadDashboard(ctx context.Context) (Dashboard, error) {
	timeout := h.DashboardTimeout
	if timeout <= 0 {
		timeout = defaultDashboardTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		places    []content.Place
		packages  []content.Package
		blogs     []content.Blog
		contacts  []content.Contact
		reviews   []content.Review
		galleries []content.Gallery
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { places, err = h.Provider.Places.Fetch(gctx); return })
	g.Go(func() (err error) { packages, err = h.Provider.Packages.Fetch(gctx); return })
	g.Go(func() (err error) { blogs, err = h.Provider.Blogs.Fetch(gctx); return })
	g.Go(func() (err error) { contacts, err = h.Provider.Contacts.Fetch(gctx); return })
	g.Go(func() (err error) { reviews, err = h.Provider.Reviews.Fetch(gctx); return })
	if h.Galleries != nil {
		g.Go(func() (err error) { galleries, err = h.Galleries.List(gctx); return })
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Places:          Counts{Total: len(places), Active: countWhere(places, func(p content.Place) bool { return p.Active })},
		Packages:        Counts{Total: len(packages), Active: countWhere(packages, func(p content.Package) bool { return p.Status })},
		Blogs:           Counts{Total: len(blogs), Active: len(blogs)},
		Contacts:        Counts{Total: len(contacts), Active: countWhere(contacts, func(c content.Contact) bool { return c.Status != content.ContactResponded })},
		Reviews:         Counts{Total: len(reviews), Active: countWhere(reviews, func(r content.Review) bool { return r.Status == content.ReviewApproved })},
		Galleries:       Counts{Total: len(galleries), Active: countWhere(galleries, func(g content.Gallery) bool { return g.Status })},
		PendingContacts: firstWhere(contacts, recentPending, func(c content.Contact) bool { return c.Status != content.ContactResponded }),
		PendingReviews:  firstWhere(reviews, recentPending, func(r content.Review) bool { return r.Status != content.ReviewApproved && r.Status != content.ReviewRejected }),
	}
	return d, nil
}

func (h *handler) dashboard(c *fiber.Ctx) error {
	d, err := h.loadDashboard(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func countWhere[T any](items []T, keep func(T) bool) int {
	n := 0
	for _, it := range items {
		if keep(it) {
			n++
		}
	}
	return n
}

func firstWhere[T any](items []T, limit int, keep func(T) bool) []T {
	out := make([]T, 0, limit)
	for _, it := range items {
		if len(out) == limit {
			break
		}
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
