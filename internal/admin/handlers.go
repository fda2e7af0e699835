package admin

import (
	"log"
	"time"

	"web-travelsite/internal/activity"
	"web-travelsite/internal/auth"
	"web-travelsite/internal/gallery"
	"web-travelsite/internal/provider"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Provider         *provider.Provider
	Galleries        *gallery.Service
	Activity         *activity.Service
	Sessions         *auth.Service
	DashboardTimeout time.Duration
}

type handler struct {
	Deps
}

// RegisterRoutes mounts the admin JSON API on r (the /admin/api group).
func RegisterRoutes(r fiber.Router, d Deps, authMiddleware fiber.Handler) {
	h := &handler{Deps: d}

	registerResource(r.Group("/places", authMiddleware), h, d.Provider.Places, placeRules)
	registerResource(r.Group("/packages", authMiddleware), h, d.Provider.Packages, packageRules)
	registerResource(r.Group("/blogs", authMiddleware), h, d.Provider.Blogs, blogRules)
	registerResource(r.Group("/contacts", authMiddleware), h, d.Provider.Contacts, contactRules)
	registerResource(r.Group("/reviews", authMiddleware), h, d.Provider.Reviews, reviewRules)
	registerGalleries(r.Group("/galleries", authMiddleware), h)

	r.Get("/dashboard", authMiddleware, h.dashboard)
}

// record writes the audit entry for a successful mutation.
func (h *handler) record(c *fiber.Ctx, entity, id, action string, status int) {
	if h.Activity == nil {
		return
	}
	var who string
	if sess, ok := auth.CurrentSession(c); ok {
		who = sess.Admin.Email
	}
	_, err := h.Activity.Record(c.Context(), activity.Entry{
		Admin:    who,
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Status:   status,
	})
	if err != nil {
		log.Printf("record activity: %v", err)
	}
}
