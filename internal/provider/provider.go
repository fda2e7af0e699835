package provider

import (
	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/content"
	"web-travelsite/internal/store"
)

// Provider is the site-wide access point for the five cached collections.
// It is built once at startup and shared by every handler.
type Provider struct {
	Places   *Resource[content.Place]
	Packages *Resource[content.Package]
	Blogs    *Resource[content.Blog]
	Contacts *Resource[content.Contact]
	Reviews  *Resource[content.Review]
}

func New(api apiclient.Doer) *Provider {
	return &Provider{
		Places: &Resource[content.Place]{
			name: "places", path: "/places", listPath: "/places",
			api: api, items: store.NewCollection[content.Place](),
			toggle: func(p content.Place) content.Place {
				p.Active = !p.Active
				return p
			},
			slugOf: func(p content.Place) string { return p.Slug },
		},
		Packages: &Resource[content.Package]{
			name: "packages", path: "/packages", listPath: "/packages",
			api: api, items: store.NewCollection[content.Package](),
			toggle: func(p content.Package) content.Package {
				p.Status = !p.Status
				return p
			},
			slugOf: func(p content.Package) string { return p.Slug },
		},
		Blogs: &Resource[content.Blog]{
			name: "blogs", path: "/blogs", listPath: "/blogs/published",
			api: api, items: store.NewCollection[content.Blog](),
			slugOf: func(b content.Blog) string { return b.Slug },
		},
		Contacts: &Resource[content.Contact]{
			name: "contacts", path: "/contacts", listPath: "/contacts",
			api: api, items: store.NewCollection[content.Contact](),
			toggle: toggleContact,
		},
		Reviews: &Resource[content.Review]{
			name: "reviews", path: "/reviews", listPath: "/reviews",
			api: api, items: store.NewCollection[content.Review](),
			toggle: toggleReview,
		},
	}
}

func toggleContact(c content.Contact) content.Contact {
	if c.Status == content.ContactResponded {
		c.Status = content.ContactPending
	} else {
		c.Status = content.ContactResponded
	}
	return c
}

// approved flips to rejected; pending and rejected both flip to approved.
func toggleReview(r content.Review) content.Review {
	if r.Status == content.ReviewApproved {
		r.Status = content.ReviewRejected
	} else {
		r.Status = content.ReviewApproved
	}
	return r
}
