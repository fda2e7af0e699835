package listing

import (
	"cmp"
	"strings"
	"time"

	"web-travelsite/internal/content"
)

var Places = Spec[content.Place]{
	Text:     func(p content.Place) string { return join(p.Title, p.Location, p.Description) },
	Status:   func(p content.Place) string { return Active(p.Active) },
	Category: func(p content.Place) string { return p.Location },
	Sorts: map[string]func(a, b content.Place) int{
		"title":  func(a, b content.Place) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) },
		"rating": func(a, b content.Place) int { return cmp.Compare(a.Rating, b.Rating) },
		"price":  func(a, b content.Place) int { return cmp.Compare(a.Price, b.Price) },
		"newest": func(a, b content.Place) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	},
	DefaultSort: "title",
}

var Packages = Spec[content.Package]{
	Text:     func(p content.Package) string { return join(p.Name, p.Destination, p.Category, p.Description) },
	Status:   func(p content.Package) string { return Active(p.Status) },
	Category: func(p content.Package) string { return p.Category },
	Sorts: map[string]func(a, b content.Package) int{
		"name":     func(a, b content.Package) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
		"price":    func(a, b content.Package) int { return cmp.Compare(a.SalePrice(), b.SalePrice()) },
		"discount": func(a, b content.Package) int { return cmp.Compare(a.Discount, b.Discount) },
		"newest":   func(a, b content.Package) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	},
	DefaultSort: "name",
}

var Blogs = Spec[content.Blog]{
	Text:     func(b content.Blog) string { return join(b.Title, b.Excerpt, b.Author, b.Category) },
	Category: func(b content.Blog) string { return b.Category },
	Sorts: map[string]func(a, b content.Blog) int{
		"title": func(a, b content.Blog) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) },
		"date":  func(a, b content.Blog) int { return a.Published().Compare(b.Published()) },
	},
	DefaultSort: "date",
}

var Contacts = Spec[content.Contact]{
	Text:   func(c content.Contact) string { return join(c.Name, c.Email, c.Phone, c.Subject, c.Message) },
	Status: func(c content.Contact) string { return c.Status },
	Sorts: map[string]func(a, b content.Contact) int{
		"name":   func(a, b content.Contact) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
		"newest": func(a, b content.Contact) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	},
	DefaultSort: "newest",
}

var Reviews = Spec[content.Review]{
	Text:   func(r content.Review) string { return join(r.UserName, r.Email, r.Comment) },
	Status: func(r content.Review) string { return r.Status },
	Sorts: map[string]func(a, b content.Review) int{
		"rating": func(a, b content.Review) int { return cmp.Compare(a.Rating, b.Rating) },
		"newest": func(a, b content.Review) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	},
	DefaultSort: "newest",
}

var Galleries = Spec[content.Gallery]{
	Text:     func(g content.Gallery) string { return join(g.Name, g.Location, g.PassengerName, g.Story) },
	Status:   func(g content.Gallery) string { return Active(g.Status) },
	Category: func(g content.Gallery) string { return g.Location },
	Sorts: map[string]func(a, b content.Gallery) int{
		"name":   func(a, b content.Gallery) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
		"newest": func(a, b content.Gallery) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	},
	DefaultSort: "newest",
}

func join(parts ...string) string {
	return strings.Join(parts, " ")
}

// compareTime orders missing timestamps first.
func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
