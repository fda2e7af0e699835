package seo

import (
	"encoding/json"
	"html/template"
	"math"
	"strconv"
	"strings"

	"web-travelsite/internal/content"
)

// Doc is one schema.org JSON-LD object.
type Doc map[string]any

// Site carries the organisation-level facts every page repeats.
type Site struct {
	Name    string
	BaseURL string
	Phone   string
	Logo    string
}

func (s Site) URL(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Script renders docs for a <script type="application/ld+json"> block.
func Script(docs ...Doc) template.JS {
	var payload any = docs
	if len(docs) == 1 {
		payload = docs[0]
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}

func Organization(site Site) Doc {
	doc := Doc{
		"@context": "https://schema.org",
		"@type":    "TravelAgency",
		"name":     site.Name,
		"url":      site.URL("/"),
	}
	if site.Phone != "" {
		doc["telephone"] = site.Phone
	}
	if site.Logo != "" {
		doc["logo"] = site.Logo
	}
	return doc
}

func Place(site Site, p content.Place, reviews []content.Review) Doc {
	doc := Doc{
		"@context":    "https://schema.org",
		"@type":       "TouristAttraction",
		"name":        p.Title,
		"description": Truncate(p.Description, 300),
		"url":         site.URL("/places/" + slugOr(p.Slug, p.ID)),
	}
	if p.Location != "" {
		doc["address"] = Doc{"@type": "PostalAddress", "addressLocality": p.Location}
	}
	if imgs := imageURLs(p.Images); len(imgs) > 0 {
		doc["image"] = imgs
	}
	if p.EntryFee > 0 {
		doc["isAccessibleForFree"] = false
	}
	if agg := AggregateRating(reviews); agg != nil {
		doc["aggregateRating"] = agg
	} else if p.Rating > 0 {
		doc["aggregateRating"] = Doc{"@type": "AggregateRating", "ratingValue": round1(p.Rating), "bestRating": 5, "ratingCount": max(p.Visitors, 1)}
	}
	return doc
}

func Package(site Site, p content.Package, reviews []content.Review) Doc {
	doc := Doc{
		"@context":    "https://schema.org",
		"@type":       "TouristTrip",
		"name":        p.Name,
		"description": Truncate(p.Description, 300),
		"url":         site.URL("/packages/" + slugOr(p.Slug, p.ID)),
		"provider":    Doc{"@type": "TravelAgency", "name": site.Name, "url": site.URL("/")},
		"offers": Doc{
			"@type":         "Offer",
			"price":         strconv.FormatFloat(p.SalePrice(), 'f', 2, 64),
			"priceCurrency": "INR",
			"availability":  availability(p.Status),
			"url":           site.URL("/packages/" + slugOr(p.Slug, p.ID)),
		},
	}
	if p.Destination != "" {
		doc["itinerary"] = Doc{"@type": "Place", "name": p.Destination}
	}
	if p.Category != "" {
		doc["touristType"] = p.Category
	}
	if imgs := imageURLs(p.Images); len(imgs) > 0 {
		doc["image"] = imgs
	}
	if agg := AggregateRating(reviews); agg != nil {
		doc["aggregateRating"] = agg
	}
	return doc
}

func BlogPosting(site Site, b content.Blog) Doc {
	doc := Doc{
		"@context":  "https://schema.org",
		"@type":     "BlogPosting",
		"headline":  b.Title,
		"url":       site.URL("/blogs/" + slugOr(b.Slug, b.EntityID())),
		"publisher": Doc{"@type": "Organization", "name": site.Name},
	}
	if b.Excerpt != "" {
		doc["description"] = b.Excerpt
	}
	if b.Author != "" {
		doc["author"] = Doc{"@type": "Person", "name": b.Author}
	}
	if b.Image != "" {
		doc["image"] = b.Image
	}
	if b.Category != "" {
		doc["articleSection"] = b.Category
	}
	if t := b.Published(); !t.IsZero() {
		doc["datePublished"] = t.Format("2006-01-02")
	}
	if b.UpdatedAt != nil {
		doc["dateModified"] = b.UpdatedAt.Format("2006-01-02")
	}
	return doc
}

func ImageGallery(site Site, galleries []content.Gallery) Doc {
	images := make([]Doc, 0)
	for _, g := range galleries {
		for _, img := range g.Images {
			images = append(images, Doc{
				"@type":       "ImageObject",
				"contentUrl":  img.URL,
				"caption":     strings.TrimSpace(g.Name + " " + g.Location),
				"description": Truncate(g.Story, 160),
			})
		}
	}
	return Doc{
		"@context": "https://schema.org",
		"@type":    "ImageGallery",
		"name":     site.Name + " travel gallery",
		"url":      site.URL("/gallery"),
		"image":    images,
	}
}

func Review(r content.Review) Doc {
	return Doc{
		"@type":        "Review",
		"author":       Doc{"@type": "Person", "name": r.UserName},
		"reviewBody":   r.Comment,
		"reviewRating": Doc{"@type": "Rating", "ratingValue": r.Rating, "bestRating": 5, "worstRating": 1},
	}
}

// AggregateRating averages approved reviews and returns nil when there are none.
func AggregateRating(reviews []content.Review) Doc {
	var sum, n int
	for _, r := range reviews {
		if r.Status != content.ReviewApproved || r.Rating < 1 || r.Rating > 5 {
			continue
		}
		sum += r.Rating
		n++
	}
	if n == 0 {
		return nil
	}
	return Doc{
		"@type":       "AggregateRating",
		"ratingValue": round1(float64(sum) / float64(n)),
		"reviewCount": n,
		"bestRating":  5,
	}
}

// Crumb is one breadcrumb step; the last one may omit Path.
type Crumb struct {
	Name string
	Path string
}

func Breadcrumbs(site Site, crumbs ...Crumb) Doc {
	items := make([]Doc, 0, len(crumbs))
	for i, c := range crumbs {
		item := Doc{"@type": "ListItem", "position": i + 1, "name": c.Name}
		if c.Path != "" {
			item["item"] = site.URL(c.Path)
		}
		items = append(items, item)
	}
	return Doc{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func imageURLs(images []content.Image) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	return urls
}

func availability(active bool) string {
	if active {
		return "https://schema.org/InStock"
	}
	return "https://schema.org/SoldOut"
}

func slugOr(slug, id string) string {
	if slug != "" {
		return slug
	}
	return id
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
