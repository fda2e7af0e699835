package listing

import (
	"slices"
	"strconv"
	"strings"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Query is the filter/sort/page state of an admin or public list screen.
type Query struct {
	Search   string
	Status   string
	Category string
	Sort     string
	Desc     bool
	Page     int
	PerPage  int
}

// ParseQuery reads q, status, category, sort, order, page and per_page.
func ParseQuery(values map[string]string) Query {
	q := Query{
		Search:   strings.TrimSpace(values["q"]),
		Status:   strings.TrimSpace(values["status"]),
		Category: strings.TrimSpace(values["category"]),
		Sort:     values["sort"],
		Desc:     strings.EqualFold(values["order"], "desc"),
		Page:     atoiDefault(values["page"], 1),
		PerPage:  atoiDefault(values["per_page"], defaultPerPage),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	return q
}

// Spec tells Apply how to look inside T. Nil accessors disable the matching
// filter.
type Spec[T any] struct {
	Text        func(T) string
	Status      func(T) string
	Category    func(T) string
	Sorts       map[string]func(a, b T) int
	DefaultSort string
}

type Page[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

func Apply[T any](items []T, q Query, spec Spec[T]) Page[T] {
	filtered := make([]T, 0, len(items))
	needle := strings.ToLower(q.Search)
	for _, it := range items {
		if needle != "" && spec.Text != nil && !strings.Contains(strings.ToLower(spec.Text(it)), needle) {
			continue
		}
		if q.Status != "" && spec.Status != nil && !strings.EqualFold(spec.Status(it), q.Status) {
			continue
		}
		if q.Category != "" && spec.Category != nil && !strings.EqualFold(spec.Category(it), q.Category) {
			continue
		}
		filtered = append(filtered, it)
	}

	sortKey := q.Sort
	if _, ok := spec.Sorts[sortKey]; !ok {
		sortKey = spec.DefaultSort
	}
	if cmp, ok := spec.Sorts[sortKey]; ok {
		slices.SortStableFunc(filtered, func(a, b T) int {
			if q.Desc {
				return cmp(b, a)
			}
			return cmp(a, b)
		})
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}

	total := len(filtered)
	pages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page[T]{
		Items:   filtered[start:end],
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	}
}

// Active renders a boolean flag as the status string used by filters.
func Active(b bool) string {
	if b {
		return "active"
	}
	return "inactive"
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
