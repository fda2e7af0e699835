package seo

import (
	"strings"
	"unicode/utf8"
)

// Meta is the <head> block of a public page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Type        string
	GAID        string
}

func PageMeta(site Site, title, description, path, image string) Meta {
	full := site.Name
	if title != "" && title != site.Name {
		full = title + " | " + site.Name
	}
	return Meta{
		Title:       full,
		Description: Truncate(StripTags(description), 160),
		Canonical:   site.URL(path),
		Image:       image,
		Type:        "website",
	}
}

// Truncate cuts s to at most n runes on a word boundary and appends an ellipsis.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)[:n]
	for i := len(runes) - 1; i > n/2; i-- {
		if runes[i] == ' ' {
			runes = runes[:i]
			break
		}
	}
	return strings.TrimRight(string(runes), " ,.;:") + "…"
}

// StripTags drops markup from rich-text blog bodies.
func StripTags(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '<':
			in = true
			b.WriteRune(' ')
		case r == '>':
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
