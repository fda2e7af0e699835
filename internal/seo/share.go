package seo

import (
	"net/url"
	"strings"
	"unicode"
)

// ShareLinks are the outbound links rendered under every detail page.
type ShareLinks struct {
	WhatsApp string
	Call     string
	Facebook string
	Twitter  string
	LinkedIn string
	Email    string
}

func Share(pageURL, title, whatsappNumber, phone string) ShareLinks {
	text := strings.TrimSpace(title + " " + pageURL)
	return ShareLinks{
		WhatsApp: WhatsAppLink(whatsappNumber, text),
		Call:     CallLink(phone),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(pageURL),
		Twitter:  "https://twitter.com/intent/tweet?" + url.Values{"url": {pageURL}, "text": {title}}.Encode(),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(pageURL),
		Email:    "mailto:?" + strings.ReplaceAll(url.Values{"subject": {title}, "body": {text}}.Encode(), "+", "%20"),
	}
}

// WhatsAppLink builds a wa.me deep link. Without a number the visitor picks the chat.
func WhatsAppLink(number, text string) string {
	link := "https://wa.me/" + digits(number)
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}

func CallLink(phone string) string {
	d := digits(phone)
	if d == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(phone), "+") {
		return "tel:+" + d
	}
	return "tel:" + d
}

// PackageEnquiry is the prefilled WhatsApp message for booking a package.
func PackageEnquiry(number, packageName, pageURL string) string {
	return WhatsAppLink(number, "Hi, I'm interested in the "+packageName+" package. "+pageURL)
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
