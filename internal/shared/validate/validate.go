package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,18}$`)
)

// Errors maps a field name to its first problem.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when nothing was recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.add(field, "is required")
	}
}

func (e Errors) Email(field, value string) {
	if value == "" {
		return
	}
	if !emailRe.MatchString(strings.TrimSpace(value)) {
		e.add(field, "must be a valid email address")
	}
}

func (e Errors) Phone(field, value string) {
	if value == "" {
		return
	}
	if !phoneRe.MatchString(strings.TrimSpace(value)) {
		e.add(field, "must be a valid phone number")
	}
}

func (e Errors) Range(field string, value, min, max int) {
	if value < min || value > max {
		e.add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
}

func (e Errors) MinLength(field, value string, n int) {
	if value != "" && utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		e.add(field, fmt.Sprintf("must be at least %d characters", n))
	}
}

func (e Errors) MaxLength(field, value string, n int) {
	if utf8.RuneCountInString(value) > n {
		e.add(field, fmt.Sprintf("must be at most %d characters", n))
	}
}
