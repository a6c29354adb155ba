// Package i18n holds the display text tables for the supported languages.
package i18n

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lang selects a text table.
type Lang string

const (
	English Lang = "en"
	Hindi   Lang = "hi"
)

// Default is used whenever a selector does not resolve.
const Default = English

var supported = []language.Tag{language.English, language.Hindi}

var matcher = language.NewMatcher(supported)

// Parse resolves a selector string, falling back to Default.
func Parse(s string) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English
	case Hindi:
		return Hindi
	}
	return Default
}

// Match picks the best supported language for an Accept-Language header value.
func Match(acceptLanguage string) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	if supported[idx] == language.Hindi {
		return Hindi
	}
	return English
}

// Toggle flips between the two languages.
func Toggle(l Lang) Lang {
	if l == Hindi {
		return English
	}
	return Hindi
}

// Tag returns the BCP 47 tag for l.
func (l Lang) Tag() language.Tag {
	if l == Hindi {
		return language.Hindi
	}
	return language.English
}

// Upper upper-cases s with the casing rules of l.
func (l Lang) Upper(s string) string {
	return cases.Upper(l.Tag()).String(s)
}

// For returns the text table for l. Unknown selectors resolve to English, so
// a table is always returned.
func For(l Lang) Texts {
	if t, ok := tables[l]; ok {
		return t
	}
	return tables[Default]
}
