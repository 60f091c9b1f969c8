package validators

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase collapses runs of whitespace and title-cases each word, so
// "  new   DELHI" is stored as "New Delhi".
func TitleCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return s
	}
	return cases.Title(language.Und).String(s)
}
