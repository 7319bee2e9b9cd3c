// Package filter implements the picker's search: case-insensitive substring
// matching on English names and on calling codes.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hightemp/countrypicker/internal/countries"
)

// Filter returns the countries matching query, in input order.
//
// A blank query returns countries unchanged. Otherwise the query is trimmed
// and lower-cased, and a record matches when its lower-cased name contains
// it, or when its calling code contains it with any leading "+" removed from
// both sides. Digit queries match inside longer codes ("1" matches "+61").
func Filter(list []countries.Country, query string) []countries.Country {
	q, ok := normalize(query)
	if !ok {
		return list
	}

	lower := cases.Lower(language.Und)
	result := make([]countries.Country, 0)
	for _, c := range list {
		if matches(lower, c, q) {
			result = append(result, c)
		}
	}
	return result
}

// Match reports whether a single record matches query. A blank query matches
// everything.
func Match(c countries.Country, query string) bool {
	q, ok := normalize(query)
	if !ok {
		return true
	}
	return matches(cases.Lower(language.Und), c, q)
}

// normalize returns the trimmed, lower-cased query and false when it is blank.
func normalize(query string) (string, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", false
	}
	return cases.Lower(language.Und).String(q), true
}

func matches(lower cases.Caser, c countries.Country, q string) bool {
	if strings.Contains(lower.String(c.Name), q) {
		return true
	}
	code := strings.TrimPrefix(c.CallingCode, "+")
	return strings.Contains(code, strings.TrimPrefix(q, "+"))
}
