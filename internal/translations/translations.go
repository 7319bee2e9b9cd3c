// Package translations resolves the picker's UI strings and localized
// country names, falling back to English.
package translations

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/hightemp/countrypicker/internal/countries"
)

// DefaultLanguage is used when no language is given or the requested one is
// not built in.
const DefaultLanguage = "en"

// Strings holds the UI strings shown by the picker.
type Strings struct {
	SearchPlaceholder string `json:"search_placeholder" yaml:"search_placeholder"`
	HeaderTitle       string `json:"header_title" yaml:"header_title"`
	NoCountriesFound  string `json:"no_countries_found" yaml:"no_countries_found"`
}

// Overrides are caller supplied replacements. Nil or empty fields keep the
// built-in value.
type Overrides struct {
	SearchPlaceholder *string `yaml:"search_placeholder"`
	HeaderTitle       *string `yaml:"header_title"`
	NoCountriesFound  *string `yaml:"no_countries_found"`
}

var builtin = map[string]Strings{
	"en": {
		SearchPlaceholder: "Search by name or code",
		HeaderTitle:       "Select Country",
		NoCountriesFound:  "No countries found",
	},
	"es": {
		SearchPlaceholder: "Buscar por nombre o código",
		HeaderTitle:       "Seleccionar País",
		NoCountriesFound:  "No se encontraron países",
	},
	"fr": {
		SearchPlaceholder: "Rechercher par nom ou code",
		HeaderTitle:       "Sélectionner un Pays",
		NoCountriesFound:  "Aucun pays trouvé",
	},
	"de": {
		SearchPlaceholder: "Nach Name oder Code durchsuchen",
		HeaderTitle:       "Land auswählen",
		NoCountriesFound:  "Keine Länder gefunden",
	},
}

// Resolve returns the UI strings for lang with overrides applied. All fields
// of the result are always set.
func Resolve(lang string, overrides *Overrides) Strings {
	if lang == "" {
		lang = DefaultLanguage
	}
	base, ok := builtin[lang]
	if !ok {
		base = builtin[DefaultLanguage]
	}
	if overrides == nil {
		return base
	}

	return Strings{
		SearchPlaceholder: pick(overrides.SearchPlaceholder, base.SearchPlaceholder),
		HeaderTitle:       pick(overrides.HeaderTitle, base.HeaderTitle),
		NoCountriesFound:  pick(overrides.NoCountriesFound, base.NoCountriesFound),
	}
}

func pick(override *string, fallback string) string {
	if override != nil && *override != "" {
		return *override
	}
	return fallback
}

// CountryName returns the display name of c in lang, or the English name
// when lang is empty, "en" or has no non-empty entry.
func CountryName(c countries.Country, lang string) string {
	if lang == "" || lang == DefaultLanguage {
		return c.Name
	}
	if name, ok := c.LocalizedName(lang); ok {
		return name
	}
	return c.Name
}

// Languages returns the built-in language codes, sorted.
func Languages() []string {
	langs := make([]string, 0, len(builtin))
	for lang := range builtin {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsBuiltin reports whether lang has a built-in string table.
func IsBuiltin(lang string) bool {
	_, ok := builtin[lang]
	return ok
}

// NormalizeLanguage canonicalizes user input such as "ES" or "de_DE" to a
// BCP 47 tag ("es", "de-DE"). Input that does not parse is only trimmed and
// lower-cased, which makes it resolve to English.
func NormalizeLanguage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return strings.ToLower(s)
	}
	return tag.String()
}
