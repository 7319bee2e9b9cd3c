package translations

import (
	"testing"

	"github.com/hightemp/countrypicker/internal/countries"
)

func strPtr(s string) *string { return &s }

func TestResolveBuiltin(t *testing.T) {
	tests := []struct {
		lang        string
		headerTitle string
	}{
		{"", "Select Country"},
		{"en", "Select Country"},
		{"es", "Seleccionar País"},
		{"fr", "Sélectionner un Pays"},
		{"de", "Land auswählen"},
		{"zz", "Select Country"},
		{"EN", "Select Country"},
	}

	for _, tc := range tests {
		got := Resolve(tc.lang, nil)
		if got.HeaderTitle != tc.headerTitle {
			t.Errorf("Resolve(%q).HeaderTitle = %q, expected %q", tc.lang, got.HeaderTitle, tc.headerTitle)
		}
	}
}

func TestResolveAlwaysPopulated(t *testing.T) {
	empty := &Overrides{
		SearchPlaceholder: strPtr(""),
		HeaderTitle:       strPtr(""),
		NoCountriesFound:  strPtr(""),
	}

	for _, lang := range []string{"", "en", "es", "fr", "de", "xx", "pt-BR"} {
		for _, o := range []*Overrides{nil, {}, empty} {
			got := Resolve(lang, o)
			if got.SearchPlaceholder == "" || got.HeaderTitle == "" || got.NoCountriesFound == "" {
				t.Errorf("Resolve(%q, %+v) returned empty field: %+v", lang, o, got)
			}
		}
	}
}

func TestResolveUnknownMatchesEnglish(t *testing.T) {
	o := &Overrides{HeaderTitle: strPtr("Pick one")}
	if Resolve("xx", o) != Resolve("en", o) {
		t.Errorf("unknown language should resolve like en")
	}
	if Resolve("xx", nil) != Resolve("en", nil) {
		t.Errorf("unknown language should resolve like en")
	}
}

func TestResolveOverrides(t *testing.T) {
	o := &Overrides{
		SearchPlaceholder: strPtr("Type a country"),
		NoCountriesFound:  strPtr(""),
	}

	got := Resolve("es", o)
	if got.SearchPlaceholder != "Type a country" {
		t.Errorf("SearchPlaceholder = %q", got.SearchPlaceholder)
	}
	if got.HeaderTitle != "Seleccionar País" {
		t.Errorf("HeaderTitle = %q, expected built-in", got.HeaderTitle)
	}
	if got.NoCountriesFound != "No se encontraron países" {
		t.Errorf("NoCountriesFound = %q, expected built-in for empty override", got.NoCountriesFound)
	}
}

func TestResolveDoesNotShareTable(t *testing.T) {
	s := Resolve("en", nil)
	s.HeaderTitle = "changed"
	if Resolve("en", nil).HeaderTitle != "Select Country" {
		t.Error("built-in table was modified through a returned value")
	}
}

func TestCountryName(t *testing.T) {
	us := countries.Country{
		Code:  "US",
		Name:  "United States",
		Names: map[string]string{"es": "Estados Unidos", "fr": ""},
	}

	tests := []struct {
		lang     string
		expected string
	}{
		{"", "United States"},
		{"en", "United States"},
		{"es", "Estados Unidos"},
		{"fr", "United States"}, // empty entry
		{"zz", "United States"},
	}

	for _, tc := range tests {
		if got := CountryName(us, tc.lang); got != tc.expected {
			t.Errorf("CountryName(US, %q) = %q, expected %q", tc.lang, got, tc.expected)
		}
	}

	plain := countries.Country{Code: "XK", Name: "Kosovo"}
	if got := CountryName(plain, "de"); got != "Kosovo" {
		t.Errorf("CountryName without names = %q", got)
	}
}

func TestCountryNameEnglishIdentity(t *testing.T) {
	for _, c := range countries.All() {
		if got := CountryName(c, "en"); got != c.Name {
			t.Errorf("CountryName(%s, en) = %q, expected %q", c.Code, got, c.Name)
		}
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	expected := []string{"de", "en", "es", "fr"}
	if len(langs) != len(expected) {
		t.Fatalf("Languages() = %v", langs)
	}
	for i := range expected {
		if langs[i] != expected[i] {
			t.Errorf("Languages()[%d] = %s, expected %s", i, langs[i], expected[i])
		}
	}
	if !IsBuiltin("es") || IsBuiltin("pt") {
		t.Error("IsBuiltin mismatch")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"ES", "es"},
		{" fr ", "fr"},
		{"de_DE", "de-DE"},
		{"en-us", "en-US"},
		{"not a tag!", "not a tag!"},
	}

	for _, tc := range tests {
		if got := NormalizeLanguage(tc.input); got != tc.expected {
			t.Errorf("NormalizeLanguage(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}
