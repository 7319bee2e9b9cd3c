// Package countries provides the ISO-3166 country catalog used by the picker:
// codes, English names, calling codes, flags, currencies and localized names.
package countries

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"
)

//go:embed countries.txt
var catalogData string

var (
	defaultCatalog *Catalog
	once           sync.Once
)

// Country is a single catalog record. Catalog accessors hand out copies, so
// modifying a returned record never changes the catalog.
type Country struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	CallingCode string            `json:"calling_code"`
	Flag        string            `json:"flag"`
	Currency    *string           `json:"currency,omitempty"`
	Names       map[string]string `json:"names,omitempty"`
}

// CurrencyCode returns the ISO 4217 currency code, if the record has one.
func (c Country) CurrencyCode() (string, bool) {
	if c.Currency == nil {
		return "", false
	}
	return *c.Currency, true
}

// LocalizedName returns the name for lang when the record carries a non-empty one.
func (c Country) LocalizedName(lang string) (string, bool) {
	name, ok := c.Names[lang]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Clone returns a copy of c that shares no maps or pointers with it.
func (c Country) Clone() Country {
	if c.Currency != nil {
		currency := *c.Currency
		c.Currency = &currency
	}
	c.Names = maps.Clone(c.Names)
	return c
}

// Clone returns a deep copy of list.
func Clone(list []Country) []Country {
	if list == nil {
		return nil
	}
	result := make([]Country, len(list))
	for i, c := range list {
		result[i] = c.Clone()
	}
	return result
}

// Catalog is an ordered, immutable set of countries keyed by ISO code.
type Catalog struct {
	records []Country
	byCode  map[string]int
}

// Default returns the embedded catalog. It is parsed once; a malformed
// embedded asset panics.
func Default() *Catalog {
	once.Do(func() {
		c, err := Parse(strings.NewReader(catalogData))
		if err != nil {
			panic(fmt.Sprintf("countries: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse reads a catalog in the pipe separated format of countries.txt:
//
//	CODE|English name|+calling code|CURRENCY|lang=Name;lang=Name
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{
		records: make([]Country, 0, 256),
		byCode:  make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		country, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, dup := c.byCode[country.Code]; dup {
			return nil, fmt.Errorf("line %d: duplicate country code %s", lineNo, country.Code)
		}
		c.byCode[country.Code] = len(c.records)
		c.records = append(c.records, country)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return c, nil
}

func parseLine(line string) (Country, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return Country{}, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}

	code := strings.ToUpper(strings.TrimSpace(parts[0]))
	if !isAlpha2(code) {
		return Country{}, fmt.Errorf("invalid country code %q", parts[0])
	}

	name := strings.TrimSpace(parts[1])
	if name == "" {
		return Country{}, fmt.Errorf("%s: empty name", code)
	}

	calling, err := normalizeCallingCode(parts[2])
	if err != nil {
		return Country{}, fmt.Errorf("%s: %w", code, err)
	}

	country := Country{
		Code:        code,
		Name:        name,
		CallingCode: calling,
		Flag:        flagEmoji(code),
	}

	if len(parts) > 3 {
		if cur := strings.ToUpper(strings.TrimSpace(parts[3])); cur != "" {
			country.Currency = &cur
		}
	}

	if len(parts) > 4 {
		names, err := parseNames(parts[4])
		if err != nil {
			return Country{}, fmt.Errorf("%s: %w", code, err)
		}
		country.Names = names
	}

	return country, nil
}

func parseNames(field string) (map[string]string, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}

	names := make(map[string]string)
	for _, pair := range strings.Split(field, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		lang, name, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed name entry %q", pair)
		}
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return nil, fmt.Errorf("malformed name entry %q", pair)
		}
		names[lang] = strings.TrimSpace(name)
	}
	if len(names) == 0 {
		return nil, nil
	}
	return names, nil
}

func normalizeCallingCode(s string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "+")
	if digits == "" {
		return "", fmt.Errorf("empty calling code")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid calling code %q", s)
		}
	}
	return "+" + digits, nil
}

func isAlpha2(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// flagEmoji builds the flag from two Regional Indicator Symbols
// (A = U+1F1E6 ... Z = U+1F1FF). code must already be upper-case alpha-2.
func flagEmoji(code string) string {
	first := rune(0x1F1E6 + int32(code[0]-'A'))
	second := rune(0x1F1E6 + int32(code[1]-'A'))
	return string([]rune{first, second})
}

// All returns the records in catalog order. The records are deep copies.
func (c *Catalog) All() []Country {
	return Clone(c.records)
}

// Lookup finds a record by ISO code, ignoring case and surrounding space.
func (c *Catalog) Lookup(code string) (Country, bool) {
	idx, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, false
	}
	return c.records[idx].Clone(), true
}

// Count returns the number of records.
func (c *Catalog) Count() int {
	return len(c.records)
}

// Codes returns all ISO codes (uppercase) in catalog order.
func (c *Catalog) Codes() []string {
	result := make([]string, len(c.records))
	for i, r := range c.records {
		result[i] = r.Code
	}
	return result
}

// FindByCode returns the first record in countries whose code equals code,
// compared case-insensitively.
func FindByCode(countries []Country, code string) (Country, bool) {
	code = strings.TrimSpace(code)
	for _, c := range countries {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Country{}, false
}

// RestrictTo keeps the records whose code appears in codes, preserving the
// order of countries. An empty codes list means no restriction.
func RestrictTo(countries []Country, codes []string) []Country {
	if len(codes) == 0 {
		return countries
	}

	allowed := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		allowed[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}

	result := make([]Country, 0, len(codes))
	for _, c := range countries {
		if _, ok := allowed[strings.ToUpper(c.Code)]; ok {
			result = append(result, c)
		}
	}
	return result
}

// All returns the embedded catalog records.
func All() []Country {
	return Default().All()
}

// Lookup finds a record in the embedded catalog.
func Lookup(code string) (Country, bool) {
	return Default().Lookup(code)
}

// GetName returns the English name for the given ISO-3166 alpha-2 code.
// Returns empty string if not found.
func GetName(code string) string {
	c, _ := Lookup(code)
	return c.Name
}

// IsValid checks if the given code is in the embedded catalog.
func IsValid(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Count returns the number of countries in the embedded catalog.
func Count() int {
	return Default().Count()
}

// Codes returns all ISO codes of the embedded catalog.
func Codes() []string {
	return Default().Codes()
}

// LoadCodes parses a whitelist file (one code per line, # comments allowed).
// Returns codes in uppercase.
func LoadCodes(content string) ([]string, error) {
	var result []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code := strings.ToUpper(line)
		if len(code) == 2 {
			result = append(result, code)
		}
	}
	return result, scanner.Err()
}
