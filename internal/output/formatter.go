// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/translations"
)

// CountryResult is one country as printed by the CLI.
type CountryResult struct {
	Input       string `json:"input,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	CallingCode string `json:"calling_code"`
	Flag        string `json:"flag"`
	Currency    string `json:"currency,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewCountryResult builds a result with the display name localized to lang.
func NewCountryResult(c countries.Country, lang string) *CountryResult {
	r := &CountryResult{
		Code:        c.Code,
		Name:        c.Name,
		DisplayName: translations.CountryName(c, lang),
		CallingCode: c.CallingCode,
		Flag:        c.Flag,
	}
	if cur, ok := c.CurrencyCode(); ok {
		r.Currency = cur
	}
	return r
}

// FormatText formats result as tab-separated text.
func (r *CountryResult) FormatText() string {
	if r.Error != "" {
		return FormatError(r.Input, r.Error)
	}

	currency := r.Currency
	if currency == "" {
		currency = "-"
	}

	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
		r.Code,
		r.Flag,
		r.DisplayName,
		r.CallingCode,
		currency,
	)
}

// FormatJSON formats result as JSON.
func (r *CountryResult) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListResult contains many results.
type ListResult struct {
	Results []*CountryResult
}

// NewListResult converts countries in order.
func NewListResult(list []countries.Country, lang string) *ListResult {
	results := make([]*CountryResult, len(list))
	for i, c := range list {
		results[i] = NewCountryResult(c, lang)
	}
	return &ListResult{Results: results}
}

// FormatText formats results as text (one line per result).
func (l *ListResult) FormatText() string {
	lines := make([]string, 0, len(l.Results))
	for _, r := range l.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats results as a JSON array. An empty list is "[]".
func (l *ListResult) FormatJSON() (string, error) {
	results := l.Results
	if results == nil {
		results = []*CountryResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatError formats an error line for batch output.
func FormatError(input, msg string) string {
	return fmt.Sprintf("%s\t-\t-\t-\tERROR: %s", input, msg)
}

// Colorizer highlights text output when writing to a terminal.
type Colorizer struct {
	code    *color.Color
	calling *color.Color
	errText *color.Color
}

// NewColorizer enables colors only when enabled is true.
func NewColorizer(enabled bool) *Colorizer {
	c := &Colorizer{
		code:    color.New(color.Bold),
		calling: color.New(color.FgCyan),
		errText: color.New(color.FgRed),
	}
	for _, col := range []*color.Color{c.code, c.calling, c.errText} {
		if enabled {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Text formats r like FormatText with the code and calling code highlighted.
func (c *Colorizer) Text(r *CountryResult) string {
	if r.Error != "" {
		return c.errText.Sprint(r.FormatText())
	}
	parts := strings.Split(r.FormatText(), "\t")
	parts[0] = c.code.Sprint(parts[0])
	parts[3] = c.calling.Sprint(parts[3])
	return strings.Join(parts, "\t")
}

// List formats every result of l with Text.
func (c *Colorizer) List(l *ListResult) string {
	lines := make([]string, 0, len(l.Results))
	for _, r := range l.Results {
		lines = append(lines, c.Text(r))
	}
	return strings.Join(lines, "\n")
}
