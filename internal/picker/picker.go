// Package picker holds the state of one country picker: the selected
// country, whether the modal is open and the current search text. It owns no
// rendering; a view layer drives it and reads VisibleCountries.
package picker

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/filter"
	"github.com/hightemp/countrypicker/internal/translations"
)

// ErrNoSelectHandler is returned by New when Options.OnSelect is nil.
var ErrNoSelectHandler = errors.New("picker: OnSelect handler is required")

// Options is the declarative configuration supplied by the host.
type Options struct {
	// Catalog defaults to countries.All().
	Catalog []countries.Country

	// CountryCode preselects a country. Unknown codes are ignored.
	CountryCode string

	// CountryCodes restricts the list. Empty means the whole catalog.
	CountryCodes []string

	WithFilter            bool
	WithFlag              bool
	WithCallingCode       bool
	WithCountryNameButton bool

	// Placeholder labels the trigger button while nothing is selected.
	// Defaults to the resolved header title.
	Placeholder string

	Language     string
	Translations *translations.Overrides

	OnSelect func(countries.Country)
	OnOpen   func()
	OnClose  func()

	Logger logrus.FieldLogger
}

// Handle is the imperative control surface a host can keep independently of
// the view.
type Handle interface {
	Open()
	Close()
}

// Controller keeps its own copy of the catalog; records it returns are
// copies. It is not safe for concurrent use. Notifications run synchronously
// after the state change they report, so handlers may call back into it.
type Controller struct {
	opts    Options
	catalog []countries.Country
	strings translations.Strings
	log     logrus.FieldLogger

	selected   *countries.Country
	open       bool
	searchText string
}

// New creates a closed controller.
func New(opts Options) (*Controller, error) {
	if opts.OnSelect == nil {
		return nil, ErrNoSelectHandler
	}

	c := &Controller{
		opts:    opts,
		catalog: countries.Clone(opts.Catalog),
		strings: translations.Resolve(opts.Language, opts.Translations),
		log:     opts.Logger,
	}
	if c.catalog == nil {
		c.catalog = countries.All()
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}

	if opts.CountryCode != "" {
		if !c.SelectCode(opts.CountryCode) {
			c.log.WithField("country_code", opts.CountryCode).Debug("Initial country not in catalog")
		}
	}

	return c, nil
}

// SelectCode sets the selection by ISO code without notifying the host.
// Returns false when the code is not in the catalog.
func (c *Controller) SelectCode(code string) bool {
	found, ok := c.find(code)
	if !ok {
		return false
	}
	c.selected = found
	return true
}

// find returns a pointer into the catalog so the selection always refers to
// a catalog entry.
func (c *Controller) find(code string) (*countries.Country, bool) {
	match, ok := countries.FindByCode(c.catalog, code)
	if !ok {
		return nil, false
	}
	for i := range c.catalog {
		if c.catalog[i].Code == match.Code {
			return &c.catalog[i], true
		}
	}
	return nil, false
}

// Open shows the modal and fires OnOpen. No-op when already open.
func (c *Controller) Open() {
	if c.open {
		return
	}
	c.open = true
	c.log.Debug("Picker opened")
	if c.opts.OnOpen != nil {
		c.opts.OnOpen()
	}
}

// Close hides the modal, clears the search text and fires OnClose. No-op
// when already closed.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.searchText = ""
	c.log.Debug("Picker closed")
	if c.opts.OnClose != nil {
		c.opts.OnClose()
	}
}

// Select records country as the selection, fires OnSelect and closes the
// modal. Countries outside the catalog are rejected and nothing fires.
func (c *Controller) Select(country countries.Country) bool {
	found, ok := c.find(country.Code)
	if !ok {
		c.log.WithField("country_code", country.Code).Warn("Ignoring selection outside the catalog")
		return false
	}
	c.selected = found
	c.log.WithField("country_code", found.Code).Debug("Country selected")
	c.opts.OnSelect(found.Clone())
	c.Close()
	return true
}

// SetSearchText replaces the search text.
func (c *Controller) SetSearchText(s string) {
	c.searchText = s
}

// SearchText returns the current search text.
func (c *Controller) SearchText() string {
	return c.searchText
}

// IsOpen reports whether the modal is shown.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Selected returns the selected country, if any.
func (c *Controller) Selected() (countries.Country, bool) {
	if c.selected == nil {
		return countries.Country{}, false
	}
	return c.selected.Clone(), true
}

// VisibleCountries is the whitelisted catalog, filtered by the search text
// when filtering is enabled. The records are copies owned by the caller.
func (c *Controller) VisibleCountries() []countries.Country {
	list := countries.RestrictTo(c.catalog, c.opts.CountryCodes)
	query := ""
	if c.opts.WithFilter {
		query = c.searchText
	}
	return countries.Clone(filter.Filter(list, query))
}

// Strings returns the resolved UI strings.
func (c *Controller) Strings() translations.Strings {
	return c.strings
}

// Placeholder returns the trigger button label used without a selection.
func (c *Controller) Placeholder() string {
	if c.opts.Placeholder != "" {
		return c.opts.Placeholder
	}
	return c.strings.HeaderTitle
}

// DisplayName returns the localized name of country.
func (c *Controller) DisplayName(country countries.Country) string {
	return translations.CountryName(country, c.opts.Language)
}

// Options returns the configuration the controller was created with.
func (c *Controller) Options() Options {
	return c.opts
}

// Handle returns the imperative open/close surface.
func (c *Controller) Handle() Handle {
	return c
}
