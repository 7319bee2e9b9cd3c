package cli

import (
	"github.com/sirupsen/logrus"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/picker"
)

// pickerOptions maps the loaded configuration onto controller options.
// whitelist, when non-empty, replaces the configured country codes.
func pickerOptions(c *config.Config, list []countries.Country, whitelist []string, onSelect func(countries.Country)) picker.Options {
	codes := c.CountryCodes
	if len(whitelist) > 0 {
		codes = config.NormalizeCodes(whitelist)
	}

	overrides := c.Translations
	return picker.Options{
		Catalog:               list,
		CountryCode:           c.CountryCode,
		CountryCodes:          codes,
		WithFilter:            c.WithFilter,
		WithFlag:              c.WithFlag,
		WithCallingCode:       c.WithCallingCode,
		WithCountryNameButton: c.WithCountryNameButton,
		Placeholder:           c.Placeholder,
		Language:              c.Language,
		Translations:          &overrides,
		OnSelect:              onSelect,
		Logger:                logrus.WithField("component", "picker"),
	}
}
