package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hightemp/countrypicker/internal/translations"
)

var stringsLanguages bool

var stringsCmd = &cobra.Command{
	Use:   "strings",
	Short: "Show the resolved UI strings for the configured language",
	Args:  cobra.NoArgs,
	RunE:  runStrings,
}

func init() {
	stringsCmd.Flags().BoolVar(&stringsLanguages, "languages", false, "list built-in languages instead")
}

func runStrings(cmd *cobra.Command, args []string) error {
	if stringsLanguages {
		fmt.Println(strings.Join(translations.Languages(), "\n"))
		return nil
	}

	overrides := cfg.Translations
	s := translations.Resolve(cfg.Language, &overrides)

	if jsonOutput {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("search_placeholder\t%s\n", s.SearchPlaceholder)
	fmt.Printf("header_title\t%s\n", s.HeaderTitle)
	fmt.Printf("no_countries_found\t%s\n", s.NoCountriesFound)
	return nil
}
