package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/output"
	"github.com/hightemp/countrypicker/internal/picker"
)

var listOnly []string

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List countries, optionally filtered by name or calling code",
	Long: `Lists the countries the picker would show. A query keeps countries
whose English name or calling code contains it.

Examples:
  countrypicker list                 # Whole catalog
  countrypicker list united          # United States, United Kingdom, ...
  countrypicker list +1              # +1, +61, +91, ... (substring match)
  countrypicker list --only US,GB,DE # Restrict to a set of codes`,
	Args: cobra.ArbitraryArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSliceVar(&listOnly, "only", nil, "restrict to these country codes (comma separated)")
}

func runList(cmd *cobra.Command, args []string) error {
	opts := pickerOptions(cfg, catalog, listOnly, func(countries.Country) {})
	opts.WithFilter = true

	ctrl, err := picker.New(opts)
	if err != nil {
		return err
	}
	ctrl.SetSearchText(strings.Join(args, " "))

	result := output.NewListResult(ctrl.VisibleCountries(), cfg.Language)
	if jsonOutput {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(jsonStr)
		return nil
	}

	if len(result.Results) == 0 {
		fmt.Fprintln(os.Stderr, ctrl.Strings().NoCountriesFound)
		return nil
	}
	fmt.Println(output.NewColorizer(output.IsTerminal(os.Stdout)).List(result))
	return nil
}
