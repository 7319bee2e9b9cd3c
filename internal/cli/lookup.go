package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hightemp/countrypicker/internal/batch"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/output"
)

var lookupSearch bool

var lookupCmd = &cobra.Command{
	Use:   "lookup [code]",
	Short: "Look up a country by ISO 3166-1 alpha-2 code",
	Long: `Looks up a single code, or reads one code per line from stdin.

Examples:
  countrypicker lookup de
  cat codes.txt | countrypicker lookup --json
  printf 'united\n+49\n' | countrypicker lookup --search`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupSearch, "search", false, "treat stdin lines as search queries instead of codes")
}

func runLookup(cmd *cobra.Command, args []string) error {
	list := countries.RestrictTo(catalog, cfg.CountryCodes)

	if len(args) == 1 {
		return lookupSingle(list, args[0])
	}

	// Check if stdin is a terminal
	if output.IsTerminal(os.Stdin) {
		return cmd.Help()
	}

	mode := batch.ModeCode
	if lookupSearch {
		mode = batch.ModeSearch
	}
	processor := batch.NewProcessor(list, cfg.Language, mode, logrus.WithField("component", "batch"))
	return processor.ProcessInput(os.Stdin, os.Stdout, jsonOutput)
}

func lookupSingle(list []countries.Country, code string) error {
	if len(code) != 2 {
		exitWithCode(ExitInvalidInput, fmt.Sprintf("Invalid country code: %s", code))
		return nil
	}

	c, ok := countries.FindByCode(list, code)
	if !ok {
		exitWithCode(ExitNotFound, notFoundMessage(code))
		return nil
	}

	result := output.NewCountryResult(c, cfg.Language)
	if jsonOutput {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(jsonStr)
		return nil
	}

	fmt.Println(output.NewColorizer(output.IsTerminal(os.Stdout)).Text(result))
	return nil
}

// notFoundMessage tells a code missing from the configured list apart from
// one that is not a known country at all.
func notFoundMessage(code string) string {
	if countries.IsValid(code) {
		return fmt.Sprintf("Country %s (%s) is not in the configured list", strings.ToUpper(code), countries.GetName(code))
	}
	return fmt.Sprintf("Country %s not found", code)
}
