package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/output"
	"github.com/hightemp/countrypicker/internal/picker"
	"github.com/hightemp/countrypicker/internal/tui"
)

var (
	pickSelect string
	pickOnly   []string
	pickOpen   bool
	pickStay   bool
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a country interactively",
	Long: `Shows a country picker in the terminal. Press enter to open the list,
type to search, enter to select and esc to close. The selected country is
printed to stdout when the picker exits.

Examples:
  countrypicker pick
  countrypicker pick --select US --open
  countrypicker pick --only US,CA,MX --lang es`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVar(&pickSelect, "select", "", "initially selected country code")
	pickCmd.Flags().StringSliceVar(&pickOnly, "only", nil, "restrict to these country codes (comma separated)")
	pickCmd.Flags().BoolVar(&pickOpen, "open", false, "start with the country list open")
	pickCmd.Flags().BoolVar(&pickStay, "stay", false, "keep running after a selection (quit with q)")
}

func runPick(cmd *cobra.Command, args []string) error {
	log := logrus.WithField("component", "pick")

	opts := pickerOptions(cfg, catalog, pickOnly, func(c countries.Country) {
		log.WithField("country_code", c.Code).Info("Country selected")
	})
	if cmd.Flags().Changed("select") {
		opts.CountryCode = pickSelect
	}
	opts.OnOpen = func() { log.Debug("List opened") }
	opts.OnClose = func() { log.Debug("List closed") }

	ctrl, err := picker.New(opts)
	if err != nil {
		return err
	}
	if pickOpen {
		ctrl.Handle().Open()
	}

	model := tui.New(ctrl, tui.Renderers{}, !pickStay)
	final, err := tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	selected, ok := ctrl.Selected()
	if final.(tui.Model).Cancelled() || !ok {
		exitWithCode(ExitCancelled, "No country selected")
		return nil
	}

	result := output.NewCountryResult(selected, cfg.Language)
	if jsonOutput {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(jsonStr)
		return nil
	}
	fmt.Println(result.FormatText())
	return nil
}
