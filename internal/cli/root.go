// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/logging"
	"github.com/hightemp/countrypicker/internal/translations"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var (
	configPath  string
	language    string
	logLevel    string
	logFile     string
	catalogFile string
	codesFile   string
	jsonOutput  bool
)

// Loaded in PersistentPreRunE
var (
	cfg     *config.Config
	catalog []countries.Country
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "countrypicker",
	Short: "Country picker - browse, search and select countries",
	Long: `countrypicker lists, searches and interactively selects countries
with their flags, calling codes and currencies.

List countries, optionally searching by name or calling code:
  countrypicker list
  countrypicker list united
  countrypicker list +44 --lang es

Look up codes (or read them from stdin):
  countrypicker lookup DE
  cat codes.txt | countrypicker lookup

Pick a country interactively:
  countrypicker pick --select US`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "language for UI strings and country names (en, es, fr, de)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "load countries from this file instead of the built-in catalog")
	rootCmd.PersistentFlags().StringVar(&codesFile, "only-file", "", "restrict to the country codes listed in this file (one per line)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(stringsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvironment reads the config file, applies flag overrides, configures
// logging and loads the catalog.
func loadEnvironment(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	loaded, err := config.Load(configPath, flags.Changed("config"))
	if err != nil {
		return err
	}

	if flags.Changed("lang") {
		loaded.Language = translations.NormalizeLanguage(language)
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		loaded.LogFile = logFile
	}
	if flags.Changed("catalog") {
		loaded.CatalogFile = catalogFile
	}
	if flags.Changed("only-file") {
		loaded.CountryCodesFile = codesFile
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	if err := loaded.LoadCodesFile(); err != nil {
		return err
	}

	if err := logging.Setup(loaded.LogLevel, loaded.LogFile, loaded.LogRotation); err != nil {
		return err
	}

	list, err := loadCatalog(loaded.CatalogFile)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"config":    configPath,
		"language":  loaded.Language,
		"countries": len(list),
	}).Debug("Environment loaded")

	cfg = loaded
	catalog = list
	return nil
}

func loadCatalog(path string) ([]countries.Country, error) {
	if path == "" {
		return countries.All(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := countries.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c.All(), nil
}

// ExitCode constants
const (
	ExitSuccess      = 0
	ExitInvalidInput = 2
	ExitNotFound     = 4
	ExitCancelled    = 5
)

// Replaced in tests.
var (
	exit      = os.Exit
	closeLogs = logging.Close
)

// exitWithCode prints msg and exits. os.Exit skips PersistentPostRun, so the
// log file is closed here.
func exitWithCode(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	closeLogs()
	exit(code)
}
