// Package cli implements the jyotish command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/custodia-labs/jyotish/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Flag and environment keys. Environment variables use the JYOTISH_ prefix
// with dashes replaced by underscores, e.g. JYOTISH_CONFIG_DIR.
const (
	flagConfigDir = "config-dir"
	flagDataDir   = "data-dir"
	flagReference = "reference"
	flagVerbose   = "verbose"
	flagLogFile   = "log-file"
	flagOutput    = "output"
	envPrefix     = "JYOTISH"
)

// annotationStandalone marks commands that run without the service graph.
const annotationStandalone = "standalone"

// logFile is the rotating log sink when --log-file is set.
var logFile *lumberjack.Logger

var rootCmd = &cobra.Command{
	Use:   "jyotish",
	Short: "Vedic chart arithmetic",
	Long: `Jyotish computes sidereal charts: body positions with dignities and
relationships, divisional charts, the sunrise-to-sunrise Jyotish day with
its traditional time units, and planetary period (dasha) sequences.

Settings live in ~/.jyotish/config.toml. Reference tables are embedded
and can be overridden with ~/.jyotish/reference.toml (or .yaml).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { teardown() },
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfigDir, "", "configuration directory (default ~/.jyotish)")
	flags.String(flagDataDir, "", "chart database directory (default <config-dir>/data)")
	flags.String(flagReference, "", "reference table override file (.toml, .yaml)")
	flags.BoolP(flagVerbose, "v", false, "verbose output")
	flags.String(flagLogFile, "", "write verbose logs to a rotating file")
	flags.StringP(flagOutput, "o", formatAuto, "output format: auto, text or json")

	_ = viper.BindPFlags(flags)
}

func initConfig() {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := setupLogging(); err != nil {
		return err
	}
	if isStandalone(cmd) {
		return nil
	}
	return bootstrap()
}

func setupLogging() error {
	path := viper.GetString(flagLogFile)
	logger.SetVerbose(viper.GetBool(flagVerbose) || path != "")
	if path == "" {
		return nil
	}

	logFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	logger.SetOutput(logFile)
	logger.SetTimestamps(true)
	return nil
}

func teardown() {
	closeServices()
	if logFile != nil {
		_ = logFile.Close()
		logger.SetOutput(os.Stderr)
		logger.SetTimestamps(false)
		logFile = nil
	}
}

func isStandalone(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationStandalone] == "true" {
			return true
		}
	}
	return false
}

// closeAll closes every closer and joins the errors.
func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
