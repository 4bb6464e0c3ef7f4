package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/httpeph"
	"github.com/custodia-labs/jyotish/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure calculation, dasha and ephemeris settings.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key. The value is checked before it
is saved. Run 'jyotish settings keys' for the list of keys.

Examples:
  jyotish settings set dasha.depth 3
  jyotish settings set calculation.leap_rule gregorian
  jyotish settings set ephemeris.backend http
  jyotish settings set ephemeris.base_url http://localhost:7420`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Calculation]")
	cmd.Printf("  Leap rule: %s\n", settings.Calculation.LeapRule.Description())
	cmd.Printf("  Tradition: %s\n", settings.Calculation.Tradition)
	if settings.Calculation.ExaltationOrb > 0 {
		cmd.Printf("  Exaltation orb: %.1f°\n", settings.Calculation.ExaltationOrb)
	} else {
		cmd.Printf("  Exaltation orb: whole sign\n")
	}
	cmd.Println()

	cmd.Println("[Dasha]")
	cmd.Printf("  System: %s\n", settings.Dasha.System)
	cmd.Printf("  Depth: %d\n", settings.Dasha.Depth)
	cmd.Printf("  Year length: %g days\n", settings.Dasha.YearLength)
	cmd.Println()

	cmd.Println("[Ephemeris]")
	cmd.Printf("  Backend: %s\n", settings.Ephemeris.Backend.Description())
	if settings.Ephemeris.Backend == domain.EphemerisHTTP {
		cmd.Printf("  Base URL: %s\n", valueOr(settings.Ephemeris.BaseURL, "(not set)"))
		cmd.Printf("  Requests/s: %g\n", settings.Ephemeris.RequestsPerSecond)
	}
	cmd.Printf("  Disc centre: %s\n", yesNo(settings.Ephemeris.Flags.DiscCenter))
	cmd.Printf("  Refraction: %s\n", yesNo(!settings.Ephemeris.Flags.NoRefraction))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'jyotish settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	keys := settingsService.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Println(k)
	}
	return nil
}

// wizardStep is one multiple-choice question of the settings wizard.
type wizardStep struct {
	title   string
	key     string
	options []string
	labels  []string
	current string
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Jyotish Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	steps := []wizardStep{
		{
			title:   "Leap-year rule for sidereal time",
			key:     "calculation.leap_rule",
			options: []string{string(domain.LeapRuleJulian), string(domain.LeapRuleGregorian)},
			labels:  []string{domain.LeapRuleJulian.Description(), domain.LeapRuleGregorian.Description()},
			current: string(settings.Calculation.LeapRule),
		},
		{
			title:   "Tradition for divisional charts",
			key:     "calculation.tradition",
			options: []string{string(domain.TraditionParashara), string(domain.TraditionJaimini), string(domain.TraditionTajika)},
			current: string(settings.Calculation.Tradition),
		},
		dashaSystemStep(settings.Dasha.System),
		{
			title:   "Ephemeris backend",
			key:     "ephemeris.backend",
			options: []string{string(domain.EphemerisAnalytic), string(domain.EphemerisHTTP)},
			labels:  []string{domain.EphemerisAnalytic.Description(), domain.EphemerisHTTP.Description()},
			current: string(settings.Ephemeris.Backend),
		},
	}

	for i, step := range steps {
		cmd.Printf("Step %d: %s\n", i+1, step.title)
		choice, err := askChoice(cmd, reader, step)
		if err != nil {
			return err
		}
		if err := settingsService.Set(step.key, choice); err != nil {
			return fmt.Errorf("failed to set %s: %w", step.key, err)
		}
		cmd.Printf("Set %s to: %s\n\n", step.key, choice)
	}

	cmd.Printf("Dasha depth [%d]: ", settings.Dasha.Depth)
	if depth := readLine(reader); depth != "" {
		if err := settingsService.Set("dasha.depth", depth); err != nil {
			return fmt.Errorf("failed to set dasha.depth: %w", err)
		}
	}

	updated, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if updated.Ephemeris.Backend == domain.EphemerisHTTP {
		cmd.Printf("Ephemeris service URL [%s]: ", valueOr(updated.Ephemeris.BaseURL, httpeph.DefaultBaseURL))
		url := readLine(reader)
		if url == "" && updated.Ephemeris.BaseURL == "" {
			url = httpeph.DefaultBaseURL
		}
		if url != "" {
			if err := settingsService.Set("ephemeris.base_url", url); err != nil {
				return fmt.Errorf("failed to set ephemeris.base_url: %w", err)
			}
		}
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

// dashaSystemStep offers the systems known to the reference tables.
func dashaSystemStep(current string) wizardStep {
	step := wizardStep{title: "Default dasha system", key: "dasha.system", current: current}
	if referenceService == nil {
		step.options = []string{current}
		return step
	}
	systems := referenceService.Current().DashaSystems
	for key := range systems {
		step.options = append(step.options, key)
	}
	sort.Strings(step.options)
	for _, key := range step.options {
		step.labels = append(step.labels, systems[key].Name)
	}
	return step
}

func askChoice(cmd *cobra.Command, reader *bufio.Reader, step wizardStep) (string, error) {
	if len(step.options) == 0 {
		return "", fmt.Errorf("no options for %s", step.key)
	}
	defaultIdx := 1
	for i, opt := range step.options {
		label := opt
		if i < len(step.labels) && step.labels[i] != "" {
			label = fmt.Sprintf("%s - %s", opt, step.labels[i])
		}
		cmd.Printf("  %d. %s\n", i+1, label)
		if opt == step.current {
			defaultIdx = i + 1
		}
	}
	cmd.Printf("Enter choice [%d]: ", defaultIdx)
	idx := parseChoice(readLine(reader), len(step.options), defaultIdx)
	return step.options[idx-1], nil
}

// Helper functions.

func readLine(reader *bufio.Reader) string {
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
