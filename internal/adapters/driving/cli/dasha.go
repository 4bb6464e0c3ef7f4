package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "Show the dasha sequence",
	Long: `Show the planetary periods anchored to the Moon's nakshatra at the chart
moment. Periods running at --at (default now) are marked with *.

Examples:
  jyotish dasha --time "1985-07-12 06:30" --tz Asia/Kolkata
  jyotish dasha --time 1985-07-12T01:00:00Z --system yogini --depth 1`,
	RunE: runDasha,
}

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show the Jyotish day and Indian time",
	Long: `Show the sunrise-to-sunrise day containing a moment, how far it has
progressed, and the traditional time units elapsed since sunrise.`,
	RunE: runDay,
}

func init() {
	addRequestFlags(dashaCmd, false)
	dashaCmd.Flags().String("at", "now", "moment whose running periods are marked")
	addRequestFlags(dayCmd, true)

	rootCmd.AddCommand(dashaCmd)
	rootCmd.AddCommand(dayCmd)
}

func runDasha(cmd *cobra.Command, _ []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	atValue, _ := cmd.Flags().GetString("at")
	zone, _ := cmd.Flags().GetString(flagZone)
	at, err := parseMoment(atValue, zone)
	if err != nil {
		return err
	}

	tree, err := chartService.Dasha(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("dasha failed: %w", err)
	}

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, tree)
	}

	printTitle(cmd, "Dasha: "+tree.System)
	printDashaTree(cmd, tree.Periods, domain.JulianDayFromTime(at), req.Time.Location())
	return nil
}

func printDashaTree(cmd *cobra.Command, periods []domain.DashaPeriod, at domain.JulianDay, loc *time.Location) {
	for _, p := range periods {
		marker := " "
		if p.Contains(at) {
			marker = "*"
		}
		indent := strings.Repeat("  ", p.Depth-1)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s%-4s %s  %s\n",
			marker, indent, p.Body, formatDate(p.StartJD, loc), formatDate(p.EndJD, loc))
		printDashaTree(cmd, p.Sub, at, loc)
	}
}

// printActiveDasha shows the chain of periods running at jd.
func printActiveDasha(cmd *cobra.Command, tree *domain.DashaTree, jd domain.JulianDay, loc *time.Location) {
	path := domain.ActivePath(tree.Periods, jd)
	if len(path) == 0 {
		printField(cmd, "Dasha", "%s: no running period", tree.System)
		return
	}
	lords := make([]string, len(path))
	for i, p := range path {
		lords[i] = p.Body.String()
	}
	last := path[len(path)-1]
	printField(cmd, "Dasha", "%s: %s until %s", tree.System, strings.Join(lords, " > "), formatDate(last.EndJD, loc))
}

func runDay(cmd *cobra.Command, _ []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	day, it, err := chartService.Day(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("day failed: %w", err)
	}

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, struct {
			Day        *domain.JyotishDay  `json:"day"`
			IndianTime *domain.IndianTime `json:"indian_time"`
		}{day, it})
	}

	printDay(cmd, day, it, req.Time.Location())
	return nil
}

func printDay(cmd *cobra.Command, day *domain.JyotishDay, it *domain.IndianTime, loc *time.Location) {
	printTitle(cmd, "Jyotish day")
	printField(cmd, "Started", "%s", formatJD(day.DayStart, loc))
	printField(cmd, "Length", "%.4f days", day.DayLength)
	printField(cmd, "Progress", "%.2f%%", day.Progress*100)

	period := "night"
	if day.IsDayTime {
		period = "day"
	}
	printField(cmd, "Period", "%s", period)

	tr := day.Transitions
	printField(cmd, "Sunrise", "%s", formatEvent(tr.Rise, loc))
	printField(cmd, "Sunset", "%s", formatEvent(tr.Set, loc))
	printField(cmd, "Next rise", "%s", formatEvent(tr.NextRise, loc))
	if tr.MC != nil {
		printField(cmd, "Noon", "%s", formatEvent(*tr.MC, loc))
	}

	if it == nil {
		return
	}
	parts := make([]string, 0, len(it.Units))
	for _, u := range it.Units {
		parts = append(parts, fmt.Sprintf("%s %.2f", u.Key, u.Value))
	}
	printField(cmd, "Indian time", "%s", strings.Join(parts, ", "))
}

func formatEvent(ev domain.TransitionEvent, loc *time.Location) string {
	if !ev.Valid {
		return "none"
	}
	return formatJD(ev.JD, loc)
}

func formatDate(jd domain.JulianDay, loc *time.Location) string {
	return jd.Time().In(loc).Format("2006-01-02")
}
