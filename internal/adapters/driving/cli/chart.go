package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute a chart",
	Long: `Compute a full chart for a moment and place: sidereal positions with
houses, nakshatras, dignities and relationships, the Jyotish day, Indian
time units and the dasha sequence.

Examples:
  jyotish chart --time "1985-07-12 06:30" --tz Asia/Kolkata --lat 12.97 --lon 77.59
  jyotish chart --time 2024-03-20T12:00:00Z --lat 51.48 --lon 0 --save --name greenwich`,
	RunE: runChart,
}

var siderealCmd = &cobra.Command{
	Use:   "sidereal",
	Short: "Show local sidereal time",
	Long:  `Show the local mean and apparent sidereal time for a moment and longitude.`,
	RunE:  runSidereal,
}

var vargaCmd = &cobra.Command{
	Use:   "varga <longitude>",
	Short: "Show divisional chart longitudes",
	Long: `Show the longitude of a sidereal position in every divisional chart
used by the configured tradition.`,
	Args: cobra.ExactArgs(1),
	RunE: runVarga,
}

func init() {
	addRequestFlags(chartCmd, true)
	chartCmd.Flags().Bool("save", false, "store the chart in the chart database")
	chartCmd.Flags().Bool("vargas", false, "include divisional longitudes per body")
	addRequestFlags(siderealCmd, true)

	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(siderealCmd)
	rootCmd.AddCommand(vargaCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	chart, err := chartService.Compute(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("chart failed: %w", err)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := chartService.Save(cmd.Context(), chart); err != nil {
			return fmt.Errorf("failed to save chart: %w", err)
		}
	}

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, chart)
	}

	withVargas, _ := cmd.Flags().GetBool("vargas")
	printChart(cmd, chart, withVargas)
	return nil
}

func printChart(cmd *cobra.Command, chart *domain.Chart, withVargas bool) {
	title := "Chart " + chart.ID
	if chart.Request.Name != "" {
		title += " (" + chart.Request.Name + ")"
	}
	printTitle(cmd, title)
	printField(cmd, "Moment", "%s (JD %.6f)", chart.Request.Time.Format(time.RFC3339), float64(chart.JD))
	printField(cmd, "Location", "%s", formatGeo(chart.Request.Geo))
	printField(cmd, "Ayanamsa", "%.6f", chart.Ayanamsa)
	printField(cmd, "Sidereal", "mean %s, apparent %s", formatHMS(chart.Sidereal.Mean), formatHMS(chart.Sidereal.Apparent))
	fmt.Fprintln(cmd.OutOrStdout())

	rows := make([][]string, 0, len(chart.Bodies))
	for _, b := range chart.Bodies {
		retro := ""
		if b.Position.Retrograde() {
			retro = "R"
		}
		rows = append(rows, []string{
			b.Position.Key.String(),
			strconv.Itoa(b.Sign),
			formatDegree(b.Degree),
			strconv.Itoa(b.House),
			fmt.Sprintf("%d/%d", b.Nakshatra+1, b.Pada),
			string(b.Dignity),
			retro,
		})
	}
	printTable(cmd, []string{"Body", "Sign", "Degree", "House", "Nak/Pada", "Dignity", ""}, rows)

	if len(chart.Unavailable) > 0 {
		keys := make([]string, len(chart.Unavailable))
		for i, k := range chart.Unavailable {
			keys[i] = k.String()
		}
		printWarning(cmd, "Unavailable: %s", strings.Join(keys, ", "))
	}

	if withVargas {
		for _, b := range chart.Bodies {
			printVargaLine(cmd, b.Position.Key.String(), b.Vargas)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())

	if chart.Day != nil {
		printDay(cmd, chart.Day, chart.IndianTime, chart.Request.Time.Location())
	} else {
		printWarning(cmd, "Jyotish day unavailable: %s", chart.DayError)
	}

	if chart.Dasha != nil {
		fmt.Fprintln(cmd.OutOrStdout())
		printActiveDasha(cmd, chart.Dasha, chart.JD, chart.Request.Time.Location())
	}
}

func runSidereal(cmd *cobra.Command, _ []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := chartService.SiderealTime(req)
	if err != nil {
		return fmt.Errorf("sidereal time failed: %w", err)
	}

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, st)
	}

	printTitle(cmd, "Local sidereal time")
	printField(cmd, "Moment", "%s", req.Time.Format(time.RFC3339))
	printField(cmd, "Longitude", "%.4f", req.Geo.Longitude)
	printField(cmd, "Mean", "%s", formatHMS(st.Mean))
	printField(cmd, "Apparent", "%s", formatHMS(st.Apparent))
	printField(cmd, "Nutation", "%.3f\"", st.NutationLongitude)
	printField(cmd, "Obliquity", "%.6f", st.Obliquity)
	return nil
}

func runVarga(cmd *cobra.Command, args []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	longitude, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: longitude %q", domain.ErrInvalidInput, args[0])
	}

	values, err := chartService.Vargas(longitude)
	if err != nil {
		return fmt.Errorf("varga failed: %w", err)
	}

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, values)
	}

	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v.Scheme, strconv.Itoa(v.Divisor), formatDegree(v.Value), strconv.Itoa(v.Sign)})
	}
	printTable(cmd, []string{"Chart", "Divisor", "Longitude", "Sign"}, rows)
	return nil
}

func printVargaLine(cmd *cobra.Command, key string, values []domain.VargaValue) {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%s:%d", v.Scheme, v.Sign))
	}
	printField(cmd, key, "%s", strings.Join(parts, " "))
}

func formatHMS(v domain.HMS) string {
	return fmt.Sprintf("%02d:%02d:%05.2f", v.Hours, v.Minutes, v.Seconds)
}

// formatDegree renders degrees as D°MM'SS".
func formatDegree(deg float64) string {
	secs := int(math.Round(deg * 3600))
	return fmt.Sprintf("%d°%02d'%02d\"", secs/3600, secs/60%60, secs%60)
}

func formatGeo(g domain.GeoPosition) string {
	return fmt.Sprintf("%.4f, %.4f, %.0f m", g.Latitude, g.Longitude, g.Altitude)
}

// formatJD renders a Julian Day as a clock time in loc.
func formatJD(jd domain.JulianDay, loc *time.Location) string {
	return jd.Time().In(loc).Format("2006-01-02 15:04:05 MST")
}
