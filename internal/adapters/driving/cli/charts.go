package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Manage stored charts",
	Long:  `List, view, or delete charts saved with 'jyotish chart --save'.`,
}

var chartsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored charts",
	Args:  cobra.NoArgs,
	RunE:  runChartsList,
}

var chartsGetCmd = &cobra.Command{
	Use:   "get [chart-id]",
	Short: "Show a stored chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runChartsGet,
}

var chartsDeleteCmd = &cobra.Command{
	Use:   "delete [chart-id]",
	Short: "Delete a stored chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runChartsDelete,
}

func init() {
	chartsGetCmd.Flags().Bool("vargas", false, "include divisional longitudes per body")

	chartsCmd.AddCommand(chartsListCmd)
	chartsCmd.AddCommand(chartsGetCmd)
	chartsCmd.AddCommand(chartsDeleteCmd)
	rootCmd.AddCommand(chartsCmd)
}

func runChartsList(cmd *cobra.Command, _ []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	charts, err := chartService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list charts: %w", err)
	}

	asJSON, err := wantJSON(cmd)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, charts)
	}

	if len(charts) == 0 {
		cmd.Println("No charts stored.")
		return nil
	}

	rows := make([][]string, 0, len(charts))
	for _, c := range charts {
		rows = append(rows, []string{
			c.ID,
			c.Name,
			c.Time.Format(time.RFC3339),
			formatGeo(c.Geo),
			c.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	printTable(cmd, []string{"ID", "Name", "Moment", "Location", "Saved"}, rows)
	cmd.Printf("Total: %d charts\n", len(charts))
	return nil
}

func runChartsGet(cmd *cobra.Command, args []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	chart, err := chartService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("chart %s not found", args[0])
		}
		return fmt.Errorf("failed to get chart: %w", err)
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

func runChartsDelete(cmd *cobra.Command, args []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	if err := chartService.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("chart %s not found", args[0])
		}
		return fmt.Errorf("failed to delete chart: %w", err)
	}

	cmd.Printf("Deleted chart: %s\n", args[0])
	return nil
}
