package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/analytic"
	"github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/httpeph"
	"github.com/custodia-labs/jyotish/internal/logger"
)

var ephemerisCmd = &cobra.Command{
	Use:         "ephemeris",
	Short:       "Ephemeris service commands",
	Annotations: map[string]string{annotationStandalone: "true"},
}

var ephemerisServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the built-in ephemeris over HTTP",
	Long: `Serve the built-in analytic ephemeris over HTTP using the same JSON API
the 'http' ephemeris backend consumes. This lets several hosts share one
ephemeris, or lets a precise external service be swapped in later.

Endpoints:
  GET /position?jd=&body=
  GET /transit?jd=&body=&event=&lat=&lon=&alt=[&disc_center=&no_refraction=]
  GET /ayanamsa?jd=

Examples:
  jyotish ephemeris serve
  jyotish ephemeris serve --addr :8080`,
	RunE: runEphemerisServe,
}

func init() {
	ephemerisServeCmd.Flags().String("addr", ":7420", "listen address")
	ephemerisCmd.AddCommand(ephemerisServeCmd)
	rootCmd.AddCommand(ephemerisCmd)
}

func runEphemerisServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}

	eph := analytic.New()
	defer eph.Close()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           httpeph.NewHandler(eph),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Ephemeris (%s) listening on %s\n", eph.Name(), addr)
	logger.Info("Serving ephemeris on %s", addr)

	err = httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
