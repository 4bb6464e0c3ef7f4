package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Request flag names shared by the computing commands.
const (
	flagTime   = "time"
	flagZone   = "tz"
	flagLat    = "lat"
	flagLon    = "lon"
	flagAlt    = "alt"
	flagName   = "name"
	flagSystem = "system"
	flagDepth  = "depth"
)

// now is replaceable in tests.
var now = time.Now

// addRequestFlags registers the chart request flags on a command.
// requireGeo marks latitude and longitude as mandatory.
func addRequestFlags(cmd *cobra.Command, requireGeo bool) {
	flags := cmd.Flags()
	flags.String(flagTime, "now", "chart moment, RFC 3339 or local 'YYYY-MM-DD HH:MM[:SS]'")
	flags.String(flagZone, "", "IANA time zone for local times, e.g. Asia/Kolkata (default system zone)")
	flags.Float64(flagLat, 0, "latitude in degrees, north positive")
	flags.Float64(flagLon, 0, "longitude in degrees, east positive")
	flags.Float64(flagAlt, 0, "altitude in metres")
	flags.String(flagName, "", "label stored with the chart")
	flags.String(flagSystem, "", "dasha system key (default from settings)")
	flags.Int(flagDepth, 0, "dasha nesting depth (default from settings)")
	if requireGeo {
		_ = cmd.MarkFlagRequired(flagLat)
		_ = cmd.MarkFlagRequired(flagLon)
	}
}

// requestFromFlags builds a chart request from the request flags.
func requestFromFlags(cmd *cobra.Command) (domain.ChartRequest, error) {
	flags := cmd.Flags()
	value, _ := flags.GetString(flagTime)
	zone, _ := flags.GetString(flagZone)

	moment, err := parseMoment(value, zone)
	if err != nil {
		return domain.ChartRequest{}, err
	}

	req := domain.ChartRequest{Time: moment}
	req.Name, _ = flags.GetString(flagName)
	req.Geo.Latitude, _ = flags.GetFloat64(flagLat)
	req.Geo.Longitude, _ = flags.GetFloat64(flagLon)
	req.Geo.Altitude, _ = flags.GetFloat64(flagAlt)
	req.DashaSystem, _ = flags.GetString(flagSystem)
	req.DashaDepth, _ = flags.GetInt(flagDepth)
	return req, nil
}

// parseMoment reads --time in the --tz zone.
func parseMoment(value, zone string) (time.Time, error) {
	return domain.ParseMoment(value, zone, now())
}
