// Package mcp provides an MCP (Model Context Protocol) server adapter for jyotish.
// It lets AI assistants compute charts, dashas and divisional longitudes
// and read the reference tables behind them.
package mcp

import "errors"

// ErrMissingChartService is returned when the chart service is not provided.
var ErrMissingChartService = errors.New("mcp: chart service is required")
