package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for jyotish resources.
	uriScheme = "jyotish://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the reference summary.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reference",
		Name:        "reference",
		Description: "All reference tables and where they were loaded from",
		MIMEType:    mimeJSON,
	}, s.handleReferenceResource)

	// Template for one reference section.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reference/{section}",
		Name:        "reference-section",
		Description: "One reference table: " + strings.Join(domain.ReferenceSections, ", "),
		MIMEType:    mimeJSON,
	}, s.handleReferenceSectionResource)

	// Static resource for stored charts.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "charts",
		Name:        "charts",
		Description: "Summaries of stored charts, newest first",
		MIMEType:    mimeJSON,
	}, s.handleChartsResource)

	// Template for one stored chart.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "charts/{chartId}",
		Name:        "chart",
		Description: "A stored chart with all annotations",
		MIMEType:    mimeJSON,
	}, s.handleChartResource)
}

// handleReferenceResource returns every table plus its source.
func (s *Server) handleReferenceResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reference == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	payload := struct {
		Source string                `json:"source"`
		Data   *domain.ReferenceData `json:"data"`
	}{
		Source: s.ports.Reference.Source(),
		Data:   s.ports.Reference.Current(),
	}
	return jsonResult(req.Params.URI, payload)
}

// handleReferenceSectionResource returns one reference table.
func (s *Server) handleReferenceSectionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Reference == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract section from URI: jyotish://reference/{section}
	section := extractSection(req.Params.URI)
	table, ok := s.ports.Reference.Current().Section(section)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, table)
}

// handleChartsResource returns summaries of stored charts.
func (s *Server) handleChartsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	charts, err := s.ports.Chart.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	if charts == nil {
		charts = []domain.ChartSummary{}
	}
	return jsonResult(req.Params.URI, charts)
}

// handleChartResource returns one stored chart.
func (s *Server) handleChartResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract chartId from URI: jyotish://charts/{chartId}
	chartID := extractChartID(req.Params.URI)
	if chartID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chart, err := s.ports.Chart.Get(ctx, chartID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting chart: %w", err)
	}
	return jsonResult(req.Params.URI, chart)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractSection extracts the section from a URI like jyotish://reference/{section}.
func extractSection(uri string) string {
	return trimSegment(uri, uriScheme+"reference/")
}

// extractChartID extracts the chart ID from a URI like jyotish://charts/{chartId}.
func extractChartID(uri string) string {
	return trimSegment(uri, uriScheme+"charts/")
}

// trimSegment returns the single path segment after prefix.
func trimSegment(uri, prefix string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(uri, prefix)
	if strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
