package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jyotish/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions tells clients how the tools fit together.
const instructions = `Times are RFC 3339 with an offset; the offset is the civil time zone.
Longitudes are degrees east positive, latitudes north positive.
compute_chart returns everything at once; dasha, varga and sidereal_time
answer narrower questions. Reference tables are readable as resources.`

// Server exposes chart computations as MCP tools and resources.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a server and registers every tool and resource.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "jyotish", Version: Version},
		&mcp.ServerOptions{Instructions: instructions},
	)
	server.AddReceivingMiddleware(logRequests)

	s := &Server{
		ports:  ports,
		server: server,
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// logRequests logs each incoming method with its duration.
func logRequests(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		start := time.Now()
		result, err := next(ctx, method, req)
		if err != nil {
			logger.Warn("mcp %s failed after %s: %v", method, time.Since(start).Round(time.Millisecond), err)
			return result, err
		}
		logger.Debug("mcp %s in %s", method, time.Since(start).Round(time.Millisecond))
		return result, nil
	}
}

// Run serves over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled. GET /health reports liveness and the reference source.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("MCP server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler returns the HTTP routes: /health plus the MCP endpoint at /.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := struct {
		Status    string `json:"status"`
		Version   string `json:"version"`
		Reference string `json:"reference,omitempty"`
	}{
		Status:  "ok",
		Version: Version,
	}
	if s.ports.Reference != nil {
		status.Reference = s.ports.Reference.Source()
	}

	w.Header().Set("Content-Type", mimeJSON)
	json.NewEncoder(w).Encode(status) //nolint:errcheck
}
