// Package api serves the HTTP control surface: brightness read/write,
// device listing, health, version and Prometheus metrics.
package api

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/homeinfogmbh/backlight/internal/backlight"
	"github.com/homeinfogmbh/backlight/internal/events"
	"github.com/homeinfogmbh/backlight/internal/logging"
	"github.com/homeinfogmbh/backlight/internal/metrics"
	"github.com/homeinfogmbh/backlight/internal/version"
)

// Options configures the API server.
type Options struct {
	Backlight *backlight.Backlight
	Root      backlight.Root
	Bus       *events.Bus
	Metrics   *metrics.Metrics

	// Basic auth applies to all routes except health and metrics when
	// both fields are set.
	AuthUsername string
	AuthPassword string
}

// Server is the Huma v2 API server over the standard library mux.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	logger     *slog.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("Backlight API", version.String())
	config.Info.Description = "Screen backlight brightness control"
	config.Servers = []*huma.Server{}
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"basicAuth": {
			Type:   "http",
			Scheme: "basic",
		},
	}

	server := &Server{
		api:     humago.New(mux, config),
		mux:     mux,
		options: opts,
		logger:  logging.GetLogger("api"),
	}

	if opts.AuthUsername != "" && opts.AuthPassword != "" {
		server.api.UseMiddleware(server.basicAuthMiddleware(opts.AuthUsername, opts.AuthPassword))
	}

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}

	server.registerBrightnessRoutes()
	server.registerDeviceRoutes()
	server.registerMetaRoutes()
	return server
}

// Start serves on the given address until Stop or failure.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", "addr", addr)
	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down without waiting for open connections.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")
	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// Mux exposes the underlying mux, mainly for tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

// withAuth marks an operation as requiring basic auth.
func withAuth() []map[string][]string {
	return []map[string][]string{{"basicAuth": {}}}
}

// basicAuthMiddleware enforces basic auth on operations that declare a
// security requirement.
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		const prefix = "Basic "
		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, prefix) {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="Backlight API"`)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Authentication required")
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
		if err != nil {
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials format", err)
			return
		}

		parts := strings.SplitN(string(decoded), ":", 2)
		if len(parts) != 2 || parts[0] != username || parts[1] != password {
			ctx.SetHeader("WWW-Authenticate", `Basic realm="Backlight API"`)
			huma.WriteErr(s.api, ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		next(ctx)
	}
}

// registerMetaRoutes registers health and version endpoints.
func (s *Server) registerMetaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Tags:        []string{"health"},
		Security:    []map[string][]string{}, // no auth
	}, func(_ context.Context, _ *struct{}) (*HealthResponse, error) {
		resp := &HealthResponse{}
		resp.Body.Status = "ok"
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Tags:        []string{"health"},
		Security:    []map[string][]string{},
	}, func(_ context.Context, _ *struct{}) (*VersionResponse, error) {
		return &VersionResponse{Body: version.Get()}, nil
	})
}
