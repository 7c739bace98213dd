// Package site serves the server-rendered dashboard page.
package site

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/okian/matchscope/internal/adapters/http/api"
	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("dashboard render failed")
)

// Dependencies is the slice of the pipeline service the dashboard reads.
type Dependencies interface {
	Competitions(ctx context.Context) ([]model.Competition, error)
	Seasons(ctx context.Context, competitionID int) ([]model.Season, error)
	Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error)
	Overview(ctx context.Context, sel service.Selection) (*service.Overview, error)
	PlayerDetail(ctx context.Context, sel service.Selection) (*service.PlayerDetail, error)
}

// Option configures the dashboard handler.
type Option func(*DashboardHandler)

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *DashboardHandler) {
		if l != nil {
			h.log = l
		}
	}
}

// Register attaches the dashboard page to mux behind the same request id and
// metrics middleware as the API routes.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewDashboardHandler(deps, opts...)
	mux.HandleFunc("GET /{$}", api.MetricsMiddleware(api.RequestIDMiddleware(h.HandleDashboard, h.log), "dashboard"))
}

// DashboardHandler renders the match dashboard.
type DashboardHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies, opts ...Option) *DashboardHandler {
	h := &DashboardHandler{deps: deps, log: logger.New(logger.WithWriter(io.Discard))}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleDashboard handles GET /?competition=&season=&match=&scope=&player=&from=&to=.
// Every request recomputes the page from the query; there is no session.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	data, status := h.load(r.Context(), r.URL.Query())
	templ.Handler(Page(data),
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			h.log.Error(r.Context(), "dashboard render failed", logger.Error(err))
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}
