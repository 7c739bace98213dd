// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/matchscope/internal/adapters/charts"
	"github.com/okian/matchscope/internal/adapters/export"
	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Competitions(ctx context.Context) ([]model.Competition, error)
	Seasons(ctx context.Context, competitionID int) ([]model.Season, error)
	Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error)

	Overview(ctx context.Context, sel service.Selection) (*service.Overview, error)
	PlayerDetail(ctx context.Context, sel service.Selection) (*service.PlayerDetail, error)
	PassMap(ctx context.Context, sel service.Selection) (*charts.Map, error)
	ShotMap(ctx context.Context, sel service.Selection) (*charts.Map, error)
	ExportCSV(ctx context.Context, sel service.Selection, kind export.Kind) (export.File, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	catalogHandler *CatalogHandler
	matchHandler   *MatchHandler
	playerHandler  *PlayerHandler
	log            logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{log: logger.New(logger.WithWriter(io.Discard))}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.catalogHandler = NewCatalogHandler(deps, s.log)
	s.matchHandler = NewMatchHandler(deps, s.log)
	s.playerHandler = NewPlayerHandler(deps, s.log)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	wrap := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return MetricsMiddleware(RequestIDMiddleware(h, s.log), endpoint)
	}

	mux.HandleFunc("GET /healthz", wrap(s.healthHandler.HandleHealth, "healthz"))

	mux.HandleFunc("GET /api/competitions", wrap(s.catalogHandler.HandleCompetitions, "competitions"))
	mux.HandleFunc("GET /api/competitions/{competitionID}/seasons", wrap(s.catalogHandler.HandleSeasons, "seasons"))
	mux.HandleFunc("GET /api/competitions/{competitionID}/seasons/{seasonID}/matches", wrap(s.catalogHandler.HandleMatches, "matches"))
	mux.HandleFunc("GET /api/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/overview",
		wrap(s.matchHandler.HandleOverview, "overview"))

	mux.HandleFunc("GET /api/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}", wrap(s.playerHandler.HandleDetail, "player"))
	mux.HandleFunc("GET /api/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}/passes.csv", wrap(s.playerHandler.HandleCSV(export.KindPasses), "passes_csv"))
	mux.HandleFunc("GET /api/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}/shots.csv", wrap(s.playerHandler.HandleCSV(export.KindShots), "shots_csv"))

	mux.HandleFunc("GET /charts/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}/passes", wrap(s.playerHandler.HandlePassMap, "pass_map"))
	mux.HandleFunc("GET /charts/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}/shots", wrap(s.playerHandler.HandleShotMap, "shot_map"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
