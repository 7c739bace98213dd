// Package service runs the fetch, filter and aggregate pipeline behind the
// dashboard, the HTTP API and the report CLI. Every call recomputes from the
// selection it is given; nothing is kept between calls except the CSV memo.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/okian/matchscope/internal/adapters/charts"
	"github.com/okian/matchscope/internal/adapters/export"
	"github.com/okian/matchscope/internal/adapters/provider/statsbomb"
	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/logger"
)

// Aggregate scopes for top passer and goals/shots.
const (
	ScopeMatch  = "match"
	ScopeSeason = "season"
)

const defaultMaxSeasonMatches = 64

// Provider is the event data source.
type Provider interface {
	Competitions(ctx context.Context) ([]model.Competition, error)
	Seasons(ctx context.Context, competitionID int) ([]model.Season, error)
	Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error)
	Events(ctx context.Context, matchID int) ([]model.Event, error)
}

// Service implements the API dependencies of the dashboard.
type Service struct {
	provider Provider
	memo     *export.Memo

	scope            string
	maxSeasonMatches int
	notableLimit     int
	chartConfig      charts.Config

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProvider sets the event data source.
func WithProvider(p Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithScope sets the default aggregate scope, "match" or "season".
func WithScope(scope string) Option {
	return func(s *Service) {
		if scope == ScopeMatch || scope == ScopeSeason {
			s.scope = scope
		}
	}
}

// WithMaxSeasonMatches caps how many matches the season scope fetches.
func WithMaxSeasonMatches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSeasonMatches = n
		}
	}
}

// WithNotableLimit sets how many notable events an overview lists.
func WithNotableLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.notableLimit = n
		}
	}
}

// WithChartConfig sets the pitch map canvas size.
func WithChartConfig(cfg charts.Config) Option {
	return func(s *Service) {
		s.chartConfig = cfg
	}
}

// WithCSVMemo sets the export memo.
func WithCSVMemo(m *export.Memo) Option {
	return func(s *Service) {
		if m != nil {
			s.memo = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without WithProvider it reads the public
// StatsBomb open-data tree.
func New(opts ...Option) *Service {
	s := &Service{
		scope:            ScopeMatch,
		maxSeasonMatches: defaultMaxSeasonMatches,
		notableLimit:     aggregate.DefaultNotableLimit,
		chartConfig:      charts.DefaultConfig(),
		logger:           logger.New(logger.WithWriter(io.Discard)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = statsbomb.New(statsbomb.WithLogger(s.logger))
	}
	if s.memo == nil {
		s.memo = export.NewMemo(export.DefaultMemoEntries)
	}
	return s
}

// Competitions lists the provider's competitions.
func (s *Service) Competitions(ctx context.Context) ([]model.Competition, error) {
	out, err := s.provider.Competitions(ctx)
	return out, s.wrap(err)
}

// Seasons lists the seasons of a competition.
func (s *Service) Seasons(ctx context.Context, competitionID int) ([]model.Season, error) {
	out, err := s.provider.Seasons(ctx, competitionID)
	return out, s.wrap(err)
}

// Matches lists the matches of a competition season.
func (s *Service) Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error) {
	out, err := s.provider.Matches(ctx, competitionID, seasonID)
	return out, s.wrap(err)
}

// wrap marks provider not-found errors with ErrNotFound so callers only test
// for one sentinel.
func (s *Service) wrap(err error) error {
	if err != nil && errors.Is(err, statsbomb.ErrNotFound) && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
