// Package statsbomb reads competitions, matches and events from the StatsBomb
// open-data layout over HTTP.
package statsbomb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/matchscope/internal/domain/dedupe"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/logger"
	"github.com/okian/matchscope/pkg/metrics"
)

// DefaultBaseURL is the raw GitHub tree of statsbomb/open-data.
const DefaultBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

const (
	defaultTimeout    = 15 * time.Second
	defaultRatePerSec = 5
	defaultUserAgent  = "matchscope/1.0"
	maxBodyBytes      = 64 << 20
)

// Metric endpoint labels.
const (
	endpointCompetitions = "competitions"
	endpointMatches      = "matches"
	endpointEvents       = "events"
)

// Client fetches provider files sequentially. It holds no cache; every call
// goes to the network.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	ratePerSec  float64
	rateLimiter *rate.Limiter
	userAgent   string
	log         logger.Logger
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		ratePerSec: defaultRatePerSec,
		userAgent:  defaultUserAgent,
		log:        logger.New(logger.WithWriter(io.Discard)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	if c.ratePerSec > 0 {
		c.rateLimiter = rate.NewLimiter(rate.Every(time.Duration(float64(time.Second)/c.ratePerSec)), 1)
	}
	return c
}

// Competitions lists every competition once, in feed order.
func (c *Client) Competitions(ctx context.Context) ([]model.Competition, error) {
	rows, err := c.competitionRows(ctx)
	if err != nil {
		return nil, err
	}
	seen := dedupe.New[int](dedupe.WithCapacityHint(len(rows)))
	out := make([]model.Competition, 0, len(rows))
	for _, r := range rows {
		if seen.SeenAndRecord(r.CompetitionID) {
			continue
		}
		out = append(out, r.competition())
	}
	return out, nil
}

// Seasons lists the seasons available for a competition.
func (c *Client) Seasons(ctx context.Context, competitionID int) ([]model.Season, error) {
	rows, err := c.competitionRows(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Season
	for _, r := range rows {
		if r.CompetitionID == competitionID {
			out = append(out, r.season())
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("competition %d: %w", competitionID, ErrNotFound)
	}
	return out, nil
}

// Matches lists the matches of a competition season.
func (c *Client) Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error) {
	var rows []matchRow
	path := fmt.Sprintf("matches/%d/%d.json", competitionID, seasonID)
	if err := c.get(ctx, endpointMatches, path, &rows); err != nil {
		return nil, err
	}
	out := make([]model.Match, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.match())
	}
	return out, nil
}

// Events returns the event table of one match, every row stamped with matchID.
func (c *Client) Events(ctx context.Context, matchID int) ([]model.Event, error) {
	var rows []eventRow
	if err := c.get(ctx, endpointEvents, fmt.Sprintf("events/%d.json", matchID), &rows); err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.event(matchID))
	}
	metrics.RecordEventsFetched(len(out))
	return out, nil
}

func (c *Client) competitionRows(ctx context.Context) ([]competitionRow, error) {
	var rows []competitionRow
	if err := c.get(ctx, endpointCompetitions, "competitions.json", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// get fetches one file and decodes it into out. No retries.
func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	const op = "statsbomb.get"
	url := c.baseURL + "/" + path

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return &Error{Op: op, URL: url, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{Op: op, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordProviderRequest(endpoint, "error", latency)
		metrics.RecordProviderError(endpoint, "transport")
		c.log.Warn(ctx, "provider request failed", logger.String("url", url), logger.Error(err))
		return &Error{Op: op, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordProviderRequest(endpoint, strconv.Itoa(resp.StatusCode), latency)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.RecordProviderError(endpoint, "not_found")
		return &Error{Op: op, URL: url, StatusCode: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		metrics.RecordProviderError(endpoint, "status")
		c.log.Warn(ctx, "provider returned error status", logger.String("url", url), logger.Int("status", resp.StatusCode))
		return &Error{Op: op, URL: url, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		metrics.RecordProviderError(endpoint, "decode")
		return &Error{Op: op, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	c.log.Debug(ctx, "provider request", logger.String("url", url), logger.Float64("latency_ms", latency))
	return nil
}
