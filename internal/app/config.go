package service

import (
	"github.com/okian/matchscope/internal/adapters/charts"
	"github.com/okian/matchscope/internal/adapters/export"
	"github.com/okian/matchscope/internal/adapters/provider/statsbomb"
	"github.com/okian/matchscope/internal/config"
	"github.com/okian/matchscope/pkg/logger"
)

// FromConfig builds the Service and its StatsBomb client from cfg.
func FromConfig(cfg *config.Config, log logger.Logger) *Service {
	client := statsbomb.New(
		statsbomb.WithBaseURL(cfg.ProviderBaseURL),
		statsbomb.WithTimeout(cfg.ProviderTimeout()),
		statsbomb.WithRatePerSecond(cfg.ProviderRatePerSec),
		statsbomb.WithUserAgent(cfg.ProviderUserAgent),
		statsbomb.WithLogger(log.Named("statsbomb")),
	)
	return New(
		WithProvider(client),
		WithScope(cfg.AggregateScope),
		WithMaxSeasonMatches(cfg.MaxSeasonMatches),
		WithNotableLimit(cfg.NotableLimit),
		WithChartConfig(charts.Config{Width: cfg.ChartWidth, Height: cfg.ChartHeight}),
		WithCSVMemo(export.NewMemo(cfg.CSVCacheEntries)),
		WithLogger(log.Named("service")),
	)
}
