// Package cli implements the matchreport command line: the same pipeline as
// the dashboard, printed as tables or written as CSV files.
package cli

import (
	"context"
	"errors"

	"github.com/okian/matchscope/internal/adapters/export"
	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/config"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/logger"
	"github.com/spf13/cobra"
)

// ErrNotConfigured is returned when a command runs before setup built the pipeline.
var ErrNotConfigured = errors.New("pipeline not configured")

// Pipeline is the part of the service the commands use.
type Pipeline interface {
	Competitions(ctx context.Context) ([]model.Competition, error)
	Seasons(ctx context.Context, competitionID int) ([]model.Season, error)
	Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error)
	Overview(ctx context.Context, sel service.Selection) (*service.Overview, error)
	PlayerDetail(ctx context.Context, sel service.Selection) (*service.PlayerDetail, error)
	ExportCSV(ctx context.Context, sel service.Selection, kind export.Kind) (export.File, error)
}

// Factory builds the pipeline once flags and config are resolved.
type Factory func(cfg *config.Config, log logger.Logger) (Pipeline, error)

// DefaultFactory reads from the configured StatsBomb tree.
func DefaultFactory(cfg *config.Config, log logger.Logger) (Pipeline, error) {
	return service.FromConfig(cfg, log), nil
}

type runner struct {
	factory    Factory
	configPath string
	baseURL    string
	logLevel   string
	pipeline   Pipeline
}

// NewRootCommand returns the matchreport command tree.
func NewRootCommand(factory Factory) *cobra.Command {
	r := &runner{factory: factory}
	root := &cobra.Command{
		Use:   "matchreport",
		Short: "Football match event reports from StatsBomb open data",
		Long: `Browse competitions, seasons and matches, summarize a match or a
player, and export a player's passes and shots as CSV.

Configuration is read like the server's: defaults, then the YAML file named by
--config or MATCHSCOPE_CONFIG, then MATCHSCOPE_* environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	root.PersistentFlags().StringVar(&r.configPath, "config", "", "YAML config file (default $MATCHSCOPE_CONFIG)")
	root.PersistentFlags().StringVar(&r.baseURL, "base-url", "", "override the provider base URL")
	root.PersistentFlags().StringVar(&r.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		r.competitionsCmd(),
		r.seasonsCmd(),
		r.matchesCmd(),
		r.summaryCmd(),
		r.playerCmd(),
		r.exportCmd(),
	)
	return root
}

func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	if _, err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadFile(cmd.Context(), r.configPath)
	if err != nil {
		return err
	}
	if r.baseURL != "" {
		cfg.ProviderBaseURL = r.baseURL
	}
	level, err := logger.ParseLevel(r.logLevel)
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithWriter(cmd.ErrOrStderr()),
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(level),
	)
	r.pipeline, err = r.factory(cfg, log)
	return err
}

func (r *runner) get() (Pipeline, error) {
	if r.pipeline == nil {
		return nil, ErrNotConfigured
	}
	return r.pipeline, nil
}
