package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (r *runner) competitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "competitions",
		Short: "List the available competitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := r.get()
			if err != nil {
				return err
			}
			rows, err := p.Competitions(cmd.Context())
			if err != nil {
				return fmt.Errorf("list competitions: %w", err)
			}
			out := make([][]string, 0, len(rows))
			for _, c := range rows {
				out = append(out, []string{strconv.Itoa(c.ID), c.Name, c.Country, c.Gender})
			}
			return renderTable(cmd.OutOrStdout(), []string{"ID", "COMPETITION", "COUNTRY", "GENDER"}, out)
		},
	}
}

func (r *runner) seasonsCmd() *cobra.Command {
	var competition int
	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "List the seasons of a competition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := r.get()
			if err != nil {
				return err
			}
			rows, err := p.Seasons(cmd.Context(), competition)
			if err != nil {
				return fmt.Errorf("list seasons of competition %d: %w", competition, err)
			}
			out := make([][]string, 0, len(rows))
			for _, s := range rows {
				out = append(out, []string{strconv.Itoa(s.ID), s.Name})
			}
			return renderTable(cmd.OutOrStdout(), []string{"ID", "SEASON"}, out)
		},
	}
	cmd.Flags().IntVar(&competition, "competition", 0, "competition id")
	_ = cmd.MarkFlagRequired("competition")
	return cmd
}

func (r *runner) matchesCmd() *cobra.Command {
	var competition, season int
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List the matches of a season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := r.get()
			if err != nil {
				return err
			}
			rows, err := p.Matches(cmd.Context(), competition, season)
			if err != nil {
				return fmt.Errorf("list matches of competition %d season %d: %w", competition, season, err)
			}
			out := make([][]string, 0, len(rows))
			for _, m := range rows {
				out = append(out, []string{
					strconv.Itoa(m.ID),
					m.Date,
					m.HomeTeam,
					fmt.Sprintf("%d - %d", m.HomeScore, m.AwayScore),
					m.AwayTeam,
				})
			}
			return renderTable(cmd.OutOrStdout(), []string{"ID", "DATE", "HOME", "SCORE", "AWAY"}, out)
		},
	}
	cmd.Flags().IntVar(&competition, "competition", 0, "competition id")
	cmd.Flags().IntVar(&season, "season", 0, "season id")
	_ = cmd.MarkFlagRequired("competition")
	_ = cmd.MarkFlagRequired("season")
	return cmd
}
