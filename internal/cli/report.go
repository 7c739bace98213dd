package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/spf13/cobra"
)

var (
	cGood  = color.New(color.FgGreen, color.Bold)
	cBad   = color.New(color.FgRed, color.Bold)
	cMuted = color.New(color.Faint)
)

func (r *runner) summaryCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a match: top passer, goals vs shots, notable events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := r.get()
			if err != nil {
				return err
			}
			sel, err := f.selection(cmd)
			if err != nil {
				return err
			}
			ov, err := p.Overview(cmd.Context(), sel)
			if err != nil {
				return fmt.Errorf("summary of match %d: %w", sel.MatchID, err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "\n%s  |  scope: %s (%d matches)  |  window: %s  |  events: %d\n\n",
				ov.Match.Label(), ov.Scope, ov.MatchesInScope, windowText(f, sel.Window != nil), ov.EventCount)
			if ov.TopPasser != nil {
				fmt.Fprintf(w, "Top passer: %s with %d passes\n\n", ov.TopPasser.Player, ov.TopPasser.Passes)
			} else {
				fmt.Fprintf(w, "Top passer: none in the selected window\n\n")
			}

			goals := make([][]string, 0, len(ov.GoalsShots))
			for _, row := range ov.GoalsShots {
				goals = append(goals, []string{row.Team, strconv.Itoa(row.Goals), strconv.Itoa(row.Shots)})
			}
			if err := renderTable(w, []string{"TEAM", "GOALS", "SHOTS"}, goals); err != nil {
				return err
			}

			fmt.Fprintf(w, "\nNotable events\n\n")
			notable := make([][]string, 0, len(ov.Notable))
			for _, row := range ov.Notable {
				notable = append(notable, []string{row.Player, row.Type, row.Team})
			}
			if err := renderTable(w, []string{"PLAYER", "TYPE", "TEAM"}, notable); err != nil {
				return err
			}
			fmt.Fprintf(w, "\n%d players in the match\n", len(ov.Players))
			return nil
		},
	}
	f.bindMatch(cmd)
	f.bindWindow(cmd)
	cmd.Flags().StringVar(&f.scope, "scope", "", "aggregate scope: match or season (default from config)")
	return cmd
}

func (r *runner) playerCmd() *cobra.Command {
	var f selectionFlags
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Show a player's passes, shots and conversion ratio in one match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := r.get()
			if err != nil {
				return err
			}
			sel, err := f.selection(cmd)
			if err != nil {
				return err
			}
			d, err := p.PlayerDetail(cmd.Context(), sel)
			if err != nil {
				return fmt.Errorf("player %q in match %d: %w", sel.Player, sel.MatchID, err)
			}

			w := cmd.OutOrStdout()
			s := d.Stats
			fmt.Fprintf(w, "\n%s  |  match %d  |  window: %s\n\n", s.Player, d.MatchID, windowText(f, sel.Window != nil))
			if err := renderTable(w,
				[]string{"PASSES", "SUCCESSFUL", "SHOTS", "GOALS", "RATIO"},
				[][]string{{
					strconv.Itoa(s.PassCount),
					strconv.Itoa(s.SuccessfulPassCount),
					strconv.Itoa(s.ShotCount),
					strconv.Itoa(s.GoalCount),
					ratioText(s),
				}},
			); err != nil {
				return err
			}
			printTiles(w, s)

			fmt.Fprintf(w, "\nShots\n\n")
			shots := make([][]string, 0, len(d.Shots))
			for _, e := range d.Shots {
				shots = append(shots, []string{clock(e), e.ShotOutcome, pointText(e.Location)})
			}
			return renderTable(w, []string{"TIME", "OUTCOME", "LOCATION"}, shots)
		},
	}
	f.bindMatch(cmd)
	f.bindPlayer(cmd)
	f.bindWindow(cmd)
	return cmd
}

// printTiles flags the shot and successful-pass counts the way the dashboard
// tiles colour them.
func printTiles(w io.Writer, s model.PlayerMatchStats) {
	shots := cGood
	if s.ShotCount > model.ShotTileThreshold {
		shots = cBad
	}
	passes := cBad
	if s.SuccessfulPassCount > model.PassTileThreshold {
		passes = cGood
	}
	fmt.Fprintln(w)
	shots.Fprintf(w, "  shots: %d", s.ShotCount)
	cMuted.Fprintf(w, " (flagged above %d)\n", model.ShotTileThreshold)
	passes.Fprintf(w, "  successful passes: %d", s.SuccessfulPassCount)
	cMuted.Fprintf(w, " (good above %d)\n", model.PassTileThreshold)
}

func windowText(f selectionFlags, engaged bool) string {
	if !engaged {
		return "full match"
	}
	return fmt.Sprintf("%d'-%d'", f.from, f.to)
}

func ratioText(s model.PlayerMatchStats) string {
	r, err := s.Ratio()
	if err != nil {
		return "—"
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}

func clock(e model.Event) string {
	return fmt.Sprintf("%02d:%02d", e.Minute, e.Second)
}

func pointText(p *model.Point) string {
	if p == nil {
		return ""
	}
	return p.String()
}
