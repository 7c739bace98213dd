package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/matchscope/internal/adapters/export"
	"github.com/spf13/cobra"
)

// fileNameReplacer keeps player names from escaping the --out directory.
var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_") //nolint:gochecknoglobals

func (r *runner) exportCmd() *cobra.Command {
	var (
		f   selectionFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a player's passes and shots as CSV files",
		Long: `Writes passes_<player>.csv and chutes_<player>.csv into --out. The files
have the same layout as the dashboard downloads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := r.get()
			if err != nil {
				return err
			}
			sel, err := f.selection(cmd)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			for _, kind := range []export.Kind{export.KindPasses, export.KindShots} {
				file, err := p.ExportCSV(cmd.Context(), sel, kind)
				if err != nil {
					return fmt.Errorf("export %s of %q: %w", kind, sel.Player, err)
				}
				path := filepath.Join(out, fileNameReplacer.Replace(file.Name))
				if err := os.WriteFile(path, file.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(file.Data))
			}
			return nil
		},
	}
	f.bindMatch(cmd)
	f.bindPlayer(cmd)
	f.bindWindow(cmd)
	cmd.Flags().StringVar(&out, "out", ".", "output directory")
	return cmd
}
