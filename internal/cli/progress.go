package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzlequest/internal/stages"
)

// progressRow is one stage's saved progress.
type progressRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	Completed bool   `json:"completed"`
	BestMs    int64  `json:"best_ms,omitempty"`
	BestMoves int    `json:"best_moves,omitempty"`
}

func newProgressCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show or reset saved progress",
	}
	cmd.AddCommand(newProgressShowCmd(e))
	cmd.AddCommand(newProgressResetCmd(e))
	return cmd
}

func newProgressShowCmd(e *env) *cobra.Command {
	var modeFlag string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List completed stages and personal bests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseModeFlag(modeFlag)
			if err != nil {
				return classify(err)
			}
			s, err := e.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			catalog, err := s.store.Load()
			if err != nil {
				return classify(err)
			}
			if mode != "" {
				catalog = stages.Filter(catalog, mode)
			}

			rows := make([]progressRow, 0, len(catalog))
			for _, st := range catalog {
				done, err := s.progress.Completed(st.ID)
				if err != nil {
					return classify(err)
				}
				best, ok, err := s.progress.Best(st.ID)
				if err != nil {
					return classify(err)
				}
				row := progressRow{ID: st.ID, Name: st.Name, Mode: st.Mode.String(), Completed: done}
				if ok {
					row.BestMs = best.Millis
					row.BestMoves = best.Moves
				}
				rows = append(rows, row)
			}

			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}

			completed := 0
			t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "MODE", "NAME", "DONE", "BEST", "MOVES")
			for _, r := range rows {
				done, best, moves := "", "", ""
				if r.Completed {
					done = "yes"
					completed++
				}
				if r.BestMs > 0 {
					best = (time.Duration(r.BestMs) * time.Millisecond).String()
					moves = strconv.Itoa(r.BestMoves)
				}
				t.Row(strconv.FormatInt(r.ID, 10), r.Mode, r.Name, done, best, moves)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d stages completed\n", completed, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "only show stages of this mode")
	return cmd
}

func newProgressResetCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every completion and personal best (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			removed, ok, err := s.settings.ResetProgress(newPromptConfirmer(cmd, yes))
			if err != nil {
				return classify(err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d progress records\n", removed)
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}
