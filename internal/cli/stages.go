package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/internal/stages"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

func newStagesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List and edit the stage catalog",
	}
	cmd.AddCommand(newStagesListCmd(e))
	cmd.AddCommand(newStagesAddCmd(e))
	cmd.AddCommand(newStagesDeleteCmd(e))
	cmd.AddCommand(newStagesResetCmd(e))
	cmd.AddCommand(newStagesExportCmd(e))
	cmd.AddCommand(newStagesImportCmd(e))
	return cmd
}

// parseModeFlag accepts an empty value as "every mode".
func parseModeFlag(s string) (types.Mode, error) {
	if s == "" {
		return "", nil
	}
	return types.ParseMode(s)
}

func newStagesListCmd(e *env) *cobra.Command {
	var modeFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stages, optionally for one mode",
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

			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), catalog)
			}
			writeStageTable(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "only list stages of this mode (easy or hard)")
	return cmd
}

func writeStageTable(w io.Writer, catalog types.Catalog) {
	if len(catalog) == 0 {
		fmt.Fprintln(w, "No stages.")
		return
	}
	rows := make([][]string, 0, len(catalog))
	for _, s := range catalog {
		rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.Mode.String(), s.Name, s.Image})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "MODE", "NAME", "IMAGE").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())

	counts := stages.Count(catalog)
	fmt.Fprintf(w, "%d stages (%d easy, %d hard)\n", len(catalog), counts[types.ModeEasy], counts[types.ModeHard])
}

func newStagesAddCmd(e *env) *cobra.Command {
	var (
		name, image, modeFlag string
		both                  bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a stage (admin)",
		Long: "Add a stage to one mode, or with --both add it to easy and hard at once.\n" +
			"Requires admin mode: puzzlequest settings set admin on",
		Example: "  puzzlequest stages add --name Sunrise --image puzzles/easy/sunrise.jpg --mode easy\n" +
			"  puzzlequest stages add --name Sunrise --image sunrise.jpg --both",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := types.Mode(modeFlag)
			if !both {
				parsed, err := types.ParseMode(modeFlag)
				if err != nil {
					return classify(err)
				}
				mode = parsed
			}

			s, err := e.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			editor, err := s.editor()
			if err != nil {
				return classify(err)
			}
			added, err := editor.AddStage(name, image, mode, both)
			if err != nil {
				return classify(err)
			}

			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), added)
			}
			for _, st := range added {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s as %d\n", st.Name, st.Mode, st.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "stage name")
	cmd.Flags().StringVar(&image, "image", "", "image path or URL")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "stage mode (easy or hard)")
	cmd.Flags().BoolVar(&both, "both", false, "add the stage to both modes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newStagesDeleteCmd(e *env) *cobra.Command {
	var (
		modeFlag string
		yes      bool
	)
	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a stage (admin)",
		Args:  cobra.ExactArgs(1),
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

			editor, err := s.editor()
			if err != nil {
				return classify(err)
			}
			target, err := stages.Find(editor.Catalog(), mode, args[0])
			if err != nil {
				return classify(err)
			}
			deleted, err := editor.DeleteStage(target.ID, newPromptConfirmer(cmd, yes))
			if err != nil {
				return classify(err)
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (%s, %d)\n", target.Name, target.Mode, target.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "only match stages of this mode")
	addYesFlag(cmd, &yes)
	return cmd
}

func newStagesResetCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default stages (admin)",
		Long: "Replace the stored catalog with the 24 default stages. Works even when\n" +
			"the stored catalog is unreadable.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			prefs, err := s.settings.Load()
			if err != nil {
				return classify(err)
			}
			if !prefs.Admin {
				return classify(types.ErrAdminRequired)
			}
			if !newPromptConfirmer(cmd, yes).Confirm("Replace every stage with the defaults?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			catalog, err := s.store.Reset()
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d default stages\n", len(catalog))
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}

func newStagesExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the catalog to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			catalog, err := s.store.Load()
			if err != nil {
				return classify(err)
			}
			if err := stages.Export(catalog, args[0]); err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d stages to %s\n", len(catalog), args[0])
			return nil
		},
	}
}

func newStagesImportCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with a JSONL file (admin)",
		Long: "Replace the stored catalog with the stages in a file written by\n" +
			"'puzzlequest stages export'. Works even when the stored catalog is unreadable.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, skipped, err := stages.ReadCatalogFile(args[0])
			if errors.Is(err, types.ErrCatalogCorrupt) {
				return &cliError{
					code: exitUserError,
					err:  err,
					hint: "import files hold one stage per line; create one with: puzzlequest stages export <file>",
				}
			}
			if err != nil {
				return classify(err)
			}

			s, err := e.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			prefs, err := s.settings.Load()
			if err != nil {
				return classify(err)
			}
			current, err := s.store.Load()
			if errors.Is(err, types.ErrCatalogCorrupt) {
				e.logger.Warn("replacing unreadable catalog", zap.Error(err))
				current = nil
			} else if err != nil {
				return classify(err)
			}

			editor := stages.NewEditor(s.store, current, stages.WithAdmin(prefs.Admin))
			replaced, err := editor.Replace(next, newPromptConfirmer(cmd, yes))
			if err != nil {
				return classify(err)
			}
			if !replaced {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stages", len(next))
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (skipped %d malformed lines)", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}
