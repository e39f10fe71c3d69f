package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/internal/logging"
	"github.com/mesh-intelligence/puzzlequest/internal/settings"
	"github.com/mesh-intelligence/puzzlequest/internal/tui"
)

func newPlayCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so logs go to a file.
			if err := os.MkdirAll(e.config.DataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data dir: %w", err))
			}
			logPath := logging.FilePath(e.config.DataDir)
			logger, err := logging.New(e.flags.verbose, logPath)
			if err != nil {
				return sysError(err)
			}
			e.logger = logger

			var program *tea.Program
			s, err := e.openSession(settings.WithReload(func() {
				program.Send(tui.ReloadMsg{})
			}))
			if err != nil {
				return err
			}
			defer s.Close()

			editor, err := s.editor()
			if err != nil {
				return classify(err)
			}
			model, err := tui.New(tui.Deps{
				Editor:   editor,
				Settings: s.settings,
				Progress: s.progress,
				Logger:   logger,
			})
			if err != nil {
				return classify(err)
			}

			program = tui.NewProgram(cmd.Context(), model,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			logger.Info("game started", zap.String("data_dir", e.config.DataDir))
			if _, err := program.Run(); err != nil {
				return sysError(fmt.Errorf("run game: %w", err))
			}
			logger.Info("game closed")
			return nil
		},
	}
}
