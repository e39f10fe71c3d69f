// Package cli implements the puzzlequest command-line interface: catalog and
// settings administration plus the play command that starts the TUI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/internal/logging"
	"github.com/mesh-intelligence/puzzlequest/internal/paths"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// env is the state resolved once per invocation and shared by subcommands.
type env struct {
	flags     rootFlags
	logger    *zap.Logger
	configDir string
	config    types.Config
}

// NewRootCmd creates the top-level "puzzlequest" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	e := &env{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "puzzlequest",
		Short: "A tile puzzle game for the terminal",
		Long: "PuzzleQuest is a casual picture puzzle game with easy (2x2) and hard (3x3)\n" +
			"stages. Run \"puzzlequest play\" to start; the other commands manage the\n" +
			"stage catalog, settings and saved progress.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return e.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&e.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&e.flags.dataDir, "data-dir", "", "save data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&e.flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&e.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(e))
	root.AddCommand(newPlayCmd(e))
	root.AddCommand(newStagesCmd(e))
	root.AddCommand(newSettingsCmd(e))
	root.AddCommand(newProgressCmd(e))

	return root
}

func (e *env) setup() error {
	logger, err := logging.New(e.flags.verbose)
	if err != nil {
		return sysError(err)
	}
	e.logger = logger

	configDir, err := paths.ResolveConfigDir(e.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	e.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	config, err := configFromViper(v, e.flags.dataDir)
	if err != nil {
		return userError(err)
	}
	e.config = config
	e.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", config.DataDir),
		zap.String("backend", config.Backend))
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "puzzlequest:", err)
	var ce *cliError
	if errors.As(err, &ce) {
		if ce.hint != "" {
			fmt.Fprintln(stderr, "hint:", ce.hint)
		}
		return ce.code
	}
	// Flag and argument parsing errors come straight from cobra.
	return exitUserError
}
