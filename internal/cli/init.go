package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and seed the stage catalog",
		Long: "Create the configuration directory with a default config.yaml, open the\n" +
			"save data and seed the default stages if none are stored yet.",
		Args: cobra.NoArgs,
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

			out := cmd.OutOrStdout()
			if e.flags.jsonMode {
				return printJSON(out, map[string]any{
					"config_dir": e.configDir,
					"data_dir":   e.config.DataDir,
					"backend":    e.config.Backend,
					"stages":     len(catalog),
				})
			}
			fmt.Fprintln(out, "PuzzleQuest initialized")
			fmt.Fprintln(out, "  config:", e.configDir)
			fmt.Fprintln(out, "  data:  ", e.config.DataDir)
			fmt.Fprintln(out, "  stages:", len(catalog))
			return nil
		},
	}
}
