package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// settingKeys are the names accepted by "settings set".
var settingKeys = []string{"sound", "volume", "language", "admin"}

func newSettingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change game settings",
	}
	cmd.AddCommand(newSettingsShowCmd(e))
	cmd.AddCommand(newSettingsSetCmd(e))
	return cmd
}

func newSettingsShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
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
			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), prefs)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sound:    %s\n", onOff(prefs.SoundEnabled))
			fmt.Fprintf(out, "volume:   %d%%\n", volumePercent(prefs.Volume))
			fmt.Fprintf(out, "language: %s\n", prefs.Language)
			fmt.Fprintf(out, "admin:    %s\n", onOff(prefs.Admin))
			return nil
		},
	}
}

func newSettingsSetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: "Change one setting. Keys:\n" +
			"  sound     on | off\n" +
			"  volume    0-100 (percent)\n" +
			"  language  " + strings.Join(types.Languages, " | ") + "\n" +
			"  admin     on | off",
		Example:   "  puzzlequest settings set volume 80\n  puzzlequest settings set admin on",
		Args:      cobra.ExactArgs(2),
		ValidArgs: settingKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			key, value := strings.ToLower(args[0]), args[1]
			switch key {
			case "sound":
				on, err := parseOnOff(value)
				if err != nil {
					return userError(err)
				}
				err = s.settings.SetSoundEnabled(on)
				if err != nil {
					return classify(err)
				}
			case "volume":
				pct, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "%"), 64)
				if err != nil {
					return userError(fmt.Errorf("volume: expected a number from 0 to 100, got %q", value))
				}
				if err := s.settings.SetVolume(pct / 100); err != nil {
					return classify(err)
				}
			case "language":
				if err := s.settings.SetLanguage(value); err != nil {
					return classify(err)
				}
			case "admin":
				on, err := parseOnOff(value)
				if err != nil {
					return userError(err)
				}
				if err := s.settings.SetAdmin(on); err != nil {
					return classify(err)
				}
			default:
				return userError(fmt.Errorf("unknown setting %q (valid: %s)", args[0], strings.Join(settingKeys, ", ")))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
			return nil
		},
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func volumePercent(v float64) int {
	return int(v*100 + 0.5)
}
