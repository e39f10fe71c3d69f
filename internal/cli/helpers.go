package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/puzzlequest/internal/assets"
	"github.com/mesh-intelligence/puzzlequest/internal/kv"
	"github.com/mesh-intelligence/puzzlequest/internal/progress"
	"github.com/mesh-intelligence/puzzlequest/internal/settings"
	"github.com/mesh-intelligence/puzzlequest/internal/stages"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// session bundles the attached backend and the collaborators built on it.
// The caller must Close it.
type session struct {
	backend  types.Backend
	store    *stages.Store
	settings *settings.Manager
	progress *progress.Tracker
}

// openSession attaches the configured backend. Extra settings options are
// applied after the defaults from config.
func (e *env) openSession(opts ...settings.Option) (*session, error) {
	backend, err := kv.Open(e.config, e.logger)
	if err != nil {
		return nil, sysError(err)
	}
	base := []settings.Option{
		settings.WithLogger(e.logger),
		settings.WithReloadDelay(e.config.ReloadDelay),
	}
	return &session{
		backend: backend,
		store: stages.NewStore(backend,
			stages.WithAssets(assets.NewResolver(e.config.AssetBase)),
			stages.WithLogger(e.logger)),
		settings: settings.NewManager(backend, append(base, opts...)...),
		progress: progress.NewTracker(backend, progress.WithLogger(e.logger)),
	}, nil
}

// editor loads the catalog with the persisted admin flag applied.
func (s *session) editor() (*stages.Editor, error) {
	prefs, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	return stages.OpenEditor(s.store, stages.WithAdmin(prefs.Admin))
}

func (s *session) Close() error {
	s.settings.Close()
	return s.backend.Detach()
}

// promptConfirmer asks on out and reads a y/N answer from in. With yes set
// every prompt is accepted without reading.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
}

func newPromptConfirmer(cmd *cobra.Command, yes bool) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr(), yes: yes}
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	if p.yes {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	return parseYes(line)
}

func parseYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "skip the confirmation prompt")
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// parseOnOff accepts the usual spellings of a boolean switch.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1", "enable", "enabled":
		return true, nil
	case "off", "false", "no", "0", "disable", "disabled":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
