package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps m in a full-screen program bound to ctx.
func NewProgram(ctx context.Context, m Model, opts ...tea.ProgramOption) *tea.Program {
	base := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	return tea.NewProgram(m, append(base, opts...)...)
}
