package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/internal/puzzle"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

type gameState struct {
	board   *puzzle.Board
	cursor  int
	picked  int
	started time.Time
	elapsed time.Duration
	solved  bool
	newBest bool
}

func (m Model) startGame(stage types.Stage) (tea.Model, tea.Cmd) {
	board, err := m.newBoard(stage.Mode)
	if err != nil {
		return m.fail(err), nil
	}
	if err := m.ctrl.PlayStage(&stage); err != nil {
		return m.fail(err), nil
	}
	m.game = &gameState{board: board, picked: -1, started: m.now()}
	m.clearStatus()
	m.logger.Debug("stage started", zap.Int64("stage", stage.ID), zap.String("mode", string(stage.Mode)))
	return m, nil
}

func (m Model) leaveGame() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Complete(); err != nil {
		return m.fail(err), nil
	}
	m.game = nil
	return m, nil
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.game
	if g == nil {
		return m.leaveGame()
	}
	if g.solved {
		if key.Matches(msg, m.keys.Select) || key.Matches(msg, m.keys.Back) {
			return m.leaveGame()
		}
		return m, nil
	}

	size := g.board.Size()
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.leaveGame()
	case key.Matches(msg, m.keys.Up):
		if g.cursor >= size {
			g.cursor -= size
		}
	case key.Matches(msg, m.keys.Down):
		if g.cursor+size < g.board.Len() {
			g.cursor += size
		}
	case key.Matches(msg, m.keys.Left):
		if g.cursor%size > 0 {
			g.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if g.cursor%size < size-1 {
			g.cursor++
		}
	case key.Matches(msg, m.keys.Pick):
		if g.picked < 0 {
			g.picked = g.cursor
			return m, nil
		}
		if err := g.board.Swap(g.picked, g.cursor); err != nil {
			return m.fail(err), nil
		}
		g.picked = -1
		if g.board.Solved() {
			return m.finishGame()
		}
	}
	return m, nil
}

func (m Model) finishGame() (tea.Model, tea.Cmd) {
	g := m.game
	stage := m.ctrl.Stage()
	g.solved = true
	g.elapsed = m.now().Sub(g.started)

	_, improved, err := m.progress.Record(stage.ID, g.board.Moves(), g.elapsed)
	if err != nil {
		return m.fail(err), nil
	}
	g.newBest = improved
	m.logger.Info("stage solved",
		zap.Int64("stage", stage.ID),
		zap.Int("moves", g.board.Moves()),
		zap.Duration("elapsed", g.elapsed),
		zap.Bool("personal_best", improved))
	return m, nil
}

func (m Model) viewGame() string {
	g := m.game
	stage := m.ctrl.Stage()
	if g == nil || stage == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(stage.Name))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s • %s", m.modeLabel(stage.Mode), stage.Image)))
	b.WriteString("\n\n")

	size := g.board.Size()
	rows := make([]string, 0, size)
	for r := 0; r < size; r++ {
		cells := make([]string, 0, size)
		for c := 0; c < size; c++ {
			pos := r*size + c
			tile, _ := g.board.Tile(pos)
			style := tileStyle
			switch {
			case pos == g.picked:
				style = tilePickedStyle
			case pos == g.cursor && !g.solved:
				style = tileCursorStyle
			case tile == pos:
				style = tileHomeStyle
			}
			cells = append(cells, style.Render(fmt.Sprintf("%d", tile+1)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")

	if g.solved {
		b.WriteString(successStyle.Render(m.loc.T("game.solved", g.board.Moves(), g.elapsed.Round(time.Millisecond*100))))
		if g.newBest {
			b.WriteString("\n")
			b.WriteString(warnStyle.Render(m.loc.T("game.best")))
		}
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(m.loc.T("game.done.help")))
		return b.String()
	}

	b.WriteString(textStyle.Render(m.loc.T("game.moves", g.board.Moves())))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.loc.T("game.help")))
	return b.String()
}
