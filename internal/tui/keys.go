package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Pick     key.Binding
	Back     key.Binding
	Settings key.Binding
	Mode     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Yes      key.Binding
	No       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Pick:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "pick/swap")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "switch mode")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add stage")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete stage")),
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Yes:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		No:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}
