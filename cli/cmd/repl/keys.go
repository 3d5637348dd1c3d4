package repl

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Submit      key.Binding
	Quit        key.Binding
	Interrupt   key.Binding
	Next        key.Binding
	Prev        key.Binding
	Older       key.Binding
	Newer       key.Binding
	OlderInMode key.Binding
	NewerInMode key.Binding
	OlderCmd    key.Binding
	NewerCmd    key.Binding
	Mode        key.Binding
}

var keys = keyMap{
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run input")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "exit on empty line")),
	Interrupt:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "clear line, exit if empty")),
	Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next completion")),
	Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous completion")),
	Older:       key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "older input")),
	Newer:       key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "newer input")),
	OlderInMode: key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+up", "older input, same mode")),
	NewerInMode: key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+down", "newer input, same mode")),
	OlderCmd:    key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+up", "older command")),
	NewerCmd:    key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+down", "newer command")),
	Mode:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "toggle command mode")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Mode, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Interrupt, k.Quit, k.Mode},
		{k.Next, k.Prev},
		{k.Older, k.Newer, k.OlderInMode, k.NewerInMode, k.OlderCmd, k.NewerCmd},
	}
}

func keyHelp() string {
	h := help.New()
	h.ShowAll = true

	return h.View(keys)
}
