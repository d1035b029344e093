// Package tui implements the interactive review screens for curation and
// reclassification using bubbletea.
package tui

import "github.com/charmbracelet/bubbles/key"

// CurateKeyMap defines the keyboard shortcuts of the curation review
// screen.
type CurateKeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	Edit        key.Binding
	SwapFront   key.Binding
	SwapBack    key.Binding
	DeleteImage key.Binding
	MarkDelete  key.Binding
	Restore     key.Binding
	Export      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultCurateKeyMap returns the default curation bindings.
func DefaultCurateKeyMap() CurateKeyMap {
	return CurateKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous item"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next item"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("Enter/e", "edit grade and company"),
		),
		SwapFront: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swap images 1 and 2"),
		),
		SwapBack: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "swap images 2 and 3"),
		),
		DeleteImage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "delete image N"),
		),
		MarkDelete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "mark listing for deletion"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore listing"),
		),
		Export: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export dataset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReclassifyKeyMap defines the keyboard shortcuts of the reclassification
// review screen.
type ReclassifyKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Mint key.Binding
	Poor key.Binding
	Skip key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultReclassifyKeyMap returns the default reclassification bindings.
func DefaultReclassifyKeyMap() ReclassifyKeyMap {
	return ReclassifyKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous pair"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next pair"),
		),
		Mint: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "classify as 10m (mint)"),
		),
		Poor: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "classify as 10p (poor)"),
		),
		Skip: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space/s", "skip pair"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
