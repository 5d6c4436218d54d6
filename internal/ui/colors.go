package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#1DB954", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	bot    lipgloss.Style
	err    lipgloss.Style
	author lipgloss.Style
	help   lipgloss.Style
}

func NewPalette(t, b, e, a, h string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		bot:    NewBold(b),
		err:    NewBold(e),
		author: NewBold(a),
		help:   NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
