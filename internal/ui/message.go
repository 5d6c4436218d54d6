package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBotReply MsgKind = iota
	MsgBotDone
)

// botReplyMsg is the constructor for [MsgBotReply]
func botReplyMsg(text string) Msg {
	return Msg{kind: MsgBotReply, data: text}
}

// botDoneMsg is the constructor for [MsgBotDone]
func botDoneMsg(err error) Msg {
	return Msg{kind: MsgBotDone, data: err}
}
