// Package ui implements a local chat channel in the terminal using bubbletea's Elm architecture.
//
// The screen is a scrollback of messages above a single-line text input. Plain messages are
// handed to [chat.Bot.OnMessage] as if posted in a chat room; "/convert" runs [chat.Bot.Convert]
// over the scrollback and "/quit" exits.
//
// The bot runs in a [tea.Cmd] and posts through [Channel], which feeds replies back to the
// model one [Msg] at a time, so bot messages appear asynchronously while the input stays live.
package ui
