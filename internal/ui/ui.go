package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytlink/internal/chat"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

const (
	BotName     = "ytlink"
	QuitCommand = "/quit"

	replyBuffer = 32
	chromeLines = 5
)

// Channel is a [chat.Channel] that delivers bot replies to the TUI.
type Channel struct {
	replies chan<- string
}

// Send queues text for display, blocking until there is room or ctx is done.
func (c Channel) Send(ctx context.Context, text string) error {
	select {
	case c.replies <- text:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	bot      *chat.Bot
	author   string
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	history  []models.Message
	replies  chan string
	pending  int
	err      error
	width    int
	height   int
}

// NewModel creates a new TUI model posting as author.
func NewModel(ctx context.Context, bot *chat.Bot, author string) *Model {
	if author == "" {
		author = "you"
	}

	input := textinput.New()
	input.Placeholder = "Paste a Spotify link, or /convert"
	input.Prompt = "› "
	input.CharLimit = 2000
	input.Focus()

	return &Model{
		ctx:      ctx,
		bot:      bot,
		author:   author,
		input:    input,
		viewport: viewport.New(80, 20),
		help:     help.New(),
		keys:     newKeyMap(),
		replies:  make(chan string, replyBuffer),
	}
}

// Channel returns the channel the bot posts to.
func (m *Model) Channel() Channel {
	return Channel{replies: m.replies}
}

// History returns a copy of the scrollback.
func (m *Model) History() []models.Message {
	return append([]models.Message(nil), m.history...)
}

// Init starts the cursor blink and the reply listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForReply())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeLines, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.send):
			return m, m.submit()
		case key.Matches(msg, m.keys.pageUp, m.keys.pageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case Msg:
		switch msg.kind {
		case MsgBotReply:
			m.append(models.Message{Author: BotName, Bot: true, Content: msg.data.(string)})
			return m, m.waitForReply()
		case MsgBotDone:
			m.pending--
			if err, ok := msg.data.(error); ok && err != nil {
				m.err = err
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the scrollback, input and help line.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("ytlink • Spotify → YouTube Music"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.pending > 0:
		b.WriteString(styles.help.Render("working..."))
	default:
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return b.String()
}

// submit consumes the input line and dispatches it to the bot.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if text == "" {
		return nil
	}

	m.err = nil
	switch text {
	case QuitCommand:
		return tea.Quit
	case "/" + chat.ConvertCommandName:
		return m.runBot(func(ctx context.Context, ch chat.Channel, history []models.Message) error {
			return m.bot.Convert(ctx, ch, history)
		})
	}

	msg := models.Message{
		ID:      shared.GenerateID(),
		Author:  m.author,
		Content: text,
		SentAt:  time.Now(),
	}
	m.append(msg)

	return m.runBot(func(ctx context.Context, ch chat.Channel, _ []models.Message) error {
		return m.bot.OnMessage(ctx, ch, msg)
	})
}

// runBot runs fn off the update loop with a snapshot of the history.
func (m *Model) runBot(fn func(context.Context, chat.Channel, []models.Message) error) tea.Cmd {
	if m.bot == nil {
		m.err = fmt.Errorf("%w: bot not initialized", shared.ErrServiceUnavailable)
		return nil
	}

	m.pending++
	history := m.History()
	ch := m.Channel()
	ctx := m.ctx

	return func() tea.Msg {
		return botDoneMsg(fn(ctx, ch, history))
	}
}

func (m *Model) waitForReply() tea.Cmd {
	return func() tea.Msg {
		select {
		case text := <-m.replies:
			return botReplyMsg(text)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) append(msg models.Message) {
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	m.history = append(m.history, msg)
	m.refresh()
}

func (m *Model) refresh() {
	lines := make([]string, 0, len(m.history))
	for _, msg := range m.history {
		lines = append(lines, renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func renderMessage(msg models.Message) string {
	stamp := styles.help.Render(msg.SentAt.Format("15:04"))
	if !msg.Bot {
		return fmt.Sprintf("%s %s %s", stamp, styles.author.Render(msg.Author+":"), msg.Content)
	}

	body := msg.Content
	if strings.HasPrefix(body, "❌") {
		body = styles.err.Render(body)
	}
	return fmt.Sprintf("%s %s %s", stamp, styles.bot.Render(msg.Author+":"), body)
}

// Run starts the TUI on the terminal and blocks until the user quits.
func Run(ctx context.Context, bot *chat.Bot, author string) error {
	p := tea.NewProgram(NewModel(ctx, bot, author), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
