// package chat implements the platform-agnostic bot behaviour: spotting Spotify links in
// messages and answering with YouTube Music links.
package chat

import (
	"context"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
)

const DefaultHistoryLimit = 50

// Replies posted by the bot.
const (
	ProcessingLinkText  = "🔎 Processing Spotify link…"
	ProcessingText      = "🔎 Processing…"
	LinkFailedText      = "❌ Could not process Spotify link."
	MetadataFailedText  = "❌ Could not extract metadata."
	NoLinkFoundText     = "No Spotify link found."
	ConvertCommandName  = "convert"
	ConvertCommandUsage = "Convert latest Spotify link to YouTube Music"
)

var linkPattern = regexp.MustCompile(`https?://open\.spotify\.com/(?:track|album|playlist)/[^\s]+`)

// FindLink returns the first Spotify track, album or playlist link in text.
func FindLink(text string) (string, bool) {
	link := linkPattern.FindString(text)
	return link, link != ""
}

// FindAllLinks returns every Spotify link in text in order of appearance.
func FindAllLinks(text string) []string {
	return linkPattern.FindAllString(text, -1)
}

// LatestLink returns the most recent link in history, which is ordered oldest to newest.
//
// Only the last limit messages are considered; limit <= 0 uses [DefaultHistoryLimit].
func LatestLink(history []models.Message, limit int) (string, bool) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	for i, seen := len(history)-1, 0; i >= 0 && seen < limit; i, seen = i-1, seen+1 {
		if link, ok := FindLink(history[i].Content); ok {
			return link, true
		}
	}
	return "", false
}

// Channel is where the bot posts its replies.
type Channel interface {
	Send(ctx context.Context, text string) error
}

// Bot answers messages containing Spotify links.
type Bot struct {
	converter    services.Converter
	historyLimit int
	logger       *log.Logger
}

// NewBot creates a new Bot. historyLimit bounds the /convert history scan.
func NewBot(converter services.Converter, historyLimit int, logger *log.Logger) *Bot {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Bot{converter: converter, historyLimit: historyLimit, logger: logger}
}

// OnMessage handles a newly posted message.
//
// Messages from bots and messages without a link are ignored. Otherwise the bot
// acknowledges the link, converts it and posts either the result or a failure notice.
func (b *Bot) OnMessage(ctx context.Context, ch Channel, msg models.Message) error {
	if msg.Bot {
		return nil
	}

	link, ok := FindLink(msg.Content)
	if !ok {
		return nil
	}

	b.logger.Debug("link detected", "author", msg.Author, "url", link)
	if err := ch.Send(ctx, ProcessingLinkText); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return b.reply(ctx, ch, link, LinkFailedText)
}

// Convert handles the /convert command by converting the most recent link in history.
func (b *Bot) Convert(ctx context.Context, ch Channel, history []models.Message) error {
	link, ok := LatestLink(history, b.historyLimit)
	if !ok {
		if err := ch.Send(ctx, NoLinkFoundText); err != nil {
			return fmt.Errorf("failed to send reply: %w", err)
		}
		return nil
	}

	if err := ch.Send(ctx, ProcessingText); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return b.reply(ctx, ch, link, MetadataFailedText)
}

func (b *Bot) reply(ctx context.Context, ch Channel, link, failure string) error {
	text := failure

	result, err := b.converter.Resolve(ctx, link)
	if err != nil {
		b.logger.Warn("could not convert link", "url", link, "reason", shared.ErrorKind(err))
	} else {
		text = formatter.Reply(result)
	}

	if err := ch.Send(ctx, text); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}
