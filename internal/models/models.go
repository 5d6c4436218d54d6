// package models defines the data model for the link conversion service
package models

import (
	"fmt"
	"time"
)

// ResourceKind is the kind of item a source link points at.
type ResourceKind int

const (
	Unknown ResourceKind = iota
	Track
	Album
	Playlist
)

func (k ResourceKind) String() string {
	switch k {
	case Track:
		return "track"
	case Album:
		return "album"
	case Playlist:
		return "playlist"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k ResourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DefaultPlaylistTitle is used when a playlist page exposes no title.
const DefaultPlaylistTitle = "Spotify Playlist"

// Link is a classified source link.
type Link struct {
	Kind ResourceKind
	ID   string // path segment following the kind marker
	URL  string
}

// Metadata is the closed set of records produced by extractors: [TrackMetadata], [AlbumMetadata] and [PlaylistMetadata].
type Metadata interface {
	Kind() ResourceKind // Kind returns the resource kind the record describes
	FullTitle() string  // FullTitle returns the text used for both the display label and the search query
	metadata()
}

// TrackMetadata describes a single song.
type TrackMetadata struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

func (TrackMetadata) Kind() ResourceKind { return Track }
func (TrackMetadata) metadata()          {}

// FullTitle returns "<title> - <artist>".
func (m TrackMetadata) FullTitle() string {
	return fmt.Sprintf("%s - %s", m.Title, m.Artist)
}

// AlbumMetadata describes an album.
type AlbumMetadata struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

func (AlbumMetadata) Kind() ResourceKind { return Album }
func (AlbumMetadata) metadata()          {}

// FullTitle returns "<title> - <artist>".
func (m AlbumMetadata) FullTitle() string {
	return fmt.Sprintf("%s - %s", m.Title, m.Artist)
}

// PlaylistMetadata describes a playlist. Title falls back to [DefaultPlaylistTitle].
type PlaylistMetadata struct {
	Title string `json:"title"`
}

func (PlaylistMetadata) Kind() ResourceKind { return Playlist }
func (PlaylistMetadata) metadata()          {}

func (m PlaylistMetadata) FullTitle() string { return m.Title }

// ConversionResult is a successful conversion of a source link into a target search link.
type ConversionResult struct {
	Kind      ResourceKind `json:"kind"`
	SourceURL string       `json:"source_url"`
	Label     string       `json:"label"`
	Link      string       `json:"link"`
	Query     string       `json:"query"`
	Metadata  Metadata     `json:"metadata"`
}

// BatchItem is one row of a batch conversion. Exactly one of Result and Err is set.
type BatchItem struct {
	URL    string
	Result *ConversionResult
	Err    error
}

// OK reports whether the item converted successfully.
func (b BatchItem) OK() bool {
	return b.Err == nil && b.Result != nil
}

// Message is a chat message as seen by the bot.
type Message struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Bot     bool      `json:"bot"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}
