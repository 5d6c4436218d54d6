package services

import (
	"testing"

	"github.com/desertthunder/ytlink/internal/models"
	tu "github.com/desertthunder/ytlink/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tt := []struct {
		name string
		url  string
		want models.ResourceKind
	}{
		{name: "track", url: "https://open.spotify.com/track/abc123", want: models.Track},
		{name: "album", url: "https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy", want: models.Album},
		{name: "playlist", url: "https://open.spotify.com/playlist/xyz", want: models.Playlist},
		{name: "track with query string", url: "https://open.spotify.com/track/abc?si=123", want: models.Track},
		{name: "localized track", url: "https://open.spotify.com/intl-de/track/abc", want: models.Track},
		{name: "track takes priority over album", url: "https://open.spotify.com/album/x/track/y", want: models.Track},
		{name: "album takes priority over playlist", url: "https://open.spotify.com/playlist/x/album/y", want: models.Album},
		{name: "not spotify", url: "https://example.com/notspotify", want: models.Unknown},
		{name: "artist", url: "https://open.spotify.com/artist/0OdUWJ0sBjDrqHygGUXeCF", want: models.Unknown},
		{name: "marker only in query", url: "https://example.com/?next=/track/abc", want: models.Unknown},
		{name: "marker without trailing slash", url: "https://open.spotify.com/track", want: models.Unknown},
		{name: "empty", url: "", want: models.Unknown},
		{name: "unparseable falls back to raw text", url: "://bad/track/1", want: models.Track},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.url))
		})
	}
}

func TestParseLink(t *testing.T) {
	tt := []struct {
		name   string
		url    string
		wantID string
		kind   models.ResourceKind
	}{
		{name: "track id", url: "https://open.spotify.com/track/abc123", wantID: "abc123", kind: models.Track},
		{name: "query string dropped", url: "https://open.spotify.com/album/xyz?si=q", wantID: "xyz", kind: models.Album},
		{name: "trailing path dropped", url: "https://open.spotify.com/playlist/p1/extra", wantID: "p1", kind: models.Playlist},
		{name: "unknown has no id", url: "https://example.com/notspotify", wantID: "", kind: models.Unknown},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			link := ParseLink(tc.url)
			assert.Equal(t, tc.kind, link.Kind)
			assert.Equal(t, tc.wantID, link.ID)
			assert.Equal(t, tc.url, link.URL)
		})
	}
}

func TestExtractTrack(t *testing.T) {
	t.Run("extracts title and artist", func(t *testing.T) {
		meta, ok := ExtractTrack(tu.OGPage("Bohemian Rhapsody", "Song • Queen"))
		require.True(t, ok)
		assert.Equal(t, models.TrackMetadata{Title: "Bohemian Rhapsody", Artist: "Queen"}, meta)
		assert.Equal(t, "Bohemian Rhapsody - Queen", meta.FullTitle())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		meta, ok := ExtractTrack(tu.OGPage("  Under Pressure ", "  Song •   Queen, David Bowie  "))
		require.True(t, ok)
		assert.Equal(t, models.TrackMetadata{Title: "Under Pressure", Artist: "Queen, David Bowie"}, meta)
	})

	t.Run("unescapes entities", func(t *testing.T) {
		meta, ok := ExtractTrack(tu.OGPage("Rock &amp; Roll", "Song • Led Zeppelin"))
		require.True(t, ok)
		assert.Equal(t, "Rock & Roll", meta.(models.TrackMetadata).Title)
	})

	t.Run("description without prefix is kept", func(t *testing.T) {
		meta, ok := ExtractTrack(tu.OGPage("Bohemian Rhapsody", "Queen · Song · 1975"))
		require.True(t, ok)
		assert.Equal(t, "Queen · Song · 1975", meta.(models.TrackMetadata).Artist)
	})

	t.Run("first tag wins", func(t *testing.T) {
		page := `<html><head>
<meta property="og:title" content="First"/>
<meta property="og:title" content="Second"/>
<meta property="og:description" content="Song • Artist"/>
</head></html>`
		meta, ok := ExtractTrack(page)
		require.True(t, ok)
		assert.Equal(t, "First", meta.(models.TrackMetadata).Title)
	})

	absent := []struct {
		name   string
		markup string
	}{
		{name: "missing description", markup: tu.OGPage("Bohemian Rhapsody", "")},
		{name: "missing title", markup: tu.OGPage("", "Song • Queen")},
		{name: "no meta tags", markup: "<html><head><title>Spotify</title></head></html>"},
		{name: "empty markup", markup: ""},
		{name: "blank content", markup: `<meta property="og:title" content="   "/><meta property="og:description" content="Song • Queen"/>`},
		{name: "content attribute missing", markup: `<meta property="og:title"/><meta property="og:description" content="Song • Queen"/>`},
		{name: "name instead of property", markup: `<meta name="og:title" content="T"/><meta name="og:description" content="Song • A"/>`},
	}

	for _, tc := range absent {
		t.Run(tc.name, func(t *testing.T) {
			meta, ok := ExtractTrack(tc.markup)
			assert.False(t, ok)
			assert.Nil(t, meta)
		})
	}
}

func TestExtractAlbum(t *testing.T) {
	t.Run("extracts title and artist", func(t *testing.T) {
		meta, ok := ExtractAlbum(tu.OGPage("A Night at the Opera", "Album • Queen"))
		require.True(t, ok)
		assert.Equal(t, models.AlbumMetadata{Title: "A Night at the Opera", Artist: "Queen"}, meta)
		assert.Equal(t, models.Album, meta.Kind())
	})

	t.Run("track prefix is not stripped", func(t *testing.T) {
		meta, ok := ExtractAlbum(tu.OGPage("Jazz", "Song • Queen"))
		require.True(t, ok)
		assert.Equal(t, "Song • Queen", meta.(models.AlbumMetadata).Artist)
	})

	t.Run("missing description", func(t *testing.T) {
		_, ok := ExtractAlbum(tu.OGPage("Jazz", ""))
		assert.False(t, ok)
	})

	t.Run("missing title", func(t *testing.T) {
		_, ok := ExtractAlbum(tu.OGPage("", "Album • Queen"))
		assert.False(t, ok)
	})
}

func TestExtractPlaylist(t *testing.T) {
	tt := []struct {
		name   string
		markup string
		want   string
	}{
		{name: "title present", markup: tu.OGPage("Daily Mix 1", "Playlist • Spotify"), want: "Daily Mix 1"},
		{name: "title only", markup: tu.OGPage(" Chill Vibes ", ""), want: "Chill Vibes"},
		{name: "title missing", markup: tu.OGPage("", "Playlist • Spotify"), want: models.DefaultPlaylistTitle},
		{name: "empty markup", markup: "", want: models.DefaultPlaylistTitle},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			meta, ok := ExtractPlaylist(tc.markup)
			require.True(t, ok, "playlist extraction never reports absent")
			assert.Equal(t, models.PlaylistMetadata{Title: tc.want}, meta)
		})
	}
}

func TestDefaultExtractors(t *testing.T) {
	extractors := DefaultExtractors()
	for _, kind := range []models.ResourceKind{models.Track, models.Album, models.Playlist} {
		assert.Contains(t, extractors, kind)
	}
	assert.NotContains(t, extractors, models.Unknown)
}
