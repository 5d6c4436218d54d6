// Spotify link classification and page metadata extraction
//
// Metadata comes from the Open Graph tags Spotify embeds for social previews
// (og:title, og:description); no API credentials are involved.
package services

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/ytlink/internal/models"
)

const (
	ogTitle       = "og:title"
	ogDescription = "og:description"

	trackDescriptionPrefix = "Song •"
	albumDescriptionPrefix = "Album •"
)

// pathMarkers are checked in order; the first match wins.
var pathMarkers = []struct {
	marker string
	kind   models.ResourceKind
}{
	{"/track/", models.Track},
	{"/album/", models.Album},
	{"/playlist/", models.Playlist},
}

// linkPath returns the path of rawURL, or rawURL itself when it does not parse.
func linkPath(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	return u.Path
}

// Classify determines the [models.ResourceKind] referenced by rawURL from its path.
func Classify(rawURL string) models.ResourceKind {
	path := linkPath(rawURL)
	for _, m := range pathMarkers {
		if strings.Contains(path, m.marker) {
			return m.kind
		}
	}
	return models.Unknown
}

// ParseLink classifies rawURL and extracts the item ID that follows the kind marker.
func ParseLink(rawURL string) models.Link {
	link := models.Link{Kind: models.Unknown, URL: rawURL}

	path := linkPath(rawURL)
	for _, m := range pathMarkers {
		idx := strings.Index(path, m.marker)
		if idx < 0 {
			continue
		}

		link.Kind = m.kind
		rest := path[idx+len(m.marker):]
		if end := strings.IndexAny(rest, "/?#"); end >= 0 {
			rest = rest[:end]
		}
		link.ID = rest
		return link
	}

	return link
}

// DefaultExtractors returns the extractor table keyed by resource kind.
func DefaultExtractors() map[models.ResourceKind]Extractor {
	return map[models.ResourceKind]Extractor{
		models.Track:    ExtractTrack,
		models.Album:    ExtractAlbum,
		models.Playlist: ExtractPlaylist,
	}
}

// ExtractTrack reads the title and artist of a track page.
//
// The artist comes from og:description, which reads "Song • <artist>".
func ExtractTrack(markup string) (models.Metadata, bool) {
	title, artist, ok := titleAndArtist(markup, trackDescriptionPrefix)
	if !ok {
		return nil, false
	}
	return models.TrackMetadata{Title: title, Artist: artist}, true
}

// ExtractAlbum reads the title and artist of an album page.
//
// The artist comes from og:description, which reads "Album • <artist>".
func ExtractAlbum(markup string) (models.Metadata, bool) {
	title, artist, ok := titleAndArtist(markup, albumDescriptionPrefix)
	if !ok {
		return nil, false
	}
	return models.AlbumMetadata{Title: title, Artist: artist}, true
}

// ExtractPlaylist reads the title of a playlist page. It never fails: a page without
// og:title yields [models.DefaultPlaylistTitle].
func ExtractPlaylist(markup string) (models.Metadata, bool) {
	title, ok := descriptors(markup)[ogTitle]
	if !ok {
		title = models.DefaultPlaylistTitle
	}
	return models.PlaylistMetadata{Title: title}, true
}

// titleAndArtist returns og:title and og:description with prefix stripped.
//
// A description that does not start with prefix is returned trimmed but otherwise unchanged.
func titleAndArtist(markup, prefix string) (string, string, bool) {
	fields := descriptors(markup)

	title, ok := fields[ogTitle]
	if !ok {
		return "", "", false
	}

	desc, ok := fields[ogDescription]
	if !ok {
		return "", "", false
	}

	artist := strings.TrimSpace(strings.TrimPrefix(desc, prefix))
	return title, artist, true
}

// descriptors collects the trimmed content of the og:title and og:description meta tags.
//
// Tags without a content attribute, or with blank content, are left out. The first tag wins.
// Markup that cannot be parsed yields an empty map.
func descriptors(markup string) map[string]string {
	fields := make(map[string]string, 2)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return fields
	}

	doc.Find("meta[property]").Each(func(_ int, sel *goquery.Selection) {
		property, _ := sel.Attr("property")
		property = strings.ToLower(strings.TrimSpace(property))
		if property != ogTitle && property != ogDescription {
			return
		}
		if _, seen := fields[property]; seen {
			return
		}

		content, exists := sel.Attr("content")
		content = strings.TrimSpace(content)
		if !exists || content == "" {
			return
		}
		fields[property] = content
	})

	return fields
}
