// YouTube Music search link construction
package services

import (
	"net/url"
	"strings"
)

const defaultYTSearchURL string = "https://music.youtube.com/search"

// YouTubeMusic builds search links against the YouTube Music web client.
type YouTubeMusic struct {
	searchURL string
}

// NewYouTubeMusic creates a new query builder for the given search endpoint.
func NewYouTubeMusic(searchURL string) *YouTubeMusic {
	if searchURL == "" {
		searchURL = defaultYTSearchURL
	}

	return &YouTubeMusic{searchURL: strings.TrimRight(searchURL, "?")}
}

// Name returns the service name.
func (y *YouTubeMusic) Name() string {
	return "YouTube Music"
}

// SearchURL returns the search link for free-text q.
//
// The query is form-encoded: reserved characters are percent-escaped and spaces become "+".
func (y *YouTubeMusic) SearchURL(q string) string {
	return y.searchURL + "?q=" + url.QueryEscape(q)
}

// ParseQuery returns the decoded search text of a link built by [YouTubeMusic.SearchURL].
func ParseQuery(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}

	values := u.Query()
	if !values.Has("q") {
		return "", false
	}
	return values.Get("q"), true
}
