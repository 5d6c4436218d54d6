// package services defines the interfaces of the link conversion pipeline
//
// Spotify (source pages), YouTube Music (search links)
package services

import (
	"context"

	"github.com/desertthunder/ytlink/internal/models"
)

// Fetcher retrieves the raw markup of a page.
type Fetcher interface {
	// Fetch performs one GET request and returns the response body.
	// Fails with [shared.ErrFetch] or [shared.ErrCancelled].
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor parses fetched markup into a metadata record.
// The boolean is false when the required descriptor fields are absent.
type Extractor func(markup string) (models.Metadata, bool)

// Converter turns a source link into a target search link.
type Converter interface {
	Resolve(ctx context.Context, url string) (*models.ConversionResult, error)
}
