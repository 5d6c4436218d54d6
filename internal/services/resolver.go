// [Converter] implementation orchestrating classify, fetch, extract and query building
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

// Resolver implements [Converter].
//
// It holds no mutable state after construction and is safe for concurrent use.
type Resolver struct {
	fetcher    Fetcher
	target     *YouTubeMusic
	extractors map[models.ResourceKind]Extractor
	logger     *log.Logger
}

// ResolverOpts contains configuration for creating a [Resolver].
type ResolverOpts struct {
	Fetcher    Fetcher
	Target     *YouTubeMusic
	Extractors map[models.ResourceKind]Extractor // defaults to [DefaultExtractors]
	Logger     *log.Logger
}

// NewResolver creates a new Resolver with the provided dependencies.
func NewResolver(opts ResolverOpts) *Resolver {
	if opts.Fetcher == nil {
		opts.Fetcher = NewHTTPFetcher(FetcherOpts{})
	}
	if opts.Target == nil {
		opts.Target = NewYouTubeMusic("")
	}
	if opts.Extractors == nil {
		opts.Extractors = DefaultExtractors()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Resolver{
		fetcher:    opts.Fetcher,
		target:     opts.Target,
		extractors: opts.Extractors,
		logger:     opts.Logger,
	}
}

// Resolve converts a source link into a display label and target search link.
//
// Errors wrap exactly one of [shared.ErrUnrecognizedLink], [shared.ErrFetch],
// [shared.ErrMetadataNotFound] or [shared.ErrCancelled]. Nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, url string) (*models.ConversionResult, error) {
	link := ParseLink(url)
	logger := shared.WithLogger(r.logger, "request_id", shared.GenerateID(), "url", url, "kind", link.Kind)

	result, err := r.resolve(ctx, link)
	if err != nil {
		logger.Warn("conversion failed", "reason", shared.ErrorKind(err), "err", err)
		return nil, err
	}

	logger.Info("conversion complete", "query", result.Query)
	return result, nil
}

func (r *Resolver) resolve(ctx context.Context, link models.Link) (*models.ConversionResult, error) {
	if link.Kind == models.Unknown {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnrecognizedLink, link.URL)
	}

	extract, ok := r.extractors[link.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor for %s links", shared.ErrUnrecognizedLink, link.Kind)
	}

	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}

	r.logger.Debug("fetching source page", "url", link.URL, "id", link.ID)
	markup, err := r.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		if errors.Is(err, shared.ErrFetch) || errors.Is(err, shared.ErrCancelled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", shared.ErrFetch, err)
	}

	meta, ok := extract(markup)
	if !ok || meta == nil {
		return nil, fmt.Errorf("%w: %s page is missing og:title or og:description", shared.ErrMetadataNotFound, link.Kind)
	}

	label, err := Label(meta)
	if err != nil {
		return nil, err
	}

	query := meta.FullTitle()
	return &models.ConversionResult{
		Kind:      meta.Kind(),
		SourceURL: link.URL,
		Label:     label,
		Link:      r.target.SearchURL(query),
		Query:     query,
		Metadata:  meta,
	}, nil
}

// Label formats the kind-specific display label for meta.
func Label(meta models.Metadata) (string, error) {
	switch m := meta.(type) {
	case models.TrackMetadata:
		return fmt.Sprintf("🎶 Track: **%s**", m.FullTitle()), nil
	case models.AlbumMetadata:
		return fmt.Sprintf("📀 Album: **%s**", m.FullTitle()), nil
	case models.PlaylistMetadata:
		return fmt.Sprintf("🎵 Playlist: **%s**", m.FullTitle()), nil
	default:
		return "", fmt.Errorf("%w: unsupported metadata %T", shared.ErrUnrecognizedLink, meta)
	}
}

// contextError maps a context error to the conversion error taxonomy.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", shared.ErrFetch, err)
	}
	return fmt.Errorf("%w: %w", shared.ErrCancelled, err)
}
