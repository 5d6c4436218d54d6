// Package services implements the link conversion pipeline: a Spotify link goes in, a YouTube Music search link comes out.
//
// # Pipeline
//
// [Resolver] runs one linear pass per link, stopping at the first failure:
//
//  1. [Classify] the URL path (/track/, /album/, /playlist/, checked in that order)
//  2. Fetch the page with a [Fetcher] ([HTTPFetcher] in production)
//  3. Run the [Extractor] registered for the kind ([ExtractTrack], [ExtractAlbum], [ExtractPlaylist])
//  4. Format the [Label] and build the target link with [YouTubeMusic.SearchURL]
//
// # Metadata Extraction
//
// Extractors read the Open Graph meta tags Spotify renders for link previews. Track and album
// pages carry the artist in og:description behind a fixed "Song •" / "Album •" prefix.
// If Spotify changes that wording the extracted artist will be wrong rather than missing.
//
// Playlists only need og:title and fall back to "Spotify Playlist" when it is absent.
//
// # Error Handling
//
// Failures use typed errors from shared package:
//   - [shared.ErrUnrecognizedLink] : URL path has no known kind marker
//   - [shared.ErrFetch] : transport failure, timeout or non-2xx status
//   - [shared.ErrMetadataNotFound] : track/album page lacks og:title or og:description
//   - [shared.ErrCancelled] : the caller's context was cancelled
//
// # Concurrency
//
// A [Resolver] is immutable after construction. Any number of Resolve calls may run
// concurrently; each holds one outbound connection for the duration of its fetch.
package services
