// Package models defines domain types for the ytlink conversion service.
//
// The package contains three groups of types:
//
// 1. Classification: [ResourceKind] and [Link], derived purely from a source URL.
//
// 2. Metadata: the closed [Metadata] variant, implemented only by
//   - [TrackMetadata] : title and artist scraped from a track page
//   - [AlbumMetadata] : title and artist scraped from an album page
//   - [PlaylistMetadata] : title scraped from a playlist page, with a fixed fallback
//
// 3. Results: [ConversionResult] for a single conversion, [BatchItem] for batch rows
// and [Message] for the chat layer.
//
// None of these types outlive a single conversion; there is no persistence.
package models
