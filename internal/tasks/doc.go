// Package tasks converts batches of Spotify links with real-time progress reporting.
//
// # Batch Conversion
//
// [Engine.ConvertAll] fans a list of links out to a bounded pool of workers, each calling
// [services.Converter.Resolve]. The returned items line up with the input: item i always
// describes urls[i], whatever order the workers finish in.
//
//   - A failed link is recorded on its item and the batch carries on
//   - Cancelling the context stops new conversions; unstarted items get [shared.ErrCancelled]
//   - Worker count defaults to [DefaultWorkers] and is capped at [MaxWorkers]
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking, so a slow or absent reader never stalls a batch.
//
// # Scanning
//
// [ScanLinks] pulls every Spotify link out of free text (chat logs, files, stdin) ready for a batch.
package tasks
