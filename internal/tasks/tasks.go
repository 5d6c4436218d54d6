package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/ytlink/internal/chat"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
)

const (
	DefaultWorkers = 4
	MaxWorkers     = 16
)

// ConvertOpts contains configuration for batch conversions.
type ConvertOpts struct {
	Workers int // Concurrent conversions (default: 4, max: 16)
}

// Engine converts batches of links with a bounded worker pool.
type Engine struct {
	converter services.Converter
}

type convertJob struct {
	index int
	url   string
}

// NewEngine creates a new Engine backed by converter.
func NewEngine(converter services.Converter) *Engine {
	return &Engine{converter: converter}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ConvertAll converts every url and returns one item per url, in input order.
//
// Failures are recorded on the item and never abort the batch. Once ctx is done no
// further conversions start; items that never ran carry [shared.ErrCancelled].
func (e *Engine) ConvertAll(ctx context.Context, progress chan<- ProgressUpdate, urls []string, opts ConvertOpts) ([]models.BatchItem, error) {
	if e.converter == nil {
		return nil, fmt.Errorf("%w: converter not initialized", shared.ErrServiceUnavailable)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	total := len(urls)
	items := make([]models.BatchItem, total)
	done := make([]bool, total)
	for i, url := range urls {
		items[i].URL = url
	}

	e.sendProgress(progress, startUpdate(total))
	if total == 0 {
		e.sendProgress(progress, doneUpdate(0, 0))
		return items, nil
	}

	jobs := make(chan convertJob)
	results := make(chan convertJob, total)

	var wg sync.WaitGroup
	for range min(workers, total) {
		wg.Add(1)
		go e.convertWorker(ctx, &wg, jobs, results, items)
	}

	go func() {
		defer close(jobs)
		for i, url := range urls {
			select {
			case <-ctx.Done():
				return
			case jobs <- convertJob{index: i, url: url}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed, converted := 0, 0
	for res := range results {
		completed++
		done[res.index] = true
		item := items[res.index]
		if item.OK() {
			converted++
			e.sendProgress(progress, convertedUpdate(completed, total, item))
		} else {
			e.sendProgress(progress, failedUpdate(completed, total, item))
		}
	}

	for i := range items {
		if !done[i] {
			items[i].Err = fmt.Errorf("%w: %w", shared.ErrCancelled, context.Cause(ctx))
		}
	}

	e.sendProgress(progress, doneUpdate(converted, total))
	return items, nil
}

// convertWorker resolves jobs until the jobs channel closes.
//
// Each worker writes only to the item at its job's index.
func (e *Engine) convertWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan convertJob,
	results chan<- convertJob,
	items []models.BatchItem,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			continue
		}

		result, err := e.converter.Resolve(ctx, job.url)
		items[job.index].Result = result
		items[job.index].Err = err
		results <- job
	}
}

// ScanLinks returns every Spotify link in text in order of appearance, without duplicates.
func ScanLinks(text string) []string {
	seen := make(map[string]bool)
	var links []string
	for _, link := range chat.FindAllLinks(text) {
		if seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	return links
}
