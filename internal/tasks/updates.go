package tasks

import (
	"fmt"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

// ProgressUpdate represents a progress event during a batch conversion.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Completed conversions so far
	Total   int    // Total conversions in the batch
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	StartBatch Phase = iota
	ConvertLink
	FinishBatch
)

func (p Phase) String() string {
	switch p {
	case StartBatch:
		return "start_batch"
	case ConvertLink:
		return "convert_link"
	case FinishBatch:
		return "finish_batch"
	default:
		return ""
	}
}

func startUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StartBatch,
		Total:   total,
		Message: fmt.Sprintf("Converting %d links...", total),
	}
}

func convertedUpdate(step, total int, item models.BatchItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ConvertLink,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, item.Result.Query),
		Data:    item,
	}
}

func failedUpdate(step, total int, item models.BatchItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ConvertLink,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, item.URL, shared.ErrorKind(item.Err)),
		Data:    item,
	}
}

func doneUpdate(converted, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FinishBatch,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Converted %d/%d links", converted, total),
	}
}
