// package formatter renders conversion results as chat replies and exports batch results (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

// Supported export formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Reply renders the chat message posted for a successful conversion.
func Reply(result *models.ConversionResult) string {
	return fmt.Sprintf("%s\n👉 **YouTube Music link:**\n%s", result.Label, result.Link)
}

// ExportToCSV converts batch items to CSV with columns: URL, Status, Kind, Title, Link, Error
func ExportToCSV(items []models.BatchItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"URL", "Status", "Kind", "Title", "Link", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{item.URL, status(item), "", "", "", ""}
		if item.OK() {
			record[2] = item.Result.Kind.String()
			record[3] = item.Result.Query
			record[4] = item.Result.Link
		} else {
			record[5] = errorText(item.Err)
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts batch items to a Markdown list of labels and links
func ExportToMarkdown(items []models.BatchItem) ([]byte, error) {
	var buf bytes.Buffer

	ok := 0
	for _, item := range items {
		if item.OK() {
			ok++
		}
	}

	buf.WriteString("# YouTube Music links\n\n")
	buf.WriteString(fmt.Sprintf("**Converted**: %d/%d\n\n", ok, len(items)))

	for i, item := range items {
		if item.OK() {
			buf.WriteString(fmt.Sprintf("%d. %s\n   - <%s>\n", i+1, item.Result.Label, item.Result.Link))
			continue
		}
		buf.WriteString(fmt.Sprintf("%d. ❌ <%s> (%s)\n", i+1, item.URL, shared.ErrorKind(item.Err)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts batch items to plain text, one reply block per item
func ExportToText(items []models.BatchItem) ([]byte, error) {
	var buf bytes.Buffer

	for i, item := range items {
		if i > 0 {
			buf.WriteString("\n")
		}
		if item.OK() {
			buf.WriteString(Reply(item.Result))
			buf.WriteString("\n")
			continue
		}
		buf.WriteString(fmt.Sprintf("❌ %s: %s\n", item.URL, errorText(item.Err)))
	}

	return buf.Bytes(), nil
}

type jsonItem struct {
	URL    string                   `json:"url"`
	Status string                   `json:"status"`
	Result *models.ConversionResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
	Reason string                   `json:"reason,omitempty"`
}

// ExportToJSON converts batch items to a JSON array
func ExportToJSON(items []models.BatchItem, pretty bool) ([]byte, error) {
	out := make([]jsonItem, len(items))
	for i, item := range items {
		out[i] = jsonItem{URL: item.URL, Status: status(item)}
		if item.OK() {
			out[i].Result = item.Result
		} else {
			out[i].Error = errorText(item.Err)
			out[i].Reason = shared.ErrorKind(item.Err)
		}
	}

	if pretty {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// Export renders items in the named format.
func Export(items []models.BatchItem, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText, "txt":
		return ExportToText(items)
	case FormatJSON:
		return ExportToJSON(items, true)
	case FormatCSV:
		return ExportToCSV(items)
	case FormatMarkdown, "md":
		return ExportToMarkdown(items)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders items in the named format and writes them to path.
func WriteExport(items []models.BatchItem, format, path string) error {
	data, err := Export(items, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

func status(item models.BatchItem) string {
	if item.OK() {
		return "ok"
	}
	return "failed"
}

func errorText(err error) string {
	if err == nil {
		return "no result"
	}
	return err.Error()
}
