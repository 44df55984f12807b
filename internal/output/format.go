package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/selimozcann/safeurl/internal/model"
)

// Format selects a report renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatJSONL, FormatMarkdown, FormatHTML}

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a name to a Format. "md" is accepted for Markdown.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats {
		if string(f) == n {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Options tune Write.
type Options struct {
	NoColor bool
	Title   string
	Params  map[string]string
}

// Write renders results to w in the given format.
func Write(w io.Writer, format Format, results []model.Analysis, opts Options) error {
	switch format {
	case FormatText:
		p := NewPrinter(w, opts.NoColor)
		for i, a := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			p.PrintAnalysis(a)
		}
		return nil
	case FormatJSON, FormatJSONL:
		records := make([]Record, len(results))
		for i, a := range results {
			records[i] = BuildRecord(a)
		}
		if format == FormatJSONL {
			return WriteJSONL(w, records)
		}
		return WriteJSON(w, records)
	case FormatMarkdown:
		return WriteMarkdown(w, results)
	case FormatHTML:
		title := opts.Title
		if title == "" {
			title = "SafeUrl Report"
		}
		return RenderHTML(w, PageData{
			Title:       title,
			GeneratedAt: time.Now(),
			Params:      opts.Params,
			Summary:     BuildSummary(results),
			Results:     results,
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
