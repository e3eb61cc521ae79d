// Package output formats the notifications reported by the daemon for the
// toasty CLI.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toasty/internal/dbus"
)

// Formatter formats notifications for output.
type Formatter interface {
	// Format writes formatted notifications to the writer.
	Format(w io.Writer, entries []dbus.Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
)

// FormatTypes returns every supported format.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatDmenu, FormatJSON, FormatYAML, FormatIDs}
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (FormatType, error) {
	f := FormatType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FormatTypes() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: plain, dmenu, json, yaml, ids)", s)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom template for dmenu/plain format
	ShowIndex  bool   // Show 1-based index prefix
	ShowTime   bool   // Show relative age
	ShowState  bool   // Show lifecycle state
	MessageMax int    // Maximum message length (0 = unlimited)
	Separator  string // Field separator for dmenu format

	// Now is the reference time for ages; zero means time.Now.
	Now time.Time
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:  true,
		ShowTime:   true,
		MessageMax: 80,
		Separator:  " | ",
	}
}

func (o FormatterOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// record is the serialized form of an entry.
type record struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      string    `json:"kind" yaml:"kind"`
	Message   string    `json:"message" yaml:"message"`
	State     string    `json:"state" yaml:"state"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Age       string    `json:"age" yaml:"age"`
}

func records(entries []dbus.Entry, now time.Time) []record {
	out := make([]record, len(entries))
	for i, e := range entries {
		out[i] = record{
			ID:        e.ID,
			Kind:      e.Kind,
			Message:   e.Message,
			State:     e.State,
			CreatedAt: e.CreatedAt().UTC(),
			Age:       age(e.CreatedAt(), now),
		}
	}
	return out
}

// age returns a human-readable age such as "3 minutes ago".
func age(created, now time.Time) string {
	if created.IsZero() || created.Unix() == 0 {
		return "unknown"
	}
	if now.Sub(created) < time.Second {
		return "now"
	}
	return humanize.RelTime(created, now, "ago", "from now")
}

// sanitizeMessage cleans up message text for single-line display.
func sanitizeMessage(msg string, maxLen int) string {
	msg = strings.ReplaceAll(msg, "\r", "")
	msg = strings.Join(strings.Fields(msg), " ")

	if maxLen > 0 && len(msg) > maxLen {
		if maxLen <= 3 {
			return msg[:maxLen]
		}
		return msg[:maxLen-3] + "..."
	}
	return msg
}
