package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/toasty/internal/dbus"
)

// IDsFormatter outputs just the notification IDs, one per line.
// Useful for piping to other commands (e.g., xargs toasty dismiss).
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes notification IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, entries []dbus.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.ID); err != nil {
			return err
		}
	}
	return nil
}
