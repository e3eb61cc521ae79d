package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/toasty/internal/dbus"
)

// PlainFormatter formats notifications as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes notifications as plain text.
func (f *PlainFormatter) Format(w io.Writer, entries []dbus.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no notifications on screen")
		return err
	}
	for i, e := range entries {
		if err := f.formatEntry(w, i+1, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatEntry(w io.Writer, index int, e dbus.Entry) error {
	if f.template != nil {
		return f.template.Execute(w, f.templateData(index, e))
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}
	sb.WriteString(fmt.Sprintf("%-12s ", e.Kind))
	sb.WriteString(sanitizeMessage(e.Message, f.opts.MessageMax))

	if f.opts.ShowTime {
		sb.WriteString(fmt.Sprintf(" (%s)", age(e.CreatedAt(), f.opts.now())))
	}
	if f.opts.ShowState {
		sb.WriteString(" [" + e.State + "]")
	}
	sb.WriteString("\n    " + e.ID + "\n")

	_, err := w.Write([]byte(sb.String()))
	return err
}

func (f *PlainFormatter) templateData(index int, e dbus.Entry) templateData {
	return templateData{Index: index, Entry: e, Age: age(e.CreatedAt(), f.opts.now())}
}
