package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/toasty/internal/dbus"
)

// DmenuFormatter formats notifications one per line for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes notifications in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, entries []dbus.Entry) error {
	for i, e := range entries {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, e)); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single notification line.
func (f *DmenuFormatter) formatLine(index int, e dbus.Entry) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{Index: index, Entry: e, Age: age(e.CreatedAt(), f.opts.now())}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	// Default format: index | age | kind | message | id
	var parts []string
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	if f.opts.ShowIndex {
		parts = append(parts, strconv.Itoa(index))
	}
	if f.opts.ShowTime {
		parts = append(parts, age(e.CreatedAt(), f.opts.now()))
	}
	parts = append(parts, e.Kind, sanitizeMessage(e.Message, f.opts.MessageMax), e.ID)

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index int
	Entry dbus.Entry
	Age   string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			return sanitizeMessage(s, maxLen)
		},
		"upper": strings.ToUpper,
		"kindIcon": func(kind string) string {
			switch kind {
			case "success":
				return "+"
			case "warning":
				return "!"
			case "error":
				return "x"
			case "confirmation":
				return "?"
			default:
				return "i"
			}
		},
	}
}
