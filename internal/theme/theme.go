package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jmylchreest/toasty/internal/config"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// ErrThemeNotFound is returned by Resolve when neither the user directory nor
// the bundled set has the theme.
var ErrThemeNotFound = errors.New("theme not found")

// Theme is a CSS theme with its imports inlined.
type Theme struct {
	Name     string
	Path     string // empty for bundled themes
	CSS      string
	ModTime  time.Time
	Embedded bool
}

// IsDefault reports whether this is the bundled default theme.
func (t *Theme) IsDefault() bool {
	return t.Embedded && t.Name == DefaultThemeName
}

// ThemesDir returns the user's themes directory.
func ThemesDir() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// NewTheme loads a CSS file and inlines its @import statements.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat theme: %w", err)
	}
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// NewEmbeddedTheme returns a bundled theme with imports resolved.
func NewEmbeddedTheme(name string) (*Theme, bool) {
	css, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, false
	}
	return &Theme{
		Name:     name,
		CSS:      ProcessImports(css, "", nil),
		Embedded: true,
	}, true
}

// NewDefaultTheme returns the bundled default theme.
func NewDefaultTheme() *Theme {
	t, _ := NewEmbeddedTheme(DefaultThemeName)
	return t
}

// Resolve finds a theme by name, looking in userDir before the bundled
// themes. An empty name means the default theme.
func Resolve(name, userDir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if userDir != "" {
		path := filepath.Join(userDir, name+".css")
		if _, err := os.Stat(path); err == nil {
			return NewTheme(name, path)
		}
	}

	if t, ok := NewEmbeddedTheme(name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// ProcessImports inlines @import statements, resolving paths against baseDir.
// Files that are not on disk fall back to bundled partials and themes. seen
// guards against import cycles and may be nil.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		sub := importRegex.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		importPath := sub[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}
		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		data, err := os.ReadFile(fullPath)
		if err == nil {
			return "/* imported: " + importPath + " */\n" +
				ProcessImports(string(data), filepath.Dir(fullPath), seen)
		}

		base := filepath.Base(importPath)
		if strings.HasPrefix(base, "_") {
			if partial, ok := GetEmbeddedPartial(base); ok {
				return "/* imported (embedded): " + importPath + " */\n" + partial
			}
		}
		if bundled, ok := GetEmbeddedTheme(strings.TrimSuffix(base, ".css")); ok {
			return "/* imported (embedded): " + importPath + " */\n" +
				ProcessImports(bundled, "", seen)
		}
		return "/* import failed: " + importPath + " - " + err.Error() + " */"
	})
}

// Reload rereads the theme from disk. It reports whether the CSS changed.
func (t *Theme) Reload() (bool, error) {
	if t.Embedded {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	processed := ProcessImports(string(css), filepath.Dir(t.Path), nil)
	changed := processed != t.CSS
	t.CSS = processed
	t.ModTime = info.ModTime()
	return changed, nil
}

// Info describes an available theme.
type Info struct {
	Name    string
	Path    string
	Bundled bool
}

// ListAvailableThemes lists bundled themes followed by user themes in
// userDir. A user file with a bundled name replaces the bundled entry.
func ListAvailableThemes(userDir string) ([]Info, error) {
	index := make(map[string]int)
	var themes []Info

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, Info{Name: name, Bundled: true})
	}

	if userDir == "" {
		return themes, nil
	}
	entries, err := os.ReadDir(userDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, fmt.Errorf("failed to read themes directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".css" {
			continue
		}
		info := Info{Name: strings.TrimSuffix(name, ".css"), Path: filepath.Join(userDir, name)}
		if i, ok := index[info.Name]; ok {
			themes[i] = info
			continue
		}
		index[info.Name] = len(themes)
		themes = append(themes, info)
	}
	return themes, nil
}
