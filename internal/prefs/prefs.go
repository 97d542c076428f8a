// Package prefs persists console preferences in ~/.config/polar/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hielopolar/polar/internal/asset"
)

// Prefs holds user preferences for the console.
type Prefs struct {
	Theme string `toml:"theme"`
	// StatusFilter is a wire status value; empty shows every asset.
	StatusFilter string `toml:"status_filter,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/polar/prefs.toml"
	defaultTheme     = "Glaciar"
)

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads the preferences at path, or at DefaultPath when path is blank.
// A missing file yields Defaults and no error. An unreadable or corrupt file
// yields Defaults and the error, so the console can still start.
func Load(path string) (Prefs, error) {
	file, err := locate(path)
	if err != nil {
		return Defaults(), err
	}
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs %s: %w", file, err)
	}
	return p.clean(), nil
}

// Save writes p to path, creating the parent directory when needed.
func Save(path string, p Prefs) error {
	file, err := locate(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(p.clean())
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// clean fills a blank theme and maps the filter to a wire status. Status
// labels and aliases are accepted; anything else clears the filter.
func (p Prefs) clean() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	if st, err := asset.ParseStatus(p.StatusFilter); err == nil && strings.TrimSpace(p.StatusFilter) != "" {
		p.StatusFilter = string(st)
	} else {
		p.StatusFilter = ""
	}
	return p
}

// locate expands a leading ~ and makes the path absolute.
func locate(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("prefs path %s: %w", path, err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
