package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed themes/*.toml
var bundledThemes embed.FS

// Theme describes the launcher's visual palette.
type Theme struct {
	Name       string  `toml:"name"`
	Background string  `toml:"background"`
	Foreground string  `toml:"foreground"`
	Accent     string  `toml:"accent"`
	Selection  string  `toml:"selection"`
	Border     string  `toml:"border"`
	Opacity    float64 `toml:"opacity"`
	Font       string  `toml:"font"`
}

// ThemeSource distinguishes bundled themes from user-provided ones.
type ThemeSource string

const (
	ThemeBundled ThemeSource = "bundled"
	ThemeUser    ThemeSource = "user"
)

// ThemeInfo pairs a theme name with where it came from.
type ThemeInfo struct {
	Name   string
	Source ThemeSource
}

// DefaultTheme is defined in code rather than a file so it is always
// available, even with a broken themes directory.
func DefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",
		Accent:     "#89b4fa",
		Selection:  "#313244",
		Border:     "#45475a",
		Opacity:    0.92,
		Font:       "sans-serif",
	}
}

func userThemesDir() (string, error) {
	base, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(base), "themes"), nil
}

// LoadTheme resolves a theme by name: the built-in default first, then
// bundled themes, then user themes. Returns an error wrapping
// ErrThemeNotFound when no source has it.
func LoadTheme(name string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "default" {
		theme := DefaultTheme()
		return &theme, nil
	}

	if data, err := bundledThemes.ReadFile("themes/" + name + ".toml"); err == nil {
		theme, err := parseTheme(name, data)
		if err == nil {
			return theme, nil
		}
	}

	dir, err := userThemesDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name+".toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
		}
		return nil, fmt.Errorf("read theme %s: %w", name, err)
	}
	return parseTheme(name, data)
}

func parseTheme(name string, data []byte) (*Theme, error) {
	var theme Theme
	if err := toml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", name, err)
	}
	// The file name is authoritative over any name key inside the file.
	theme.Name = name
	if theme.Opacity <= 0 || theme.Opacity > 1 {
		theme.Opacity = 1
	}
	return &theme, nil
}

// ListThemes returns every available theme with its source, sorted by
// name. User themes never shadow bundled names in the listing.
func ListThemes() []ThemeInfo {
	seen := map[string]struct{}{"default": {}}
	themes := []ThemeInfo{{Name: "default", Source: ThemeBundled}}

	if entries, err := bundledThemes.ReadDir("themes"); err == nil {
		for _, entry := range entries {
			name, ok := strings.CutSuffix(entry.Name(), ".toml")
			if !ok {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			themes = append(themes, ThemeInfo{Name: name, Source: ThemeBundled})
		}
	}

	if dir, err := userThemesDir(); err == nil {
		if entries, err := os.ReadDir(dir); err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name, ok := strings.CutSuffix(entry.Name(), ".toml")
				if !ok {
					continue
				}
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}
				themes = append(themes, ThemeInfo{Name: name, Source: ThemeUser})
			}
		}
	}

	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes
}
