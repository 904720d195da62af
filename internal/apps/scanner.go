package apps

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one launchable desktop application.
type Entry struct {
	// ID is the desktop file identifier, e.g. "org.mozilla.firefox".
	ID       string
	Name     string
	Comment  string
	Exec     string
	Icon     string
	Terminal bool
	Keywords []string
}

// SearchDirs returns the application directories to scan, in precedence
// order: XDG_DATA_HOME first, then each entry of XDG_DATA_DIRS, then any
// configured extras.
func SearchDirs(extra []string) []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if strings.TrimSpace(dataHome) == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if strings.TrimSpace(dataDirs) == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range filepath.SplitList(dataDirs) {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}

	dirs = append(dirs, extra...)
	return dirs
}

// Scan parses every .desktop file under the given directories. Earlier
// directories win on ID collisions, matching desktop-entry precedence.
// Directories that do not exist are skipped silently.
func Scan(dirs []string) []Entry {
	seen := map[string]struct{}{}
	var entries []Entry

	for _, dir := range dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".desktop") {
				continue
			}
			id := strings.TrimSuffix(file.Name(), ".desktop")
			if _, dup := seen[id]; dup {
				continue
			}
			entry, ok := parseDesktopFile(filepath.Join(dir, file.Name()), id)
			if !ok {
				continue
			}
			seen[id] = struct{}{}
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries
}

func parseDesktopFile(path, id string) (Entry, bool) {
	file, err := os.Open(path)
	if err != nil {
		return Entry{}, false
	}
	defer file.Close()

	entry := Entry{ID: id}
	inDesktopEntry := false
	hidden := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inDesktopEntry = line == "[Desktop Entry]"
			continue
		}
		if !inDesktopEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Type":
			if value != "Application" {
				return Entry{}, false
			}
		case "Name":
			if entry.Name == "" {
				entry.Name = value
			}
		case "Comment":
			if entry.Comment == "" {
				entry.Comment = value
			}
		case "Exec":
			entry.Exec = cleanExec(value)
		case "Icon":
			entry.Icon = value
		case "Terminal":
			entry.Terminal = strings.EqualFold(value, "true")
		case "Keywords":
			entry.Keywords = splitList(value)
		case "NoDisplay", "Hidden":
			if strings.EqualFold(value, "true") {
				hidden = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, false
	}
	if hidden || entry.Name == "" || entry.Exec == "" {
		return Entry{}, false
	}
	return entry, true
}

// cleanExec strips desktop-entry field codes (%f, %u, %U, ...) that only
// make sense when launching with file arguments.
func cleanExec(exec string) string {
	fields := strings.Fields(exec)
	cleaned := fields[:0]
	for _, field := range fields {
		if len(field) == 2 && field[0] == '%' {
			continue
		}
		cleaned = append(cleaned, field)
	}
	return strings.Join(cleaned, " ")
}

func splitList(value string) []string {
	parts := strings.Split(value, ";")
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
