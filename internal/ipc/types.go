package ipc

// CommandResult carries the outcome of a state-changing command. OK and
// Error are mutually exclusive; Error holds the message the CLI prints
// verbatim.
type CommandResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ShowRequest asks the daemon to show the launcher window.
type ShowRequest struct{}

// ShowResponse reports the outcome of a show command.
type ShowResponse struct {
	CommandResult
}

// HideRequest asks the daemon to hide the launcher window.
type HideRequest struct{}

// HideResponse reports the outcome of a hide command.
type HideResponse struct {
	CommandResult
}

// ToggleRequest flips launcher visibility.
type ToggleRequest struct{}

// ToggleResponse reports the outcome of a toggle command.
type ToggleResponse struct {
	CommandResult
}

// QuitRequest stops the daemon.
type QuitRequest struct{}

// QuitResponse reports the outcome of a quit command.
type QuitResponse struct {
	CommandResult
}

// ReloadRequest restarts the daemon process.
type ReloadRequest struct{}

// ReloadResponse reports the outcome of a reload command. The daemon
// answers before re-executing, so a successful reply does not mean the
// new process is up yet.
type ReloadResponse struct {
	CommandResult
}

// SetThemeRequest switches the active theme.
type SetThemeRequest struct {
	Name string `json:"name"`
}

// SetThemeResponse reports the outcome of a theme change.
type SetThemeResponse struct {
	CommandResult
}

// ThemeDescriptor is one entry of the theme catalogue.
type ThemeDescriptor struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Active bool   `json:"active"`
}

// ListThemesRequest asks for the theme catalogue.
type ListThemesRequest struct{}

// ListThemesResponse carries the theme catalogue.
type ListThemesResponse struct {
	Themes []ThemeDescriptor `json:"themes"`
}

// CurrentThemeRequest asks for the active theme name.
type CurrentThemeRequest struct{}

// CurrentThemeResponse carries the active theme name.
type CurrentThemeResponse struct {
	Name string `json:"name"`
}

// AppEntry is one launchable application from the desktop-entry index.
type AppEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	Exec    string `json:"exec"`
	Icon    string `json:"icon,omitempty"`
}

// SearchAppsRequest queries the application index. An empty query
// returns everything up to Limit.
type SearchAppsRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchAppsResponse carries ranked application matches.
type SearchAppsResponse struct {
	Entries []AppEntry `json:"entries"`
}
