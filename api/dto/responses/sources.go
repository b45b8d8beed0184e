// ABOUTME: Response DTOs for source selection endpoints
// ABOUTME: Mirror the selection list state shown to users

package responses

// SourceResponse is one entry of the source list
type SourceResponse struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Selected bool   `json:"selected"`
}

// SourcesResponse is the (possibly filtered) source list
type SourcesResponse struct {
	Sources []SourceResponse `json:"sources"`
	// Valid reports whether exactly one source in the full list is selected
	Valid bool `json:"valid"`
}

// ValidResponse reports whether the current selection can be saved
type ValidResponse struct {
	Valid bool `json:"valid"`
}

// SavedSourceResponse echoes the persisted source
type SavedSourceResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
