// ABOUTME: Request DTOs for feed-related API endpoints
// ABOUTME: Provides validation and default values for incoming requests

package requests

// DefaultItemsPerPage is used when a request leaves the page size unset
const DefaultItemsPerPage = 50

// LoadFeedRequest represents the optional body of a feed load
type LoadFeedRequest struct {
	// Page is the page number for pagination (1-based)
	Page int `json:"page,omitempty" minimum:"1" default:"1" doc:"Page number (1-based)"`

	// ItemsPerPage is the number of items per page
	ItemsPerPage int `json:"items_per_page,omitempty" minimum:"1" maximum:"100" default:"50" doc:"Number of items per page"`
}

// ApplyDefaults sets default values for optional fields
func (r *LoadFeedRequest) ApplyDefaults() {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.ItemsPerPage == 0 {
		r.ItemsPerPage = DefaultItemsPerPage
	}
}
