// ABOUTME: Request DTOs for source selection endpoints
// ABOUTME: Field constraints are enforced by huma before handlers run

package requests

// ToggleSourceRequest identifies the source to toggle by URL
type ToggleSourceRequest struct {
	URL string `json:"url" minLength:"1" doc:"URL of a listed source"`
}

// AddSourceRequest describes a user supplied feed
type AddSourceRequest struct {
	Title string `json:"title" minLength:"1" maxLength:"200" doc:"Display title"`
	URL   string `json:"url" minLength:"1" maxLength:"2048" doc:"Absolute http(s) feed URL"`
}
