// ABOUTME: Article domain model is the readable form of a feed item's page
// ABOUTME: Produced when the user asks for an item's detail

package domain

// Article is the main content extracted from a feed item's link
type Article struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Image    string `json:"image,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`

	// Text is the plain-text body
	Text string `json:"text"`

	// Markdown is the body converted to Markdown with a title and metadata header
	Markdown string `json:"markdown"`
}
