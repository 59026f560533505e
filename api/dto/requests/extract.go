// ABOUTME: Request DTOs for the extraction endpoint
// ABOUTME: Every field is optional at the schema level so the handler can report a missing URL itself

package requests

// ExtractRequest asks for the plain text behind a content URL
type ExtractRequest struct {
	URL    string `json:"url,omitempty" example:"https://example.com/post" doc:"URL of the article, video, post or episode"`
	Source string `json:"source,omitempty" example:"Latent Space Podcast" doc:"Name of the feed the URL came from; used as a classification hint"`
	Title  string `json:"title,omitempty" doc:"Title known to the caller, used when the page has none"`
}
