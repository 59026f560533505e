// ABOUTME: Response DTOs for the extraction endpoint
// ABOUTME: Absent text, title and error are encoded as JSON null

package responses

// ExtractResponse is the result of one extraction
type ExtractResponse struct {
	Success     bool    `json:"success"`
	Type        string  `json:"type" enum:"article,youtube,bluesky,podcast"`
	Text        *string `json:"text"`
	Title       *string `json:"title"`
	Error       *string `json:"error"`
	FallbackURL string  `json:"fallbackUrl,omitempty"`
}
