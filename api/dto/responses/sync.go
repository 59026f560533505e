package responses

// Source is a subscribed feed
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// SyncSnapshot is the server's copy of the synchronized state
type SyncSnapshot struct {
	ReadArticles map[string]int64 `json:"readArticles"`
	LastVisit    *int64           `json:"lastVisit" nullable:"true"`
	Sources      []Source         `json:"sources"`
}

// OKResponse acknowledges a write
type OKResponse struct {
	OK bool `json:"ok"`
}
