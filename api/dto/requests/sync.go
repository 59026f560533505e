// ABOUTME: Request DTOs for the sync endpoint
// ABOUTME: Absent fields are left untouched on the server

package requests

import "feeds-app-api/api/dto/responses"

// SyncUpdateRequest carries the snapshot fields a client wants stored
type SyncUpdateRequest struct {
	ReadArticles map[string]int64   `json:"readArticles,omitempty" doc:"Article id to epoch milliseconds it was marked read"`
	LastVisit    *int64             `json:"lastVisit,omitempty" nullable:"true" doc:"Epoch milliseconds of the last visit"`
	Sources      []responses.Source `json:"sources,omitempty" doc:"Subscribed feeds"`
}
