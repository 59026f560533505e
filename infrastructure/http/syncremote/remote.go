// ABOUTME: Sync remote that talks to the API's /sync endpoint over HTTP
// ABOUTME: Pull reads the server snapshot, Push writes the merged snapshot back

package syncremote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// Remote implements reconcile.Remote against a running API
type Remote struct {
	client   interfaces.HTTPClient
	endpoint string
}

// New creates a remote. baseURL is the API root, e.g. https://feeds.app/api.
func New(client interfaces.HTTPClient, baseURL string) *Remote {
	return &Remote{client: client, endpoint: strings.TrimRight(baseURL, "/") + "/sync"}
}

// Pull fetches the server snapshot
func (r *Remote) Pull(ctx context.Context) (domain.Snapshot, error) {
	resp, err := r.client.Get(ctx, r.endpoint)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer resp.Body().Close()

	if err := checkStatus(resp); err != nil {
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	if err := json.NewDecoder(resp.Body()).Decode(&snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode sync snapshot: %w", err)
	}
	if snap.ReadArticles == nil {
		snap.ReadArticles = domain.ReadArticles{}
	}
	return snap, nil
}

// pushBody leaves out fields the snapshot has no value for, so the server keeps its own
type pushBody struct {
	ReadArticles domain.ReadArticles `json:"readArticles"`
	LastVisit    *int64              `json:"lastVisit,omitempty"`
	Sources      []domain.Source     `json:"sources,omitempty"`
}

// Push writes snap to the server
func (r *Remote) Push(ctx context.Context, snap domain.Snapshot) error {
	payload := pushBody{ReadArticles: snap.ReadArticles, LastVisit: snap.LastVisit, Sources: snap.Sources}
	if payload.ReadArticles == nil {
		payload.ReadArticles = domain.ReadArticles{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sync snapshot: %w", err)
	}

	resp, err := r.client.Put(ctx, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body().Close()

	return checkStatus(resp)
}

func checkStatus(resp interfaces.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body(), 64<<10))
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &errors.ExternalAPIError{StatusCode: resp.StatusCode(), Message: msg, API: "sync"}
}
