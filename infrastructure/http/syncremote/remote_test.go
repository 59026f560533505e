package syncremote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/errors"
	"feeds-app-api/infrastructure/http/standard"
)

func TestRemote_Pull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"readArticles":{"a":1},"lastVisit":5,"sources":null}`))
	}))
	defer server.Close()

	remote := New(standard.NewStandardHTTPClient(time.Second), server.URL+"/api/")
	snap, err := remote.Pull(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ReadArticles{"a": 1}, snap.ReadArticles)
	require.NotNil(t, snap.LastVisit)
	assert.Equal(t, int64(5), *snap.LastVisit)
	assert.Nil(t, snap.Sources)
}

func TestRemote_PullEmptyServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"readArticles":{},"lastVisit":null,"sources":null}`))
	}))
	defer server.Close()

	snap, err := New(standard.NewStandardHTTPClient(time.Second), server.URL).Pull(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap.ReadArticles)
	assert.Nil(t, snap.LastVisit)
}

func TestRemote_PushSendsSnapshot(t *testing.T) {
	var got map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	visit := int64(9)
	err := New(standard.NewStandardHTTPClient(time.Second), server.URL).Push(context.Background(), domain.Snapshot{
		LastVisit: &visit,
		Sources:   []domain.Source{{Name: "A", URL: "a", Enabled: true}},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{}`, string(got["readArticles"]))
	assert.JSONEq(t, `9`, string(got["lastVisit"]))
	assert.JSONEq(t, `[{"name":"A","url":"a","enabled":true}]`, string(got["sources"]))
}

func TestRemote_PushOmitsMissingFields(t *testing.T) {
	var got map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	err := New(standard.NewStandardHTTPClient(time.Second), server.URL).Push(context.Background(), domain.Snapshot{
		ReadArticles: domain.ReadArticles{"a": 1},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"a":1}`, string(got["readArticles"]))
	assert.NotContains(t, got, "lastVisit")
	assert.NotContains(t, got, "sources")
}

func TestRemote_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"store unavailable"}`))
	}))
	defer server.Close()

	_, err := New(standard.NewStandardHTTPClient(time.Second), server.URL).Pull(context.Background())

	var apiErr *errors.ExternalAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "store unavailable", apiErr.Message)
}
