package standard

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeds-app-api/core/errors"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// recordSleeps replaces the client's sleep with one that records durations
func recordSleeps(c *StandardHTTPClient) *[]time.Duration {
	var waits []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return &waits
}

func okResponse(r *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/plain"}},
		Body:       io.NopCloser(strings.NewReader("ok")),
		Request:    r,
	}
}

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)
	require.NotNil(t, client)
	assert.Equal(t, 10*time.Second, client.client.Timeout)
	assert.Equal(t, DefaultUserAgent, client.headers["User-Agent"])
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response"))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "text/plain", resp.Header("Content-Type"))
	assert.Equal(t, "test response", string(body))
}

func TestStandardHTTPClient_BrowserHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := NewBrowserClient(5*time.Second, nil).Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Contains(t, got.Get("User-Agent"), "Mozilla/5.0")
	assert.Contains(t, got.Get("Accept"), "text/html")
	assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
	assert.Equal(t, "no-cache", got.Get("Cache-Control"))
	assert.Equal(t, "no-cache", got.Get("Pragma"))
}

func TestStandardHTTPClient_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := NewStandardHTTPClient(5*time.Second).Get(context.Background(), server.URL+"/old")
	require.NoError(t, err)
	defer resp.Body().Close()
	body, _ := io.ReadAll(resp.Body())
	assert.Equal(t, "moved", string(body))
}

func TestStandardHTTPClient_DoesNotRetryErrorStatus(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(Options{Timeout: 5 * time.Second, Retry: RetryPolicy{MaxRetries: 2, Backoff: time.Second}})
	waits := recordSleeps(client)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *waits)
}

func TestStandardHTTPClient_RetriesTransportErrorsWithLinearBackoff(t *testing.T) {
	attempts := 0
	transport := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return nil, &net.OpError{Op: "dial", Net: "tcp", Err: stderrors.New("connection refused")}
		}
		return okResponse(r), nil
	})
	client := New(Options{Transport: transport, Retry: RetryPolicy{MaxRetries: 2, Backoff: time.Second}})
	waits := recordSleeps(client)

	resp, err := client.Get(context.Background(), "http://feeds.test/rss")
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestStandardHTTPClient_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	transport := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: stderrors.New("connection refused")}
	})
	client := New(Options{Transport: transport, Retry: RetryPolicy{MaxRetries: 2, Backoff: time.Millisecond}})
	recordSleeps(client)

	_, err := client.Get(context.Background(), "http://feeds.test/rss")

	var fetchErr *errors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, errors.FetchTransport, fetchErr.Kind)
	assert.Equal(t, 3, attempts)
}

func TestStandardHTTPClient_DoesNotRetryRequestErrors(t *testing.T) {
	client := New(Options{Retry: RetryPolicy{MaxRetries: 2, Backoff: time.Millisecond}})
	waits := recordSleeps(client)

	_, err := client.Get(context.Background(), "ftp://feeds.test/rss")

	var fetchErr *errors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, errors.FetchRequest, fetchErr.Kind)
	assert.Empty(t, *waits)
}

func TestStandardHTTPClient_TimeoutIsClassified(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := New(Options{Timeout: 50 * time.Millisecond})

	_, err := client.Get(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
}

func TestStandardHTTPClient_PutReplaysBody(t *testing.T) {
	var bodies []string
	attempts := 0
	transport := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if attempts == 1 {
			return nil, &net.OpError{Op: "read", Net: "tcp", Err: stderrors.New("connection reset")}
		}
		return okResponse(r), nil
	})
	client := New(Options{Transport: transport, Retry: RetryPolicy{MaxRetries: 1}})
	recordSleeps(client)

	resp, err := client.Put(context.Background(), "http://sync.test/sync", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, []string{`{"a":1}`, `{"a":1}`}, bodies)
}
