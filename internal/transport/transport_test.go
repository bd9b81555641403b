package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGetReturnsBodyAndStatus(t *testing.T) {
	var gotRequestID, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "graphs", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":[]}`))
	}))
	defer srv.Close()

	h := NewHTTP(HTTPConfig{Timeout: time.Second})
	resp, err := h.Get(WithRequestID(context.Background(), "req-1"), srv.URL+"/api/search?q=graphs")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"hits":[]}`, string(resp.Body))
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, "application/json", gotAccept)
}

func TestHTTPGetGeneratesRequestID(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	_, err := NewHTTP(HTTPConfig{}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, gotRequestID, 36)
}

func TestHTTPGetNonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"An error occurred while processing your search"}`))
	}))
	defer srv.Close()

	resp, err := NewHTTP(HTTPConfig{}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Contains(t, string(resp.Body), "detail")
}

func TestHTTPGetNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := NewHTTP(HTTPConfig{Timeout: time.Second}).Get(context.Background(), url)
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestHTTPGetHonoursContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := NewHTTP(HTTPConfig{Timeout: 5 * time.Second}).Get(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCachedServesRepeatedSuccess(t *testing.T) {
	var calls atomic.Int32
	inner := Func(func(ctx context.Context, url string) (*Response, error) {
		calls.Add(1)
		return &Response{StatusCode: http.StatusOK, Body: []byte(url)}, nil
	})

	c := NewCached(inner, time.Minute)
	for i := 0; i < 3; i++ {
		resp, err := c.Get(context.Background(), "http://x/api/search?q=a")
		require.NoError(t, err)
		assert.Equal(t, "http://x/api/search?q=a", string(resp.Body))
	}
	_, err := c.Get(context.Background(), "http://x/api/search?q=b")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestCachedSkipsFailures(t *testing.T) {
	var calls atomic.Int32
	inner := Func(func(ctx context.Context, url string) (*Response, error) {
		calls.Add(1)
		return &Response{StatusCode: http.StatusBadGateway}, nil
	})

	c := NewCached(inner, time.Minute)
	_, _ = c.Get(context.Background(), "u")
	_, _ = c.Get(context.Background(), "u")
	assert.Equal(t, int32(2), calls.Load())
}

func TestNewCachedDisabledReturnsInner(t *testing.T) {
	inner := Func(func(ctx context.Context, url string) (*Response, error) { return nil, nil })
	_, isCached := NewCached(inner, 0).(*Cached)
	assert.False(t, isCached)
}
