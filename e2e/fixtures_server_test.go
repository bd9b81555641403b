//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// Hit is a single search hit served by the fake search service
type Hit struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Platform    string   `json:"platform"`
	Difficulty  string   `json:"difficulty"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
}

// FakeSearchServer answers GET /api/search with canned hits and records every query
type FakeSearchServer struct {
	srv *httptest.Server

	mu      sync.Mutex
	hits    []Hit
	status  int
	queries []url.Values
}

// ServerOption configures the fake search server
type ServerOption func(*FakeSearchServer)

// WithHits sets the hits returned for every request
func WithHits(hits ...Hit) ServerOption {
	return func(s *FakeSearchServer) {
		s.hits = hits
	}
}

// WithStatus makes the server answer with the given HTTP status
func WithStatus(code int) ServerOption {
	return func(s *FakeSearchServer) {
		s.status = code
	}
}

// StartSearchServer starts a fake search service and points the app at it
func (tf *TUITestFramework) StartSearchServer(options ...ServerOption) *FakeSearchServer {
	s := &FakeSearchServer{status: http.StatusOK}
	for _, opt := range options {
		opt(s)
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	tf.server = s
	return s
}

func (s *FakeSearchServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/search" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	s.queries = append(s.queries, r.URL.Query())
	status := s.status
	hits := s.filtered(r.URL.Query())
	s.mu.Unlock()

	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"hits": hits})
}

// filtered applies the difficulty filter the way the real service does
func (s *FakeSearchServer) filtered(q url.Values) []Hit {
	difficulty := q.Get("difficulty")
	out := make([]Hit, 0, len(s.hits))
	for _, h := range s.hits {
		if difficulty != "" && !strings.EqualFold(h.Difficulty, difficulty) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// URL returns the base URL of the server
func (s *FakeSearchServer) URL() string {
	return s.srv.URL
}

// Queries returns a copy of the recorded query parameters
func (s *FakeSearchServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.Values, len(s.queries))
	copy(out, s.queries)
	return out
}

// LastQuery returns the most recent query parameters, or nil
func (s *FakeSearchServer) LastQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return nil
	}
	return s.queries[len(s.queries)-1]
}

// Close shuts the server down
func (s *FakeSearchServer) Close() {
	s.srv.Close()
}

func sampleHits() []Hit {
	return []Hit{
		{ID: 1, Title: "Two Sum", Platform: "LeetCode", Difficulty: "Easy", URL: "https://example.com/two-sum", Tags: []string{"Arrays", "Hash Table"}},
		{ID: 2, Title: "Longest Palindromic Substring", Platform: "LeetCode", Difficulty: "Medium", URL: "https://example.com/lps", Tags: []string{"Strings"}},
		{ID: 3, Title: "Median of Two Sorted Arrays", Platform: "LeetCode", Difficulty: "Hard", URL: "https://example.com/median", Tags: []string{"Arrays", "Binary Search"}},
	}
}
