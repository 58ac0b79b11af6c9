// Package testutil provides testing utilities for the projects export.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// ProjectsPath is the listing path served by MockAPI.
const ProjectsPath = "/hackathon/projects"

// MockResponse defines the behavior for one mocked page.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAPI is a configurable mock of the hackathon projects API.
// Pages without a configured response answer with an empty page.
type MockAPI struct {
	server *httptest.Server
	mu     sync.RWMutex
	pages  map[int]MockResponse

	// Tracking
	requestCount  int
	pagesFetched  []int
	hackathons    []string
	lastUserAgent string
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		pages: make(map[int]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

func (m *MockAPI) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != ProjectsPath {
		http.NotFound(w, r)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.requestCount++
	m.pagesFetched = append(m.pagesFetched, page)
	m.hackathons = append(m.hackathons, r.URL.Query().Get("hackathonName"))
	m.lastUserAgent = r.Header.Get("User-Agent")
	resp, exists := m.pages[page]
	m.mu.Unlock()

	if !exists {
		resp = NewPageResponse(0)
	}

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}

	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}

	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// URL returns the mock server URL, usable as a client BaseURL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// SetPage configures the response for one page.
func (m *MockAPI) SetPage(page int, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[page] = resp
}

// RequestCount returns the number of listing requests served.
func (m *MockAPI) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// PagesFetched returns the requested page numbers in arrival order.
func (m *MockAPI) PagesFetched() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.pagesFetched...)
}

// Hackathons returns the hackathonName query values in arrival order.
func (m *MockAPI) Hackathons() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.hackathons...)
}

// LastUserAgent returns the User-Agent of the latest request.
func (m *MockAPI) LastUserAgent() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUserAgent
}

// NewPageResponse creates a 200 response holding the given project objects.
// Each project is a raw JSON object string.
func NewPageResponse(totalCount int, projects ...string) MockResponse {
	data := make([]json.RawMessage, 0, len(projects))
	for _, p := range projects {
		data = append(data, json.RawMessage(p))
	}

	body, err := json.Marshal(map[string]any{
		"data":       data,
		"totalCount": totalCount,
	})
	if err != nil {
		panic(fmt.Sprintf("testutil: invalid project json: %v", err))
	}

	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewMalformedResponse creates a 200 response whose body is not a page.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data": [{"slug": "broken"`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "Rate limit exceeded"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
			"Retry-After":  "1",
		},
	}
}

// ProjectJSON renders a minimal valid project object with the given slug.
func ProjectJSON(slug string) string {
	return fmt.Sprintf(`{"slug":%q,"name":%q,"banned":false,"reviewed":false,"seen":0,"hackathonName":"grizzlython","prizeTracks":[],"sponsoredPrizes":[]}`,
		slug, "Project "+slug)
}
