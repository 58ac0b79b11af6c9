package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/hackathon-export/internal/testutil"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "default config",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name: "missing base url",
			config: Config{
				HackathonName: "grizzlython",
			},
			expectError: true,
		},
		{
			name: "missing hackathon name",
			config: Config{
				BaseURL: "https://solana.com/api",
			},
			expectError: true,
		},
		{
			name: "unparseable base url",
			config: Config{
				BaseURL:       "http://[::1",
				HackathonName: "grizzlython",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got nil")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c == nil {
				t.Error("Client is nil")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "https://solana.com/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HackathonName != "grizzlython" {
		t.Errorf("HackathonName = %q, want grizzlython", cfg.HackathonName)
	}
	if cfg.UserAgent == "" {
		t.Error("UserAgent should not be empty")
	}
	if cfg.Cache != nil {
		t.Error("Cache should be disabled by default")
	}
}

func TestPageURL(t *testing.T) {
	c := newTestClient(t, "https://solana.com/api/")

	tests := []struct {
		page int
		want string
	}{
		{0, "https://solana.com/api/hackathon/projects?page=0&hackathonName=grizzlython"},
		{35, "https://solana.com/api/hackathon/projects?page=35&hackathonName=grizzlython"},
	}

	for _, tt := range tests {
		if got := c.PageURL(tt.page); got != tt.want {
			t.Errorf("PageURL(%d) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestPageURL_EscapesHackathonName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HackathonName = "summer camp&co"
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := c.PageURL(1)
	if !strings.Contains(got, "hackathonName=summer+camp%26co") {
		t.Errorf("PageURL() = %q, hackathon name not escaped", got)
	}
}

func TestFetchPage_Success(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetPage(3, testutil.NewPageResponse(1200,
		testutil.ProjectJSON("alpha"),
		testutil.ProjectJSON("beta"),
	))

	c := newTestClient(t, mock.URL())
	page, err := c.FetchPage(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if len(page.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(page.Data))
	}
	if page.Data[0].Slug != "alpha" || page.Data[1].Slug != "beta" {
		t.Errorf("slugs = %q, %q; want alpha, beta", page.Data[0].Slug, page.Data[1].Slug)
	}
	if page.TotalCount != 1200 {
		t.Errorf("TotalCount = %d, want 1200", page.TotalCount)
	}

	if got := mock.PagesFetched(); len(got) != 1 || got[0] != 3 {
		t.Errorf("PagesFetched() = %v, want [3]", got)
	}
	if got := mock.Hackathons(); len(got) != 1 || got[0] != "grizzlython" {
		t.Errorf("Hackathons() = %v, want [grizzlython]", got)
	}
	if ua := mock.LastUserAgent(); ua != DefaultConfig().UserAgent {
		t.Errorf("User-Agent = %q, want %q", ua, DefaultConfig().UserAgent)
	}
}

func TestFetchPage_Errors(t *testing.T) {
	tests := []struct {
		name       string
		response   testutil.MockResponse
		wantDecode bool
		wantStatus int
	}{
		{
			name:       "malformed body",
			response:   testutil.NewMalformedResponse(),
			wantDecode: true,
		},
		{
			name: "missing required field",
			response: testutil.MockResponse{
				StatusCode: http.StatusOK,
				Body:       `{"data":[{"name":"no slug","banned":false,"reviewed":false,"seen":0,"hackathonName":"h","prizeTracks":[],"sponsoredPrizes":[]}],"totalCount":1}`,
			},
			wantDecode: true,
		},
		{
			name: "invalid utf-8",
			response: testutil.MockResponse{
				StatusCode: http.StatusOK,
				Body:       "{\"data\":[{\"slug\":\"a\xff\",\"name\":\"n\",\"banned\":false,\"reviewed\":false,\"seen\":0,\"hackathonName\":\"h\",\"prizeTracks\":[],\"sponsoredPrizes\":[]}],\"totalCount\":1}",
			},
			wantDecode: true,
		},
		{
			name:       "server error",
			response:   testutil.NewServerErrorResponse(),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "rate limited",
			response:   testutil.NewRateLimitResponse(),
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockAPI()
			defer mock.Close()
			mock.SetPage(2, tt.response)

			c := newTestClient(t, mock.URL())
			page, err := c.FetchPage(context.Background(), 2)
			if err == nil {
				t.Fatalf("Expected error, got page %+v", page)
			}

			if tt.wantDecode {
				var decodeErr *DecodeError
				if !errors.As(err, &decodeErr) {
					t.Fatalf("Expected DecodeError, got %T: %v", err, err)
				}
				if decodeErr.Page != 2 {
					t.Errorf("Page = %d, want 2", decodeErr.Page)
				}
				if !strings.Contains(err.Error(), "page 2") {
					t.Errorf("Error %q does not reference page 2", err.Error())
				}
				return
			}

			var transportErr *TransportError
			if !errors.As(err, &transportErr) {
				t.Fatalf("Expected TransportError, got %T: %v", err, err)
			}
			if transportErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", transportErr.StatusCode, tt.wantStatus)
			}
			if classOf(err) != ErrorClassStatus {
				t.Errorf("classOf() = %q, want %q", classOf(err), ErrorClassStatus)
			}
		})
	}
}

func TestFetchPage_NetworkError(t *testing.T) {
	mock := testutil.NewMockAPI()
	baseURL := mock.URL()
	mock.Close()

	c := newTestClient(t, baseURL)
	_, err := c.FetchPage(context.Background(), 0)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %T: %v", err, err)
	}
	if transportErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", transportErr.StatusCode)
	}
	if classOf(err) != ErrorClassTransport {
		t.Errorf("classOf() = %q, want %q", classOf(err), ErrorClassTransport)
	}
}

func TestFetchPage_ContextCancelled(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	resp := testutil.NewPageResponse(0)
	resp.Delay = 500 * time.Millisecond
	mock.SetPage(0, resp)

	c := newTestClient(t, mock.URL())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchPage(ctx, 0)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %T: %v", err, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestFetchPage_InvalidUTF8(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetPage(0, testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       "{\"data\":[],\"totalCount\":0,\"note\":\"\xff\"}",
	})

	c := newTestClient(t, mock.URL())
	_, err := c.FetchPage(context.Background(), 0)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("FetchPage() error = %v, want %v", err, ErrInvalidUTF8)
	}
}
