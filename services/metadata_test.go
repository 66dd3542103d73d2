package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTitleCache struct {
	mu     sync.Mutex
	titles map[string]string
}

func (c *memoryTitleCache) GetTitle(_ context.Context, url string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	title, ok := c.titles[url]
	return title, ok, nil
}

func (c *memoryTitleCache) SetTitle(_ context.Context, url, title string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.titles == nil {
		c.titles = map[string]string{}
	}
	c.titles[url] = title
	return nil
}

type failingTitleCache struct{}

func (failingTitleCache) GetTitle(context.Context, string) (string, bool, error) {
	return "", false, fmt.Errorf("connection refused")
}

func (failingTitleCache) SetTitle(context.Context, string, string) error {
	return fmt.Errorf("connection refused")
}

func htmlServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "open graph wins",
			status: http.StatusOK,
			body:   `<html><head><title>Plain</title><meta property="og:title" content=" OG Title "></head></html>`,
			want:   "OG Title",
		},
		{
			name:   "title fallback",
			status: http.StatusOK,
			body:   `<html><head><title>  Go Packages  </title></head><body></body></html>`,
			want:   "Go Packages",
		},
		{
			name:   "empty og falls back",
			status: http.StatusOK,
			body:   `<html><head><meta property="og:title" content=""><title>Doc</title></head></html>`,
			want:   "Doc",
		},
		{
			name:   "nothing",
			status: http.StatusOK,
			body:   `<html><body><h1>No title</h1></body></html>`,
			want:   "",
		},
		{
			name:   "non 2xx",
			status: http.StatusNotFound,
			body:   `<html><head><title>Not Found</title></head></html>`,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := htmlServer(t, tt.status, tt.body)
			r := NewResolver(ResolverOptions{})
			assert.Equal(t, tt.want, r.Resolve(context.Background(), srv.URL))
		})
	}
}

func TestResolveTruncates(t *testing.T) {
	long := strings.Repeat("é", MaxTitleLength+50)
	srv, _ := htmlServer(t, http.StatusOK, "<title>"+long+"</title>")

	title := NewResolver(ResolverOptions{}).Resolve(context.Background(), srv.URL)
	assert.Equal(t, MaxTitleLength, len([]rune(title)))
}

func TestResolveTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		fmt.Fprint(w, "<title>Too late</title>")
	}))
	defer srv.Close()

	r := NewResolver(ResolverOptions{Timeout: 50 * time.Millisecond})

	start := time.Now()
	title := r.Resolve(context.Background(), srv.URL)
	assert.Equal(t, "", title)
	assert.Less(t, time.Since(start), time.Second)
}

func TestResolveUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	assert.Equal(t, "", NewResolver(ResolverOptions{}).Resolve(context.Background(), addr))
}

func TestResolveIgnoresCallerCancellation(t *testing.T) {
	srv, _ := htmlServer(t, http.StatusOK, "<title>Still here</title>")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "Still here", NewResolver(ResolverOptions{}).Resolve(ctx, srv.URL))
}

func TestResolveCache(t *testing.T) {
	srv, hits := htmlServer(t, http.StatusOK, "<title>Cached Title</title>")
	cache := &memoryTitleCache{}
	r := NewResolver(ResolverOptions{Cache: cache})

	assert.Equal(t, "Cached Title", r.Resolve(context.Background(), srv.URL))
	assert.Equal(t, "Cached Title", r.Resolve(context.Background(), srv.URL))
	assert.Equal(t, int32(1), hits.Load())
}

func TestResolveCacheFailureIgnored(t *testing.T) {
	srv, hits := htmlServer(t, http.StatusOK, "<title>Live</title>")
	r := NewResolver(ResolverOptions{Cache: failingTitleCache{}})

	assert.Equal(t, "Live", r.Resolve(context.Background(), srv.URL))
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchURL(t *testing.T) {
	assert.Equal(t, "https://example.com", FetchURL("example.com"))
	assert.Equal(t, "http://example.com", FetchURL("http://example.com"))
	assert.Equal(t, "https://example.com/a", FetchURL("https://example.com/a"))
}

func TestExtractTitle(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><head><title>First</title></head><body><svg><title>Icon</title></svg></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "First", ExtractTitle(doc))
}
