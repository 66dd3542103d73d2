package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"notemark/logger"
)

const (
	DefaultMetadataTimeout = 5 * time.Second
	DefaultUserAgent       = "Mozilla/5.0 (compatible; NotesBookmarksBot/1.0)"
	DefaultMaxBody         = 2 << 20
	MaxTitleLength         = 300
)

var MetadataResolutions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "metadata_resolutions_total",
		Help: "Bookmark title resolutions by outcome",
	},
	[]string{"outcome"}, // resolved, empty, failed, cached
)

type ResolverOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxBody   int64
	Client    *http.Client
	Cache     TitleCache
}

// Resolver derives a page title for a bookmark URL. It never returns an
// error: every failure becomes an empty title.
type Resolver struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
	cache     TitleCache
}

func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{
		client:    opts.Client,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBody,
		cache:     opts.Cache,
	}
	if r.timeout <= 0 {
		r.timeout = DefaultMetadataTimeout
	}
	if r.userAgent == "" {
		r.userAgent = DefaultUserAgent
	}
	if r.maxBody <= 0 {
		r.maxBody = DefaultMaxBody
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: r.timeout}
	}
	return r
}

// FetchURL is the address actually requested for rawURL.
func FetchURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "http") {
		return rawURL
	}
	return "https://" + rawURL
}

func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	target := FetchURL(rawURL)

	// Only the timeout bounds the fetch; the caller going away does not.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if title, ok := r.cached(ctx, target); ok {
		MetadataResolutions.WithLabelValues("cached").Inc()
		return title
	}

	title, err := r.fetchTitle(ctx, target)
	if err != nil {
		MetadataResolutions.WithLabelValues("failed").Inc()
		logger.Warn(ctx, "failed to fetch metadata",
			slog.String("url", rawURL), logger.Err(err))
		return ""
	}
	if title == "" {
		MetadataResolutions.WithLabelValues("empty").Inc()
		return ""
	}

	MetadataResolutions.WithLabelValues("resolved").Inc()
	r.store(ctx, target, title)
	return title
}

func (r *Resolver) fetchTitle(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("get %s: unexpected status %d", target, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, r.maxBody))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", target, err)
	}

	return ExtractTitle(doc), nil
}

// ExtractTitle prefers og:title, then <title>, trimmed and capped at
// MaxTitleLength characters.
func ExtractTitle(doc *goquery.Document) string {
	title := doc.Find(`meta[property="og:title"]`).First().AttrOr("content", "")
	if title == "" {
		title = doc.Find("title").First().Text()
	}
	return truncate(strings.TrimSpace(title), MaxTitleLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (r *Resolver) cached(ctx context.Context, target string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	title, ok, err := r.cache.GetTitle(ctx, target)
	if err != nil {
		logger.Warn(ctx, "title cache lookup failed", slog.String("url", target), logger.Err(err))
		return "", false
	}
	return title, ok && title != ""
}

func (r *Resolver) store(ctx context.Context, target, title string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetTitle(ctx, target, title); err != nil {
		logger.Warn(ctx, "title cache store failed", slog.String("url", target), logger.Err(err))
	}
}
