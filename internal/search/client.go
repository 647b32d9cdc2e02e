package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/agenthands/veracity/internal/cache"
	"github.com/agenthands/veracity/internal/core/model"
	"github.com/agenthands/veracity/internal/quota"
)

// maxResultsPerRequest is the hard cap Google Custom Search puts on a single
// request.
const maxResultsPerRequest = 10

// sourceName tags every normalized hit with the provider it came from.
const sourceName = "google_custom_search"

// Mode separates the engine's single-query path from the concurrent batch
// path in cache keys. The two namespaces never share entries, matching the
// state files written by earlier deployments.
type Mode string

const (
	ModeSync  Mode = "sync"
	ModeAsync Mode = "async"
)

// Options tunes the client beyond the required credentials.
type Options struct {
	// Timeout bounds each HTTP round trip. Zero means 30 seconds.
	Timeout time.Duration
	// RetryBackoff is the pause before the single retry of a transient
	// failure. Zero means 1.5 seconds.
	RetryBackoff time.Duration
	// QPS throttles outbound requests; Google enforces a per-minute rate on
	// top of the daily quota. Zero disables throttling.
	QPS float64
	// Endpoint overrides the API endpoint. Tests point it at a stub server.
	Endpoint string
}

// Client issues Google Custom Search requests with daily-quota enforcement,
// same-day result caching and a single retry on transient provider failures.
// Every failure degrades to an empty result set: an exhausted quota or a
// flaky provider must never stall the verification pipeline.
type Client struct {
	svc     *customsearch.Service
	cx      string
	quota   *quota.Manager
	cache   *cache.ResultCache
	limiter *rate.Limiter

	timeout time.Duration
	backoff time.Duration
}

// NewClient constructs a search client. Both credentials are required; this
// is the only place the retrieval stack refuses to start.
func NewClient(ctx context.Context, apiKey, engineID string, qm *quota.Manager, rc *cache.ResultCache, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("search API key is required")
	}
	if engineID == "" {
		return nil, errors.New("search engine ID is required")
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	svc, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}

	c := &Client{
		svc:     svc,
		cx:      engineID,
		quota:   qm,
		cache:   rc,
		timeout: opts.Timeout,
		backoff: opts.RetryBackoff,
	}
	if c.timeout <= 0 {
		c.timeout = 30 * time.Second
	}
	if c.backoff <= 0 {
		c.backoff = 1500 * time.Millisecond
	}
	if opts.QPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.QPS), 1)
	}
	return c, nil
}

// cacheKey renders (mode, query, requested count) as a cache key. The format
// matches state files written by earlier deployments, so a warm cache
// survives an upgrade.
func cacheKey(mode Mode, query string, num int) string {
	return fmt.Sprintf("%s::%s::%d", mode, query, num)
}

// Search returns up to numResults hits for query. A cache hit costs nothing;
// a miss spends one quota unit per successful round trip, even when the
// provider returns zero items. An empty slice, never an error, comes back
// when the quota is exhausted or the provider fails.
//
// The cache key carries the requested count while the request itself is
// capped at the provider maximum, so asking for 15 and then 15 again hits
// the cache rather than the API.
func (c *Client) Search(ctx context.Context, query string, numResults int, mode Mode) []model.SearchHit {
	if numResults <= 0 {
		numResults = maxResultsPerRequest
	}

	key := cacheKey(mode, query, numResults)
	if hits, ok := c.cache.Get(key); ok {
		return hits
	}

	if !c.quota.CanConsume(1) {
		log.Printf("Warning: daily search quota reached, skipping query %q", query)
		return nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Printf("Error: search rate limiter: %v", err)
			return nil
		}
	}

	resp, err := c.doWithRetry(ctx, query, min(numResults, maxResultsPerRequest))
	if err != nil {
		log.Printf("Error: google custom search failed for %q: %v", query, err)
		return nil
	}

	hits := make([]model.SearchHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		hits = append(hits, model.SearchHit{
			Title:       item.Title,
			Link:        item.Link,
			Snippet:     item.Snippet,
			DisplayLink: item.DisplayLink,
			Source:      sourceName,
		})
	}

	// Quota and cache move only on a genuine round trip, never on a refusal.
	c.quota.Consume(1)
	c.cache.Put(key, hits)
	log.Printf("Retrieved %d results for query: %s", len(hits), query)
	return hits
}

// doWithRetry performs the request, retrying exactly once when the first
// attempt fails with a transient provider status. Transport-level errors are
// not retried; they rarely resolve within one backoff.
func (c *Client) doWithRetry(ctx context.Context, query string, num int) (*customsearch.Search, error) {
	for attempt := 0; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.svc.Cse.List().
			Q(query).
			Cx(c.cx).
			Num(int64(num)).
			Context(callCtx).
			Do()
		cancel()
		if err == nil {
			return resp, nil
		}
		if attempt == 0 && isTransient(err) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff):
			}
			continue
		}
		return nil, err
	}
}

// isTransient reports whether the provider signalled a retryable condition:
// rate limiting or a server-side failure.
func isTransient(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 429 || gerr.Code >= 500
	}
	return false
}
