// Package github fetches a user's public repositories and their README
// bodies from the GitHub REST API, with an optional on-disk cache.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/repocrawl/internal/telemetry"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100

	// maxFetchTries bounds retries per HTTP request.
	maxFetchTries = 3

	defaultReadmeWorkers = 4
)

// Repository holds the subset of repository metadata the map view needs.
type Repository struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Readme      string `json:"readme"`
}

// Client fetches repositories for GitHub users.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	cache   *Cache
	workers int

	// logMu serializes log output from the readme workers.
	logMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the GitHub API base URL (used in tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithToken sets a bearer token for authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithCache attaches an on-disk listing cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithReadmeWorkers sets the size of the readme fetch pool.
func WithReadmeWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewClient builds a GitHub client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		workers: defaultReadmeWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repos returns the user's public repositories with README bodies,
// serving from the cache when a fresh entry exists.
func (c *Client) Repos(ctx context.Context, username string) ([]Repository, error) {
	tracer := telemetry.Tracer("github")
	ctx, span := tracer.Start(ctx, "github.repos")
	defer span.End()
	span.SetAttributes(attribute.String("github.username", username))

	if c.cache != nil {
		repos, ok, err := c.cache.Get(ctx, username)
		if err != nil {
			log.Printf("repo cache read for %s: %v", username, err)
		}
		if ok {
			span.SetAttributes(
				attribute.Bool("github.cache_hit", true),
				attribute.Int("github.repo_count", len(repos)),
			)
			return repos, nil
		}
	}

	repos, err := c.listRepos(ctx, username)
	if err != nil {
		return nil, err
	}
	c.fetchReadmes(ctx, username, repos)

	if c.cache != nil {
		if err := c.cache.Put(ctx, username, repos); err != nil {
			log.Printf("repo cache write for %s: %v", username, err)
		}
	}

	span.SetAttributes(
		attribute.Bool("github.cache_hit", false),
		attribute.Int("github.repo_count", len(repos)),
	)
	return repos, nil
}

// listRepos walks the paginated repository listing.
func (c *Client) listRepos(ctx context.Context, username string) ([]Repository, error) {
	var repos []Repository
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/users/%s/repos?page=%d&per_page=%d", c.baseURL, username, page, perPage)
		body, err := c.get(ctx, url, "application/vnd.github+json")
		if err != nil {
			return nil, fmt.Errorf("list repos for %s: %w", username, err)
		}

		var payload []struct {
			Name        string `json:"name"`
			HTMLURL     string `json:"html_url"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("decode repo listing for %s: %w", username, err)
		}
		if len(payload) == 0 {
			break
		}

		for _, repo := range payload {
			repos = append(repos, Repository{
				Title:       repo.Name,
				URL:         repo.HTMLURL,
				Description: repo.Description,
			})
		}
		if len(payload) < perPage {
			break
		}
	}
	return repos, nil
}

// fetchReadmes fills in README bodies through a fixed-size worker pool.
// Workers write to disjoint slice indices; the mutex only guards the
// shared log output.
func (c *Client) fetchReadmes(ctx context.Context, username string, repos []Repository) {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				readme, err := c.fetchReadme(ctx, username, repos[i].Title)
				if err != nil {
					c.logMu.Lock()
					log.Printf("readme for %s/%s: %v", username, repos[i].Title, err)
					c.logMu.Unlock()
					continue
				}
				repos[i].Readme = readme
			}
		}()
	}

	for i := range repos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// fetchReadme returns the raw README body, or empty when the repository
// has none.
func (c *Client) fetchReadme(ctx context.Context, username, repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, username, repo)
	body, err := c.get(ctx, url, "application/vnd.github.raw+json")
	if err != nil {
		var httpErr *statusError
		if errors.As(err, &httpErr) && httpErr.code == http.StatusNotFound {
			return "", nil
		}
		return "", err
	}
	return string(body), nil
}

// statusError is a non-2xx HTTP response.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.url, e.code)
}

// get performs a GET with bounded exponential retry. Client errors are
// permanent; server errors and transport failures are retried.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", accept)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(&statusError{code: resp.StatusCode, url: url})
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &statusError{code: resp.StatusCode, url: url}
		}
		return io.ReadAll(resp.Body)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxFetchTries),
	)
}
