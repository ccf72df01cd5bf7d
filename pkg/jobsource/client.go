package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/logger"
	"github.com/artem13815/skillsync/pkg/metrics"
)

const (
	DefaultURL   = "https://www.arbeitnow.com/api/job-board-api"
	DefaultLimit = 10

	maxBodyBytes = 10 << 20
)

// Client searches a public job board for postings matching a role.
type Client struct {
	endpoint string
	limit    int
	httpDo   *http.Client
	log      *zap.Logger
}

// New returns a job board client. Zero values fall back to defaults.
func New(endpoint string, limit int, timeout time.Duration, log *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		limit:    limit,
		httpDo:   &http.Client{Timeout: timeout},
		log:      logger.OrNop(log),
	}
}

// Name is the provenance recorded with generated profiles, e.g. "arbeitnow.com".
func (c *Client) Name() string {
	u, err := url.Parse(c.endpoint)
	if err != nil || u.Hostname() == "" {
		return c.endpoint
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Search returns filtered job descriptions for roleName. It never fails:
// upstream problems are logged and yield an empty result.
func (c *Client) Search(ctx context.Context, roleName string) []string {
	postings, err := c.fetch(ctx, roleName)
	if err != nil {
		c.log.Warn("job board search failed",
			zap.String("role", roleName),
			zap.String("source", c.Name()),
			zap.Error(err))
		return nil
	}
	out := FilterDescriptions(postings, roleName, c.limit)
	metrics.JobPostingsFetched.Observe(float64(len(out)))
	c.log.Info("job board search completed",
		zap.String("role", roleName),
		zap.Int("received", len(postings)),
		zap.Int("kept", len(out)))
	return out
}

type searchResponse struct {
	Data []any `json:"data"`
}

func (c *Client) fetch(ctx context.Context, roleName string) ([]Posting, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("query", roleName)
	q.Set("page", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("job board http %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode job board response: %w", err)
	}
	return decodePostings(body.Data), nil
}

// decodePostings converts untyped items; malformed entries are skipped and
// missing fields stay empty.
func decodePostings(items []any) []Posting {
	postings := make([]Posting, 0, len(items))
	for _, item := range items {
		var p Posting
		if err := mapstructure.WeakDecode(item, &p); err != nil {
			continue
		}
		postings = append(postings, p)
	}
	return postings
}
