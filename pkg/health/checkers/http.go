package checkers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPChecker reports whether an upstream HTTP endpoint answers without a
// server error. Client errors still mean the upstream is reachable.
type HTTPChecker struct {
	name    string
	url     string
	client  *http.Client
	timeout time.Duration
}

func NewHTTPChecker(name, url string) *HTTPChecker {
	return &HTTPChecker{name: name, url: url, client: http.DefaultClient, timeout: 3 * time.Second}
}

func (c *HTTPChecker) Name() string { return c.name }

func (c *HTTPChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
