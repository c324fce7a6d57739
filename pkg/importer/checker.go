package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Checker performs periodic HEAD requests against every abbreviation source
// and records their availability.
type Checker struct {
	sources  *SourceDB
	logger   *slog.Logger
	interval time.Duration
	client   *http.Client
}

// CheckResult is the outcome of one source check. Status is 0 on network errors.
type CheckResult struct {
	AdapterID string
	URL       string
	Status    int
	Err       error
}

// OK reports whether the source answered with a 2xx or 3xx status.
func (r CheckResult) OK() bool { return r.Err == nil && r.Status >= 200 && r.Status < 400 }

// NewChecker creates a Checker that will verify source URLs every interval.
func NewChecker(sources *SourceDB, logger *slog.Logger, interval time.Duration) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		sources:  sources,
		logger:   logger,
		interval: interval,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Start runs an immediate check then repeats every interval until ctx is
// cancelled. A non-positive interval checks once.
func (c *Checker) Start(ctx context.Context) {
	c.CheckAll(ctx)
	if c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckAll(ctx)
		}
	}
}

// CheckAll performs a HEAD request on every source URL, persists and returns
// the results.
func (c *Checker) CheckAll(ctx context.Context) []CheckResult {
	sources, err := c.sources.ListSources()
	if err != nil {
		c.logger.Error("source check: list sources", "error", err)
		return nil
	}
	if len(sources) == 0 {
		return nil
	}

	results := make([]CheckResult, 0, len(sources))
	var failed int
	for _, src := range sources {
		if ctx.Err() != nil {
			return results
		}

		res := CheckResult{AdapterID: src.AdapterID, URL: src.SourceURL}
		res.Status, res.Err = c.checkOne(ctx, src.SourceURL)
		errMsg := ""
		if res.Err != nil {
			errMsg = res.Err.Error()
		}

		if err := c.sources.UpdateCheck(src.AdapterID, res.Status, errMsg); err != nil {
			c.logger.Error("source check: update", "adapter", src.AdapterID, "error", err)
		}

		if !res.OK() {
			failed++
			c.logger.Warn("source unreachable",
				"adapter", src.AdapterID,
				"url", src.SourceURL,
				"status", res.Status,
				"error", errMsg,
			)
		}
		results = append(results, res)
	}

	c.logger.Info("source check complete", "total", len(results), "ok", len(results)-failed, "failed", failed)
	return results
}

// checkOne performs a single HEAD request and returns the HTTP status code.
func (c *Checker) checkOne(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
