package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sitewatch/sitewatch/internal/domain"
)

const userAgent = "sitewatch/1.0"

// HTTPProber checks sites with plain GET requests over a shared client.
// Safe for concurrent use: the only state is the client, and per-probe
// deadlines come from a derived context, not from mutating the client.
type HTTPProber struct {
	Client         *http.Client
	DefaultTimeout time.Duration
}

func NewHTTPProber(defaultTimeout time.Duration) *HTTPProber {
	if defaultTimeout <= 0 {
		defaultTimeout = 10 * time.Second
	}
	return &HTTPProber{
		Client:         &http.Client{},
		DefaultTimeout: defaultTimeout,
	}
}

// Check probes the site once. The result's status is up only when a
// response arrived within the site's timeout and its status code matches
// the expected one.
func (p *HTTPProber) Check(ctx context.Context, site domain.Site) domain.CheckResult {
	timeout := site.Timeout
	if timeout <= 0 {
		timeout = p.DefaultTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, site.URL, nil)
	if err != nil {
		return down(site.URL, nil, elapsedMS(start, timeout), err.Error())
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		ms := elapsedMS(start, timeout)
		if errors.Is(err, context.DeadlineExceeded) {
			return down(site.URL, nil, ms, fmt.Sprintf("timeout after %gs", timeout.Seconds()))
		}
		return down(site.URL, nil, ms, err.Error())
	}
	defer resp.Body.Close()

	ms := elapsedMS(start, timeout)
	code := resp.StatusCode
	if code != site.WantStatus() {
		msg := fmt.Sprintf("unexpected status code: got %d, want %d", code, site.WantStatus())
		return down(site.URL, &code, ms, msg)
	}

	return domain.CheckResult{
		URL:            site.URL,
		Status:         domain.StatusUp,
		StatusCode:     &code,
		ResponseTimeMS: ms,
		Timestamp:      time.Now().UTC(),
	}
}

// elapsedMS measures time since start, clamped to the timeout budget so a
// late failure reports the budget that was actually spent waiting.
func elapsedMS(start time.Time, timeout time.Duration) float64 {
	d := time.Since(start)
	if d > timeout {
		d = timeout
	}
	return d.Seconds() * 1000
}

func down(url string, code *int, ms float64, msg string) domain.CheckResult {
	return domain.CheckResult{
		URL:            url,
		Status:         domain.StatusDown,
		StatusCode:     code,
		ResponseTimeMS: ms,
		ErrorMessage:   &msg,
		Timestamp:      time.Now().UTC(),
	}
}
