package domain

import (
	"net/url"
	"time"
)

// Status is the observed availability of a site.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Site describes one monitored endpoint. Values are treated as immutable
// once built; the checker holds sites in configuration order.
type Site struct {
	URL            string
	Name           string        // optional label
	Timeout        time.Duration // 0 = checker default
	ExpectedStatus int           // 0 = 200
}

// DisplayName returns the configured name, falling back to the URL host.
func (s Site) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if u, err := url.Parse(s.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return s.URL
}

// WantStatus returns the HTTP status code that counts as up.
func (s Site) WantStatus() int {
	if s.ExpectedStatus != 0 {
		return s.ExpectedStatus
	}
	return 200
}
