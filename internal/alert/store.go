package alert

import (
	"sync"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// StatusStore retains the latest result per site so the HTTP API can serve
// a snapshot without touching the round in progress. Sites keep the order
// in which they were first seen, which is configuration order.
type StatusStore struct {
	mu     sync.RWMutex
	order  []string
	latest map[string]domain.CheckResult
}

func NewStatusStore() *StatusStore {
	return &StatusStore{latest: make(map[string]domain.CheckResult)}
}

func (s *StatusStore) OnCheckComplete(r domain.CheckResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.latest[r.URL]; !seen {
		s.order = append(s.order, r.URL)
	}
	s.latest[r.URL] = r
}

func (s *StatusStore) OnStatusChange(domain.CheckResult, domain.Status) {}

// Snapshot returns the latest result per site, in first-seen order.
func (s *StatusStore) Snapshot() []domain.CheckResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CheckResult, 0, len(s.order))
	for _, url := range s.order {
		out = append(out, s.latest[url])
	}
	return out
}
