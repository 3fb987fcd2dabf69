// Package track keeps the most recently observed status per site. This is
// the only state that survives between rounds; it lives for the lifetime of
// one checker instance, not the process.
package track

import (
	"sync"

	"github.com/sitewatch/sitewatch/internal/domain"
)

type Tracker struct {
	mu   sync.Mutex
	prev map[string]domain.Status
}

func New() *Tracker {
	return &Tracker{prev: make(map[string]domain.Status)}
}

// Update records s as the current status for url and returns the status
// seen before it. known is false on the first-ever update for that url; an
// unknown prior state is not "down" and must not be reported as one.
func (t *Tracker) Update(url string, s domain.Status) (prev domain.Status, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, known = t.prev[url]
	t.prev[url] = s
	return prev, known
}
