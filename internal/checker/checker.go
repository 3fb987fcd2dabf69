// Package checker runs check rounds over the configured sites and fans
// results out to the registered alert handlers.
package checker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/alert"
	"github.com/sitewatch/sitewatch/internal/domain"
	"github.com/sitewatch/sitewatch/internal/probe"
	"github.com/sitewatch/sitewatch/internal/track"
)

type UptimeChecker struct {
	logger         *zap.Logger
	prober         probe.Prober
	tracker        *track.Tracker
	sites          []domain.Site
	handlers       []alert.Handler
	defaultTimeout time.Duration
	concurrency    int
}

func New(
	logger *zap.Logger,
	prober probe.Prober,
	sites []domain.Site,
	defaultTimeout time.Duration,
	concurrency int,
) *UptimeChecker {
	if defaultTimeout <= 0 {
		defaultTimeout = 10 * time.Second
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &UptimeChecker{
		logger:         logger,
		prober:         prober,
		tracker:        track.New(),
		sites:          append([]domain.Site(nil), sites...),
		defaultTimeout: defaultTimeout,
		concurrency:    concurrency,
	}
}

// Register adds a handler. Call before the loop starts; the handler list is
// read without a lock during rounds.
func (c *UptimeChecker) Register(h alert.Handler) {
	c.handlers = append(c.handlers, h)
}

func (c *UptimeChecker) resolve(site domain.Site) domain.Site {
	if site.Timeout <= 0 {
		site.Timeout = c.defaultTimeout
	}
	return site
}

// CheckSite probes one site with its effective timeout. No state is updated
// and no handlers fire; this is a pure probe for ad-hoc use.
func (c *UptimeChecker) CheckSite(ctx context.Context, site domain.Site) domain.CheckResult {
	return c.prober.Check(ctx, c.resolve(site))
}

// CheckAll runs one round: every site is probed once (concurrently, under
// the concurrency bound), then results are recorded and dispatched serially
// in configuration order. Returns one result per site in that order.
func (c *UptimeChecker) CheckAll(ctx context.Context) []domain.CheckResult {
	roundID := uuid.NewString()
	start := time.Now()

	results := make([]domain.CheckResult, len(c.sites))
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	// A round in progress is never interrupted: probes run to their own
	// timeout even when the loop's ctx is cancelled mid-round, so shutdown
	// cannot surface as fake "down" results. Cancellation takes effect at
	// the next round boundary.
	probeCtx := context.WithoutCancel(ctx)

	for i, site := range c.sites {
		i, site := i, site
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			results[i] = c.prober.Check(probeCtx, c.resolve(site))
		}()
	}
	wg.Wait()

	downCount := 0
	for i, site := range c.sites {
		r := results[i]
		prev, known := c.tracker.Update(r.URL, r.Status)
		transition := known && prev != r.Status
		if !r.Up() {
			downCount++
		}

		c.logger.Debug("site_checked",
			zap.String("round_id", roundID),
			zap.String("name", site.DisplayName()),
			zap.String("url", r.URL),
			zap.String("status", string(r.Status)),
			zap.Bool("transition", transition),
		)

		for _, h := range c.handlers {
			c.invoke(roundID, r.URL, "on_check_complete", func() { h.OnCheckComplete(r) })
			if transition {
				c.invoke(roundID, r.URL, "on_status_change", func() { h.OnStatusChange(r, prev) })
			}
		}
	}

	c.logger.Info("round_complete",
		zap.String("round_id", roundID),
		zap.Int("sites", len(c.sites)),
		zap.Int("down", downCount),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results
}

// invoke fences a single handler call so one misbehaving handler cannot
// abort the round or starve later handlers.
func (c *UptimeChecker) invoke(roundID, url, event string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("handler_panic",
				zap.String("round_id", roundID),
				zap.String("url", url),
				zap.String("event", event),
				zap.Any("panic", p),
			)
		}
	}()
	fn()
}

// RunOnce runs a single round.
func (c *UptimeChecker) RunOnce(ctx context.Context) []domain.CheckResult {
	return c.CheckAll(ctx)
}

// RunContinuous loops rounds until ctx is cancelled, waiting interval
// between the end of one round and the start of the next. Rounds never
// overlap. A round that panics is reported and the loop carries on.
func (c *UptimeChecker) RunContinuous(ctx context.Context, interval time.Duration) error {
	if len(c.sites) == 0 {
		return errors.New("no sites configured")
	}

	c.logger.Info("monitoring_started",
		zap.Int("sites", len(c.sites)),
		zap.Duration("interval", interval),
	)

	for {
		if err := ctx.Err(); err != nil {
			c.logger.Info("monitoring_stopped")
			return err
		}

		c.runRound(ctx)

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.logger.Info("monitoring_stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *UptimeChecker) runRound(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("round_failed", zap.Any("panic", p))
		}
	}()
	c.CheckAll(ctx)
}
