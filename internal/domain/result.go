package domain

import "time"

// CheckResult is the outcome of a single probe of a single site. Built once
// by the prober, never mutated afterwards.
type CheckResult struct {
	URL            string    `json:"url"`
	Status         Status    `json:"status"`
	StatusCode     *int      `json:"status_code"`    // pointer to allow nil (no response seen)
	ResponseTimeMS float64   `json:"response_time_ms"`
	ErrorMessage   *string   `json:"error_message"` // pointer to allow nil (only set when down)
	Timestamp      time.Time `json:"timestamp"`
}

// Up reports whether the check succeeded.
func (r CheckResult) Up() bool { return r.Status == StatusUp }

// Reason returns the error message or "" when the check was up.
func (r CheckResult) Reason() string {
	if r.ErrorMessage == nil {
		return ""
	}
	return *r.ErrorMessage
}
