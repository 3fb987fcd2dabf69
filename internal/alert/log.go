package alert

import (
	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// LogHandler writes every outcome and every transition to the structured
// log. Registered by default.
type LogHandler struct {
	Logger *zap.Logger
}

func NewLogHandler(l *zap.Logger) *LogHandler {
	return &LogHandler{Logger: l}
}

func (h *LogHandler) OnCheckComplete(r domain.CheckResult) {
	if r.Up() {
		h.Logger.Info("check_ok",
			zap.String("url", r.URL),
			zap.Intp("status_code", r.StatusCode),
			zap.Float64("response_time_ms", r.ResponseTimeMS),
		)
		return
	}
	h.Logger.Warn("check_failed",
		zap.String("url", r.URL),
		zap.Intp("status_code", r.StatusCode),
		zap.Float64("response_time_ms", r.ResponseTimeMS),
		zap.String("reason", r.Reason()),
	)
}

func (h *LogHandler) OnStatusChange(r domain.CheckResult, prev domain.Status) {
	if r.Status == domain.StatusDown {
		h.Logger.Warn("site_down",
			zap.String("url", r.URL),
			zap.String("previous_status", string(prev)),
			zap.String("reason", r.Reason()),
		)
		return
	}
	h.Logger.Info("site_recovered",
		zap.String("url", r.URL),
		zap.String("previous_status", string(prev)),
		zap.Float64("response_time_ms", r.ResponseTimeMS),
	)
}
