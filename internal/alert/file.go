package alert

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/domain"
)

// FileHandler appends every check result as one JSON line, for offline
// analysis. Writes are serialized; a write failure is logged, never fatal.
type FileHandler struct {
	Path   string
	Logger *zap.Logger

	mu sync.Mutex
}

func NewFileHandler(path string, l *zap.Logger) *FileHandler {
	if path == "" {
		return nil
	}
	return &FileHandler{Path: path, Logger: l}
}

func (h *FileHandler) OnCheckComplete(r domain.CheckResult) {
	line, err := json.Marshal(r)
	if err != nil {
		h.Logger.Warn("history_marshal_failed", zap.String("url", r.URL), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.OpenFile(h.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		h.Logger.Warn("history_open_failed", zap.String("path", h.Path), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		h.Logger.Warn("history_write_failed", zap.String("path", h.Path), zap.Error(err))
	}
}

func (h *FileHandler) OnStatusChange(domain.CheckResult, domain.Status) {}
