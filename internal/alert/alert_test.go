package alert

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sitewatch/sitewatch/internal/domain"
)

func upResult(url string) domain.CheckResult {
	code := 200
	return domain.CheckResult{
		URL:            url,
		Status:         domain.StatusUp,
		StatusCode:     &code,
		ResponseTimeMS: 42.5,
		Timestamp:      time.Now().UTC(),
	}
}

func downResult(url, reason string) domain.CheckResult {
	return domain.CheckResult{
		URL:            url,
		Status:         domain.StatusDown,
		ResponseTimeMS: 10,
		ErrorMessage:   &reason,
		Timestamp:      time.Now().UTC(),
	}
}

func TestLogHandler_LevelsByOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewLogHandler(zap.New(core))

	h.OnCheckComplete(upResult("https://a"))
	h.OnCheckComplete(downResult("https://b", "connection refused"))
	h.OnStatusChange(downResult("https://b", "connection refused"), domain.StatusUp)
	h.OnStatusChange(upResult("https://b"), domain.StatusDown)

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("want 4 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].Message != "check_ok" {
		t.Fatalf("unexpected first entry: %+v", entries[0].Entry)
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "check_failed" {
		t.Fatalf("unexpected second entry: %+v", entries[1].Entry)
	}
	if entries[2].Message != "site_down" || entries[3].Message != "site_recovered" {
		t.Fatalf("unexpected transition entries: %q %q", entries[2].Message, entries[3].Message)
	}
}

func TestFileHandler_AppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := NewFileHandler(path, zap.NewNop())

	h.OnCheckComplete(upResult("https://a"))
	h.OnCheckComplete(downResult("https://b", "timeout after 5s"))

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r domain.CheckResult
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("want 2 lines, got %d", lines)
	}
}

func TestFileHandler_EmptyPathDisabled(t *testing.T) {
	if h := NewFileHandler("", zap.NewNop()); h != nil {
		t.Fatalf("empty path should disable the handler")
	}
}

func TestStatusStore_SnapshotKeepsFirstSeenOrder(t *testing.T) {
	s := NewStatusStore()
	s.OnCheckComplete(upResult("https://a"))
	s.OnCheckComplete(upResult("https://b"))
	s.OnCheckComplete(downResult("https://a", "boom")) // update, not reorder

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("want 2 sites, got %d", len(snap))
	}
	if snap[0].URL != "https://a" || snap[1].URL != "https://b" {
		t.Fatalf("order wrong: %q %q", snap[0].URL, snap[1].URL)
	}
	if snap[0].Status != domain.StatusDown {
		t.Fatalf("latest result for a not retained: %+v", snap[0])
	}
}
