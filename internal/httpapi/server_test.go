package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/alert"
	"github.com/sitewatch/sitewatch/internal/domain"
)

type fakeProber struct {
	last domain.Site
}

func (f *fakeProber) CheckSite(ctx context.Context, site domain.Site) domain.CheckResult {
	f.last = site
	code := site.WantStatus()
	return domain.CheckResult{
		URL:            site.URL,
		Status:         domain.StatusUp,
		StatusCode:     &code,
		ResponseTimeMS: 1,
		Timestamp:      time.Now().UTC(),
	}
}

func newTestServer() (*Server, *alert.StatusStore, *fakeProber) {
	store := alert.NewStatusStore()
	p := &fakeProber{}
	return NewServer(zap.NewNop(), store, p, prometheus.NewRegistry()), store, p
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestStatus_ServesSnapshot(t *testing.T) {
	s, store, _ := newTestServer()
	code := 200
	store.OnCheckComplete(domain.CheckResult{
		URL: "https://a", Status: domain.StatusUp, StatusCode: &code,
		ResponseTimeMS: 12, Timestamp: time.Now().UTC(),
	})

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []domain.CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://a" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestCheck_AdHocProbe(t *testing.T) {
	s, _, p := newTestServer()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	body := strings.NewReader(`{"url":"https://example.com","expected_status":204}`)
	resp, err := http.Post(ts.URL+"/api/check", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var got domain.CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.URL != "https://example.com" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if p.last.ExpectedStatus != 204 {
		t.Fatalf("expected_status not passed through: %+v", p.last)
	}
}

func TestCheck_BadPayload(t *testing.T) {
	s, _, _ := newTestServer()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	for _, body := range []string{`{}`, `not json`, `{"url":"::bad"}`} {
		resp, err := http.Post(ts.URL+"/api/check", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: want 400, got %d", body, resp.StatusCode)
		}
	}
}
