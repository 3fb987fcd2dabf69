package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sitewatch/sitewatch/internal/alert"
	"github.com/sitewatch/sitewatch/internal/domain"
)

// SiteProber runs a one-off probe outside the round cycle.
type SiteProber interface {
	CheckSite(ctx context.Context, site domain.Site) domain.CheckResult
}

// Server is the read-only status surface: latest results, ad-hoc probes,
// and metrics.
type Server struct {
	Logger   *zap.Logger
	Store    *alert.StatusStore
	Prober   SiteProber
	Gatherer prometheus.Gatherer
}

func NewServer(l *zap.Logger, store *alert.StatusStore, p SiteProber, g prometheus.Gatherer) *Server {
	return &Server{Logger: l, Store: store, Prober: p, Gatherer: g}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)
	r.Post("/api/check", s.handleCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Store.Snapshot())
}

type checkPayload struct {
	URL            string `json:"url"`
	ExpectedStatus int    `json:"expected_status,omitempty"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var p checkPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.URL == "" {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if _, err := url.ParseRequestURI(p.URL); err != nil {
		http.Error(w, "invalid url", http.StatusBadRequest)
		return
	}

	res := s.Prober.CheckSite(r.Context(), domain.Site{
		URL:            p.URL,
		ExpectedStatus: p.ExpectedStatus,
	})

	s.Logger.Info("adhoc_check",
		zap.String("url", p.URL),
		zap.String("status", string(res.Status)),
		zap.Float64("response_time_ms", res.ResponseTimeMS),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}
