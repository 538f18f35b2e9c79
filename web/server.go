// ABOUTME: HTTP search backend for the dashboard's assistant search mode
// ABOUTME: Serves /api/search, /api/status, /api/history, campaign graphs and Prometheus metrics
package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/harperreed/nexus/assistant"
	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/db"
	"github.com/harperreed/nexus/logging"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/viz"
)

// searchLimit caps rows pulled per search term.
const searchLimit = 20

type Options struct {
	AllowedOrigins []string
	Logger         *zap.Logger
}

type Server struct {
	db        *sql.DB
	assistant assistant.Assistant
	generator *viz.GraphGenerator
	logger    *zap.Logger
	origins   map[string]bool
	metrics   *metrics
	handler   http.Handler
}

func NewServer(database *sql.DB, a assistant.Assistant, opts Options) *Server {
	s := &Server{
		db:        database,
		assistant: a,
		generator: viz.NewGraphGenerator(),
		logger:    logging.OrNop(opts.Logger),
		origins:   make(map[string]bool),
		metrics:   newMetrics(),
	}
	for _, o := range opts.AllowedOrigins {
		s.origins[o] = true
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/search", s.instrument("/api/search", s.handleSearch))
	mux.Handle("GET /api/status", s.instrument("/api/status", s.handleStatus))
	mux.Handle("GET /api/history", s.instrument("/api/history", s.handleHistory))
	mux.Handle("GET /api/campaigns/{id}/graph", s.instrument("/api/campaigns/graph", s.handleCampaignGraph))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	s.handler = s.cors(mux)
	return s
}

// Handler exposes the routed, CORS-wrapped handler (used by tests and Start).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Starting search server", zap.String("addr", addr), zap.String("assistant", s.assistant.Name()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeDetail(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.SessionID == "" {
		writeDetail(w, http.StatusBadRequest, "session_id is required")
		return
	}

	ctx := r.Context()
	start := time.Now()

	intent, err := s.assistant.Classify(ctx, req.Query)
	if err != nil {
		s.logger.Error("Intent detection failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "assistant error (intent detection): "+err.Error())
		return
	}
	s.metrics.intents.WithLabelValues(string(intent)).Inc()
	s.remember(req.SessionID, models.RoleUser, req.Query)

	resp := models.SearchResponse{}
	switch intent {
	case assistant.IntentGreeting:
		resp.Summary, err = s.assistant.Reply(ctx, req.Query)
		if err != nil {
			s.logger.Error("Greeting failed", zap.Error(err))
			writeDetail(w, http.StatusInternalServerError, "assistant error (greeting): "+err.Error())
			return
		}

	case assistant.IntentSearch:
		resp.Results, err = s.searchEntities(req.Query)
		if err != nil {
			s.logger.Error("Entity search failed", zap.Error(err))
			writeDetail(w, http.StatusInternalServerError, "database error: "+err.Error())
			return
		}
		resp.Summary, err = s.assistant.Summarize(ctx, req.Query, resp.Results)
		if err != nil {
			s.logger.Error("Summary failed", zap.Error(err))
			writeDetail(w, http.StatusInternalServerError, "assistant error (summary): "+err.Error())
			return
		}

	default:
		resp.Summary = assistant.FallbackReply
	}

	s.remember(req.SessionID, models.RoleAssistant, resp.Summary)
	s.metrics.searchSeconds.Observe(time.Since(start).Seconds())
	s.logger.Debug("Search answered",
		zap.String("session", req.SessionID),
		zap.String("intent", string(intent)),
		zap.Int("results", len(resp.Results)))

	writeJSON(w, http.StatusOK, resp)
}

// searchEntities tries the whole phrase first and falls back to its
// significant words, merging hits in id order of discovery.
func (s *Server) searchEntities(query string) ([]models.Entity, error) {
	terms := assistant.SearchTerms(query)
	seen := make(map[int]bool)
	var out []models.Entity
	for i, term := range terms {
		found, err := db.SearchEntities(s.db, term, searchLimit)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if !seen[e.ID] {
				seen[e.ID] = true
				out = append(out, e)
			}
		}
		if i == 0 && len(out) > 0 {
			break
		}
	}
	return out, nil
}

// remember stores a transcript line; history is best effort and never fails the request.
func (s *Server) remember(sessionID, role, content string) {
	if _, err := db.AppendChat(s.db, sessionID, role, content); err != nil {
		s.logger.Warn("Failed to store chat history", zap.String("session", sessionID), zap.Error(err))
	}
}

type statusResponse struct {
	Status    string `json:"status"`
	Assistant string `json:"assistant"`
	Entities  int    `json:"entities"`
	Sessions  int    `json:"sessions"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	entities, err := db.CountEntities(s.db)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	sessions, err := db.CountSessions(s.db)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:    "ok",
		Assistant: s.assistant.Name(),
		Entities:  entities,
		Sessions:  sessions,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeDetail(w, http.StatusBadRequest, "session_id is required")
		return
	}
	history, err := db.GetChatHistory(s.db, sessionID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if history == nil {
		history = []models.ChatRecord{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleCampaignGraph(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid campaign id")
		return
	}
	campaign, ok := catalog.CampaignByID(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, "campaign not found")
		return
	}
	dot, err := s.generator.CampaignGraph(r.Context(), campaign)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(dot))
}

// cors answers preflight requests and tags responses for allowed origins.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.origins[origin] {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

type metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	intents       *prometheus.CounterVec
	searchSeconds prometheus.Histogram
}

// newMetrics uses a private registry so several servers can coexist in one process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_search_intents_total",
			Help: "Classified search queries by intent.",
		}, []string{"intent"}),
		searchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nexus_search_duration_seconds",
			Help:    "Time to answer a search request.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.requests, m.intents, m.searchSeconds)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}
