// Package http exposes the budget store to UI callers as a JSON API. The
// handlers are a thin shell: they validate input with the core package,
// invoke store mutations, and render derived views; no budget logic lives
// here.
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"budgeteer/internal/budget"
	applog "budgeteer/internal/log"
	"budgeteer/internal/middleware/trace"
	"budgeteer/internal/storage"
)

const (
	summaryCacheSize = 12
	summaryCacheTTL  = 30 * time.Second
)

// Server serves the budget API.
type Server struct {
	http.Server

	store     *budget.Store
	settings  *storage.Adapter
	logger    *applog.Logger
	summaries *lruCache[summaryResponse]
}

// NewServer wires the API routes. The settings adapter handles the
// language and theme preferences, which live outside the budget state.
func NewServer(addr string, store *budget.Store, settings *storage.Adapter, logger *applog.Logger) *Server {
	s := &Server{
		store:     store,
		settings:  settings,
		logger:    logger.WithComponent(applog.ComponentHTTP),
		summaries: newLRUCache[summaryResponse](summaryCacheSize, summaryCacheTTL),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/expenses", s.handleExpenses)
	mux.HandleFunc("/api/expenses/", s.handleExpenseByID)
	mux.HandleFunc("/api/income", s.handleIncome)
	mux.HandleFunc("/api/month", s.handleMonth)
	mux.HandleFunc("/api/month/previous", s.handleMonthShift(-1))
	mux.HandleFunc("/api/month/next", s.handleMonthShift(1))
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/settings/currency", s.handleCurrency)
	mux.HandleFunc("/api/settings/location", s.handleLocation)
	mux.HandleFunc("/api/settings/language", s.handleLanguage)
	mux.HandleFunc("/api/settings/theme", s.handleTheme)
	mux.HandleFunc("/api/onboarding/complete", s.handleCompleteOnboarding)
	mux.HandleFunc("/api/reset", s.handleReset)

	s.Addr = addr
	s.Handler = trace.Middleware(mux)
	return s
}

// Router returns the server's handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.Handler
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", applog.FieldError, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
