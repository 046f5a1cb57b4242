package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/locale"
	applog "budgeteer/internal/log"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.State())
}

type summaryResponse struct {
	Month      string       `json:"month"`
	MonthLabel string       `json:"monthLabel"`
	Currency   string       `json:"currency"`
	Summary    core.Summary `json:"summary"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	st := s.store.State()
	if cached, ok := s.summaries.get(st.CurrentMonth); ok {
		s.writeJSON(w, http.StatusOK, cached)
		return
	}
	resp := summaryResponse{
		Month:      st.CurrentMonth,
		MonthLabel: core.FormatMonth(st.CurrentMonth),
		Currency:   st.Currency,
		Summary:    s.store.Summary(),
	}
	s.summaries.set(st.CurrentMonth, resp)
	s.writeJSON(w, http.StatusOK, resp)
}

type expenseListResponse struct {
	Month  string          `json:"month"`
	Groups []core.DayGroup `json:"groups"`
}

type addExpenseRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date,omitempty"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		groups := core.GroupByDate(s.store.ExpensesForCurrentMonth())
		if groups == nil {
			groups = []core.DayGroup{}
		}
		s.writeJSON(w, http.StatusOK, expenseListResponse{
			Month:  s.store.State().CurrentMonth,
			Groups: groups,
		})

	case http.MethodPost:
		var req addExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		amountCents := core.ParseAmountToCents(req.Amount)
		category := core.Category(req.Category)
		if res := core.ValidateExpense(amountCents, req.Description, category); !res.Valid {
			s.writeError(w, http.StatusBadRequest, res.Reason)
			return
		}

		date := req.Date
		if date == "" {
			date = core.TodayKey()
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}

		expense := core.Expense{
			ID:          core.NewExpenseID(),
			AmountCents: amountCents,
			Description: req.Description,
			Category:    category,
			Date:        date,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		s.store.AddExpense(expense)
		s.summaries.purge()

		s.logger.InfoContext(r.Context(), "Expense added",
			applog.FieldExpenseID, expense.ID,
			applog.FieldAmountCents, expense.AmountCents,
			applog.FieldCategory, string(expense.Category))
		s.writeJSON(w, http.StatusCreated, expense)

	default:
		s.methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.methodNotAllowed(w, http.MethodDelete)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	// Deleting an unknown id is a no-op by contract.
	s.store.DeleteExpense(id)
	s.summaries.purge()
	w.WriteHeader(http.StatusNoContent)
}

type setIncomeRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		s.methodNotAllowed(w, http.MethodPut)
		return
	}
	var req setIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	incomeCents := core.ParseAmountToCents(req.Amount)
	if res := core.ValidateIncome(incomeCents); !res.Valid {
		s.writeError(w, http.StatusBadRequest, res.Reason)
		return
	}
	s.store.SetIncome(incomeCents)
	s.summaries.purge()
	s.writeJSON(w, http.StatusOK, map[string]int64{"income": incomeCents})
}

type setMonthRequest struct {
	Month string `json:"month"`
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		s.methodNotAllowed(w, http.MethodPut)
		return
	}
	var req setMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, _, err := core.ParseMonthKey(req.Month); err != nil {
		s.writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	s.store.SetMonth(req.Month)
	s.writeJSON(w, http.StatusOK, map[string]string{"month": req.Month})
}

func (s *Server) handleMonthShift(delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.methodNotAllowed(w, http.MethodPost)
			return
		}
		current := s.store.State().CurrentMonth
		var (
			month string
			err   error
		)
		if delta < 0 {
			month, err = core.PreviousMonthKey(current)
		} else {
			month, err = core.NextMonthKey(current)
		}
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "current month is malformed")
			return
		}
		s.store.SetMonth(month)
		s.writeJSON(w, http.StatusOK, map[string]string{"month": month})
	}
}

type settingsResponse struct {
	Currency string           `json:"currency"`
	Language locale.Language  `json:"language"`
	Theme    locale.ThemeMode `json:"theme"`
	Location *core.Location   `json:"location,omitempty"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}
	st := s.store.State()
	s.writeJSON(w, http.StatusOK, settingsResponse{
		Currency: st.Currency,
		Language: s.settings.LoadLanguage(r.Context()),
		Theme:    s.settings.LoadTheme(r.Context()),
		Location: st.Location,
	})
}

type setCurrencyRequest struct {
	Currency string `json:"currency"`
}

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		s.methodNotAllowed(w, http.MethodPut)
		return
	}
	var req setCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !locale.ValidCurrency(req.Currency) {
		s.writeError(w, http.StatusBadRequest, "unknown currency code")
		return
	}
	code := locale.NormalizeCurrency(req.Currency)
	s.store.SetCurrency(code)
	s.summaries.purge()
	s.writeJSON(w, http.StatusOK, map[string]string{"currency": code})
}

type locationResponse struct {
	Location *core.Location         `json:"location"`
	Defaults locale.CountryDefaults `json:"defaults"`
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		// An empty or null body clears the preference.
		trimmed := strings.TrimSpace(string(body))
		if trimmed == "" || trimmed == "null" {
			s.store.SetLocation(nil)
			s.writeJSON(w, http.StatusOK, locationResponse{Defaults: locale.DefaultsForCountry("")})
			return
		}

		var loc core.Location
		if err := json.Unmarshal(body, &loc); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		s.store.SetLocation(&loc)

		// Suggest language and currency defaults for the detected country,
		// the way the onboarding flow applies them.
		s.writeJSON(w, http.StatusOK, locationResponse{
			Location: &loc,
			Defaults: locale.DefaultsForCountry(loc.Country),
		})

	case http.MethodDelete:
		s.store.SetLocation(nil)
		w.WriteHeader(http.StatusNoContent)

	default:
		s.methodNotAllowed(w, "PUT, DELETE")
	}
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		s.methodNotAllowed(w, http.MethodPut)
		return
	}
	var req setLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lang := locale.Language(req.Language)
	if !lang.IsValid() {
		s.writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}
	s.settings.SaveLanguage(r.Context(), lang)
	s.writeJSON(w, http.StatusOK, map[string]string{"language": string(lang)})
}

type setThemeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		s.methodNotAllowed(w, http.MethodPut)
		return
	}
	var req setThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode := locale.ThemeMode(req.Theme)
	if !mode.IsValid() {
		s.writeError(w, http.StatusBadRequest, "unknown theme mode")
		return
	}
	s.settings.SaveTheme(r.Context(), mode)
	s.writeJSON(w, http.StatusOK, map[string]string{"theme": string(mode)})
}

func (s *Server) handleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}
	s.store.CompleteOnboarding()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}
	if err := s.store.Reset(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Reset failed", applog.FieldError, err)
		s.writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	s.summaries.purge()
	w.WriteHeader(http.StatusNoContent)
}
