// Package api exposes the HTTP glue surface consumed by the UI. It carries
// no shift logic of its own; everything is delegated to the domain service
// and the aggregator.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/shifttrack/internal/aggregate"
	"example.com/shifttrack/internal/auth"
	"example.com/shifttrack/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/shifts", h.shifts)
	mux.HandleFunc("/v1/shifts/", h.shiftByID)
	mux.HandleFunc("/v1/summary", h.summary)
	mux.HandleFunc("/v1/balance", h.balance)
	mux.HandleFunc("/v1/preferences", h.preferences)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) shifts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createShift(w, r)
	case http.MethodGet:
		h.listShifts(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) shiftByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/shifts/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing shift id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateShift(w, r, id)
	case http.MethodDelete:
		h.deleteShift(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) createShift(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireScope(w, r, auth.ScopeShiftsWrite)
	if !ok {
		return
	}

	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	shift, err := h.service.CreateShift(r.Context(), claims.Subject, req.draft())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftView(*shift))
}

func (h *Handler) updateShift(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireScope(w, r, auth.ScopeShiftsWrite)
	if !ok {
		return
	}

	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	shift, err := h.service.UpdateShift(r.Context(), claims.Subject, id, req.draft())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftView(*shift))
}

func (h *Handler) deleteShift(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireScope(w, r, auth.ScopeShiftsWrite)
	if !ok {
		return
	}

	if err := h.service.DeleteShift(r.Context(), claims.Subject, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listShifts(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireReadScope(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListShifts(r.Context(), claims.Subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	report := aggregate.Aggregate(result.Shifts, r.URL.Query().Get("month"))
	items := make([]ShiftView, 0, len(report.Shifts))
	for _, sh := range report.Shifts {
		items = append(items, toShiftView(sh))
	}

	markDegraded(w, result.Degraded)
	writeJSON(w, http.StatusOK, ListShiftsResponse{Items: items, Degraded: result.Degraded})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	claims, ok := requireReadScope(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListShifts(r.Context(), claims.Subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	report := aggregate.Aggregate(result.Shifts, r.URL.Query().Get("month"))
	resp := SummaryResponse{
		GrandTotal: TotalsView{Hours: report.GrandTotal.Hours, Pay: report.GrandTotal.Pay},
		Months:     make([]MonthView, 0, len(report.MonthKeys)),
		Degraded:   result.Degraded,
	}
	for _, key := range report.MonthKeys {
		bucket := report.Months[key]
		resp.Months = append(resp.Months, MonthView{
			Month:      key,
			TotalHours: bucket.Totals.Hours,
			TotalPay:   bucket.Totals.Pay,
			ShiftCount: len(bucket.Shifts),
		})
	}

	markDegraded(w, result.Degraded)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		claims, ok := requireReadScope(w, r)
		if !ok {
			return
		}
		result, err := h.service.Balance(r.Context(), claims.Subject)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		markDegraded(w, result.Degraded)
		writeJSON(w, http.StatusOK, BalanceResponse{Balance: result.Balance, Degraded: result.Degraded})
	case http.MethodPut:
		claims, ok := requireScope(w, r, auth.ScopeShiftsWrite)
		if !ok {
			return
		}
		var req BalanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := h.service.UpdateBalance(r.Context(), claims.Subject, req.Balance); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, BalanceResponse{Balance: req.Balance})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) preferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		claims, ok := requireReadScope(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, h.service.Preferences(r.Context(), claims.Subject))
	case http.MethodPut:
		claims, ok := requireScope(w, r, auth.ScopeShiftsWrite)
		if !ok {
			return
		}
		var prefs domain.Preferences
		if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := h.service.SavePreferences(r.Context(), claims.Subject, prefs); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func requireScope(w http.ResponseWriter, r *http.Request, scope string) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if !claims.HasScope(scope) {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+scope+" required")
		return nil, false
	}
	return claims, true
}

func requireReadScope(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if !claims.HasScope(auth.ScopeShiftsRead) && !claims.HasScope(auth.ScopeShiftsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+auth.ScopeShiftsRead+" required")
		return nil, false
	}
	return claims, true
}

func markDegraded(w http.ResponseWriter, degraded bool) {
	if degraded {
		w.Header().Set("X-Degraded", "true")
	}
}

// ShiftRequest is the payload for creating or fully replacing a shift. The
// derived fields are never accepted here; edits re-submit the settable fields.
type ShiftRequest struct {
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Wage      float64 `json:"wage"`
}

func (r ShiftRequest) draft() domain.ShiftDraft {
	return domain.ShiftDraft{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Wage:      r.Wage,
	}
}

// ShiftView exposes full details about a shift.
type ShiftView struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Wage      float64   `json:"wage"`
	Hours     float64   `json:"hours"`
	Pay       int64     `json:"pay"`
	DayOfWeek string    `json:"day_of_week"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListShiftsResponse packages list results.
type ListShiftsResponse struct {
	Items    []ShiftView `json:"items"`
	Degraded bool        `json:"degraded,omitempty"`
}

// TotalsView carries summed hours and pay.
type TotalsView struct {
	Hours float64 `json:"hours"`
	Pay   int64   `json:"pay"`
}

// MonthView describes one month bucket.
type MonthView struct {
	Month      string  `json:"month"`
	TotalHours float64 `json:"total_hours"`
	TotalPay   int64   `json:"total_pay"`
	ShiftCount int     `json:"shift_count"`
}

// SummaryResponse is the aggregated report for the filtered collection.
type SummaryResponse struct {
	GrandTotal TotalsView  `json:"grand_total"`
	Months     []MonthView `json:"months"`
	Degraded   bool        `json:"degraded,omitempty"`
}

// BalanceRequest is the payload for PUT /v1/balance.
type BalanceRequest struct {
	Balance int64 `json:"balance"`
}

// BalanceResponse carries the account balance.
type BalanceResponse struct {
	Balance  int64 `json:"balance"`
	Degraded bool  `json:"degraded,omitempty"`
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrShiftNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrFetch), errors.Is(err, domain.ErrPersistence):
		writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toShiftView(sh domain.Shift) ShiftView {
	return ShiftView{
		ID:        sh.ID,
		Date:      sh.Date,
		StartTime: sh.StartTime,
		EndTime:   sh.EndTime,
		Wage:      sh.Wage,
		Hours:     sh.Hours,
		Pay:       sh.Pay,
		DayOfWeek: sh.DayOfWeek,
		CreatedAt: sh.CreatedAt,
		UpdatedAt: sh.UpdatedAt,
	}
}
