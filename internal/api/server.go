// Package api exposes the booking and finance operations over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"daybook/internal/config"
	"daybook/internal/metrics"
	"daybook/internal/models"
	"daybook/internal/service"

	"github.com/rs/zerolog"
)

type HTTPServer struct {
	cfg    *config.Config
	svc    *service.DaybookService
	server *http.Server
	auth   *HTTPAuth
	logger *zerolog.Logger
}

func NewHTTPServer(cfg *config.Config, svc *service.DaybookService, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{cfg: cfg, svc: svc, logger: logger}
	srv.auth = NewHTTPAuth(cfg.API)

	mux.HandleFunc("/api/v1/calendar", srv.handleCalendar)
	mux.HandleFunc("/api/v1/bookings/plan", srv.handlePlanSlot)
	mux.HandleFunc("/api/v1/bookings", srv.handleBookings)
	mux.HandleFunc("/api/v1/bookings/", srv.handleBookingByID)
	mux.HandleFunc("/api/v1/expenses", srv.handleExpenses)
	mux.HandleFunc("/api/v1/expenses/", srv.handleExpenseByID)
	mux.HandleFunc("/api/v1/stats/monthly", srv.handleMonthlyStats)
	mux.HandleFunc("/api/v1/stats/yearly", srv.handleYearlyStats)
	mux.HandleFunc("/api/v1/export", srv.handleExport)
	mux.HandleFunc("/healthz", srv.handleHealth)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("http api listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.svc.MonthCalendar(year, month))
}

func (s *HTTPServer) handlePlanSlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Date      models.Date   `json:"date"`
		Period    models.Period `json:"period"`
		EditingID string        `json:"editingId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	decision, err := s.svc.PlanSlot(r.Context(), body.Date, body.Period, body.EditingID)
	if err != nil {
		s.writeServiceError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, decision)
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bookings := s.svc.Bookings()
		if r.URL.Query().Get("year") != "" {
			year, month, ok := yearMonthParams(w, r)
			if !ok {
				return
			}
			filtered := bookings[:0]
			for _, b := range bookings {
				if b.Date.SameMonth(year, month) {
					filtered = append(filtered, b)
				}
			}
			bookings = filtered
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})

	case http.MethodPost:
		var body struct {
			service.BookingInput
			PlanID string `json:"planId"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		booking, decision, err := s.svc.CreateBooking(r.Context(), body.BookingInput, body.PlanID)
		if err != nil {
			s.writeServiceError(w, err, decision)
			return
		}
		writeJSON(w, http.StatusCreated, booking)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	id, rest, ok := pathID(w, r, "/api/v1/bookings/")
	if !ok {
		return
	}

	if rest == "message" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		message, err := s.svc.BookingMessage(id)
		if err != nil {
			s.writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": message})
		return
	}
	if rest != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		booking, err := s.svc.BookingByID(id)
		if err != nil {
			s.writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	case http.MethodPut:
		var body service.BookingInput
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		booking, err := s.svc.UpdateBooking(r.Context(), id, body)
		if err != nil {
			s.writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	case http.MethodDelete:
		if err := s.svc.DeleteBooking(r.Context(), id); err != nil {
			s.writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"expenses": s.svc.Expenses()})

	case http.MethodPost:
		var body service.ExpenseInput
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		expense, err := s.svc.CreateExpense(r.Context(), body)
		if err != nil {
			s.writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, expense)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id, rest, ok := pathID(w, r, "/api/v1/expenses/")
	if !ok {
		return
	}
	if rest != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var body service.ExpenseInput
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		expense, err := s.svc.UpdateExpense(r.Context(), id, body)
		if err != nil {
			s.writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, expense)

	case http.MethodDelete:
		if err := s.svc.DeleteExpense(r.Context(), id); err != nil {
			s.writeServiceError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.svc.MonthlyStats(year, month))
}

func (s *HTTPServer) handleYearlyStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}

	writeJSON(w, http.StatusOK, s.svc.YearlyStats(year))
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, err := models.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date; expected YYYY-MM-DD")
		return
	}
	to, err := models.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date; expected YYYY-MM-DD")
		return
	}
	if to.String() < from.String() {
		writeError(w, http.StatusBadRequest, "to must not precede from")
		return
	}

	path, err := s.svc.ExportRange(from, to)
	if err != nil {
		s.logger.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

// writeServiceError maps service sentinel errors onto HTTP statuses. A
// non-nil decision rides along with conflict responses so the client can
// confirm or abandon the slot change.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error, decision *service.SlotDecision) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrExpenseNotFound),
		errors.Is(err, service.ErrPlanNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDayFullyBooked),
		errors.Is(err, service.ErrConfirmationRequired),
		errors.Is(err, service.ErrPlanMismatch),
		errors.Is(err, service.ErrSlotOccupied):
		payload := map[string]any{"error": err.Error()}
		if decision != nil {
			payload["decision"] = decision
		}
		writeJSON(w, http.StatusConflict, payload)
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(endpointLabel(r.URL.Path), strconv.Itoa(recorder.status))
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// endpointLabel collapses identifier path segments so the metric stays
// low-cardinality.
func endpointLabel(path string) string {
	for _, prefix := range []string{"/api/v1/bookings/", "/api/v1/expenses/"} {
		if strings.HasPrefix(path, prefix) {
			if strings.HasSuffix(path, "/message") {
				return prefix + ":id/message"
			}
			return prefix + ":id"
		}
	}
	return path
}

func yearMonthParams(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year is required")
		return 0, 0, false
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return 0, 0, false
	}
	return year, time.Month(monthNum), true
}

// pathID splits "/prefix/{id}" and "/prefix/{id}/{rest}".
func pathID(w http.ResponseWriter, r *http.Request, prefix string) (id, rest string, ok bool) {
	trimmed := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.SplitN(trimmed, "/", 2)
	id = strings.TrimSpace(parts[0])
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return "", "", false
	}
	if len(parts) == 2 {
		rest = parts[1]
	}
	return id, rest, true
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
