package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/payroll"
)

// Handler serves the JSON API over the same services the bot uses.
type Handler struct {
	Shifts    domain.ShiftService
	Employees *service.EmployeeService
	Async     *service.AsyncService
}

func NewHandler(shifts domain.ShiftService, employees *service.EmployeeService, async *service.AsyncService) *Handler {
	return &Handler{Shifts: shifts, Employees: employees, Async: async}
}

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.GetAllEmployees(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		out[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateEmployee creates or renames an employee. The rate is set only on insert.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.ID == 0 || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}
	e := domain.Employee{ID: req.ID, Name: req.Name, ChatID: req.ChatID, Role: req.Role, HourlyRate: req.HourlyRate}
	if err := h.Employees.CreateOrUpdateEmployee(r.Context(), e); err != nil {
		writeServiceError(w, err)
		return
	}
	saved, err := h.Employees.GetEmployeeByID(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(saved))
}

// SetRate changes an employee's hourly rate.
// PUT /api/employees/{id}/rate
func (h *Handler) SetRate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Employees.SetHourlyRate(r.Context(), id, req.HourlyRate); err != nil {
		writeServiceError(w, err)
		return
	}
	e, err := h.Employees.GetEmployeeByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(e))
}

// CreateShift stores a shift and returns it with its computed pay.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeShift(w, r)
	if !ok {
		return
	}
	shift, err := h.Shifts.AddShift(r.Context(), draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

// PreviewShift computes a shift without storing it.
// POST /api/shifts/preview
func (h *Handler) PreviewShift(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeShift(w, r)
	if !ok {
		return
	}
	computed, err := h.Shifts.PreviewShift(r.Context(), draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComputedDTO(computed))
}

// GetShift returns a shift recomputed from its stored inputs.
// GET /api/shifts/{id}
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	shift, err := h.Shifts.GetShift(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// PreviewShiftUpdate computes an edit of a stored shift without saving it.
// POST /api/shifts/{id}/preview
func (h *Handler) PreviewShiftUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeShift(w, r)
	if !ok {
		return
	}
	computed, err := h.Shifts.PreviewShiftUpdate(r.Context(), id, draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComputedDTO(computed))
}

// UpdateShift replaces a shift's inputs.
// PUT /api/shifts/{id}
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeShift(w, r)
	if !ok {
		return
	}
	shift, err := h.Shifts.UpdateShift(r.Context(), id, draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// SetShiftStatus moves a shift between PENDING, PROCESSED and PAID.
// PUT /api/shifts/{id}/status
func (h *Handler) SetShiftStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	status, err := payroll.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid status", err)
		return
	}
	if err := h.Shifts.SetStatus(r.Context(), id, status); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary aggregates shifts by month, fortnight and employee.
// GET /api/summary?employee_id=&year=&month=
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var f payroll.Filter
	q := r.URL.Query()
	for name, dst := range map[string]*int{"employee_id": &f.EmployeeID, "year": &f.Year} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid "+name, err)
				return
			}
			*dst = n
		}
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "invalid month", err)
			return
		}
		f.Month = time.Month(m)
	}

	summary, err := h.Async.Summary(r.Context(), h.Shifts, f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

// PayFortnight marks every shift of one fortnight PAID.
// POST /api/summary/pay
func (h *Handler) PayFortnight(w http.ResponseWriter, r *http.Request) {
	var req PayFortnightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	key, err := payroll.ParseFortnightKey(req.Fortnight)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fortnight", err)
		return
	}
	ids, err := h.Shifts.ConfirmFortnightPayment(r.Context(), req.EmployeeID, key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	writeJSON(w, http.StatusOK, PayFortnightResponse{ShiftIDs: ids})
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeShift(w http.ResponseWriter, r *http.Request) (domain.ShiftDraft, bool) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return domain.ShiftDraft{}, false
	}
	draft, err := req.toDraft()
	if payroll.IsValidationError(err) {
		writeServiceError(w, err)
		return domain.ShiftDraft{}, false
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shift", err)
		return domain.ShiftDraft{}, false
	}
	return draft, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case payroll.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrShiftNotFound), errors.Is(err, domain.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrShiftAlreadyPaid):
		writeError(w, http.StatusConflict, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}
