package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/payslip"
	"github.com/kudu-hr/payroll-engine-go/internal/handler/http/response"
	"github.com/kudu-hr/payroll-engine-go/internal/service/payroll"
)

type PayslipHandler interface {
	CalculateDraft(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type PayslipHandlerImpl struct {
	payrollService *payroll.Service
}

func NewPayslipHandler(payrollService *payroll.Service) PayslipHandler {
	return &PayslipHandlerImpl{payrollService: payrollService}
}

// CalculateDraft implements PayslipHandler. Called on every edit of the
// payslip form; returns totals plus suggested statutory deductions.
func (h *PayslipHandlerImpl) CalculateDraft(w http.ResponseWriter, r *http.Request) {
	var req payslip.DraftCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	draft, err := h.payrollService.CalculateDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, draft)
}

// Create implements PayslipHandler.
func (h *PayslipHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payslip.CreatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.payrollService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip created successfully", created)
}

// Get implements PayslipHandler.
func (h *PayslipHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	slip, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

// ListByEmployee implements PayslipHandler.
func (h *PayslipHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	slips, err := h.payrollService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slips)
}
