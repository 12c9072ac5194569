package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/kudu-hr/payroll-engine-go/internal/handler/http/response"
	leaveService "github.com/kudu-hr/payroll-engine-go/internal/service/leave"
)

type LeaveHandler interface {
	PreviewDuration(w http.ResponseWriter, r *http.Request)
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveService.Service
}

func NewLeaveHandler(svc *leaveService.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: svc}
}

// PreviewDuration implements LeaveHandler. Mid-edit date ranges are fine;
// the service returns a zero breakdown for anything unparseable.
func (h *LeaveHandlerImpl) PreviewDuration(w http.ResponseWriter, r *http.Request) {
	var req leave.DurationPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	breakdown, err := h.leaveService.PreviewDuration(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdown)
}

// SubmitRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.SubmitRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// ApproveRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	approved, err := h.leaveService.ApproveRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", approved)
}

// RejectRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.DecideRequestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	rejected, err := h.leaveService.RejectRequest(r.Context(), requestID, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", rejected)
}

// Balances implements LeaveHandler. as_of defaults to today; passing an
// explicit date makes the response reproducible.
func (h *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	asOf := time.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "as_of must be YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	balances, err := h.leaveService.Balances(r.Context(), employeeID, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}
