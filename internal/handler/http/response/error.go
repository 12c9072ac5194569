package response

import (
	"errors"
	"net/http"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/company"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/employee"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/payslip"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/user"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/validator"
	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Company / regulation
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, regulation.ErrUnknownCountry):
		BadRequest(w, "No regulation profile for this country", nil)

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Payslip
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipPeriodExists):
		Conflict(w, "Payslip already exists for this period")
	case errors.Is(err, payslip.ErrInvalidPayslipPeriod):
		BadRequest(w, "Invalid payslip period", nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrLeaveTypeNotSelectable):
		BadRequest(w, "Leave type not selectable for this employee", nil)
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Invalid leave type", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
