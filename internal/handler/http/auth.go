package http

import (
	"encoding/json"
	"net/http"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/user"
	"github.com/kudu-hr/payroll-engine-go/internal/handler/http/response"
	"github.com/kudu-hr/payroll-engine-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, token)
}
