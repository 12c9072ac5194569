package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/user"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	userRepo user.UserRepository
	jwt      jwt.Service
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service) *Service {
	return &Service{
		userRepo: userRepo,
		jwt:      jwtService,
	}
}

// Login verifies the credentials and issues an access token. An unknown
// email and a wrong password produce the same error.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return user.LoginResponse{}, err
	}

	found, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.LoginResponse{}, user.ErrInvalidCredentials
		}
		return user.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return user.LoginResponse{}, user.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(found)
	if err != nil {
		return user.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return user.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		UserID:      found.ID,
		CompanyID:   found.CompanyID,
		EmployeeID:  found.EmployeeID,
		Role:        found.Role,
	}, nil
}
