package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	expiration time.Duration
	tokenAuth  *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, expiration string) (Service, error) {
	d, err := time.ParseDuration(expiration)
	if err != nil {
		return nil, fmt.Errorf("parse token expiration: %w", err)
	}

	return &JWTService{
		expiration: d,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken issues a token carrying the tenant and employee
// identity the handlers need for scoping.
func (j *JWTService) GenerateAccessToken(u user.User) (string, int64, error) {
	expiresAt := time.Now().Add(j.expiration).Unix()

	claims := map[string]interface{}{
		"user_id":    u.ID,
		"email":      u.Email,
		"company_id": u.CompanyID,
		"role":       string(u.Role),
		"exp":        expiresAt,
	}
	if u.EmployeeID != nil {
		claims["employee_id"] = *u.EmployeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("encode access token: %w", err)
	}

	return tokenString, expiresAt, nil
}
