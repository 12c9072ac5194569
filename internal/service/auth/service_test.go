package auth

import (
	"context"
	"testing"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/user"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/jwt"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users map[string]user.User
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := s.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T, users ...user.User) *Service {
	t.Helper()

	repo := &stubUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		repo.users[u.Email] = u
	}

	jwtService, err := jwt.NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	return NewService(repo, jwtService)
}

func testUser(t *testing.T, email, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{
		ID:           "user-1",
		CompanyID:    "company-1",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleHR,
	}
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t, testUser(t, "hr@example.com", "s3cret"))

	got, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "hr@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, got.AccessToken)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "company-1", got.CompanyID)
	assert.Equal(t, user.RoleHR, got.Role)
	assert.Greater(t, got.ExpiresAt, int64(0))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, testUser(t, "hr@example.com", "s3cret"))

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "hr@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t, testUser(t, "hr@example.com", "s3cret"))

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})

	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_InvalidRequest(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "not-an-email",
		Password: "",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}
