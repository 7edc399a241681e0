package service

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

		sessions := new(MockSessionStore)
		sessions.On("Create", ctx, mock.AnythingOfType("string"), 7*24*time.Hour).Return("token-1", nil)

		svc := NewUserService(userRepo, sessions, zerolog.Nop())
		resp, err := svc.Register(ctx, &model.RegisterRequest{
			Email: "Jane@Example.com", Password: "hunter2hunter2", Name: "Jane",
		})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.Equal(t, "token-1", resp.SessionToken)

		userRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleCustomer && u.PasswordHash != nil && *u.PasswordHash != "hunter2hunter2"
		}))
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(&model.User{ID: "u1"}, nil)

		svc := NewUserService(userRepo, new(MockSessionStore), zerolog.Nop())
		_, err := svc.Register(ctx, &model.RegisterRequest{
			Email: "jane@example.com", Password: "hunter2hunter2", Name: "Jane",
		})
		assert.ErrorIs(t, err, model.ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockSessionStore), zerolog.Nop())
		_, err := svc.Register(ctx, &model.RegisterRequest{
			Email: "jane@example.com", Password: "short", Name: "Jane",
		})
		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	hash := hashOf(t, "correct-horse")

	t.Run("success with remember-me TTL", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(&model.User{
			ID: "u1", Email: "jane@example.com", PasswordHash: hash, Role: model.RoleCustomer,
		}, nil)

		sessions := new(MockSessionStore)
		sessions.On("Create", ctx, "u1", 30*24*time.Hour).Return("token-1", nil)

		svc := NewUserService(userRepo, sessions, zerolog.Nop())
		resp, err := svc.Login(ctx, &model.LoginRequest{
			Email: "jane@example.com", Password: "correct-horse", RememberMe: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "token-1", resp.SessionToken)
		sessions.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(&model.User{
			ID: "u1", PasswordHash: hash,
		}, nil)

		sessions := new(MockSessionStore)
		svc := NewUserService(userRepo, sessions, zerolog.Nop())
		_, err := svc.Login(ctx, &model.LoginRequest{Email: "jane@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

		svc := NewUserService(userRepo, new(MockSessionStore), zerolog.Nop())
		_, err := svc.Login(ctx, &model.LoginRequest{Email: "ghost@example.com", Password: "anything"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestUserService_AdminLogin_RejectsCustomer(t *testing.T) {
	ctx := context.Background()
	hash := hashOf(t, "correct-horse")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", ctx, "jane@example.com").Return(&model.User{
		ID: "u1", PasswordHash: hash, Role: model.RoleCustomer,
	}, nil)

	sessions := new(MockSessionStore)
	svc := NewUserService(userRepo, sessions, zerolog.Nop())

	_, err := svc.AdminLogin(ctx, &model.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, model.ErrForbidden)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_RequestPasswordReset_SilentOnUnknownEmail(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

	svc := NewUserService(userRepo, new(MockSessionStore), zerolog.Nop())
	assert.NoError(t, svc.RequestPasswordReset(ctx, "ghost@example.com"))
	userRepo.AssertNotCalled(t, "CreateResetToken", mock.Anything, mock.Anything)
}

func TestUserService_ConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("success marks token used", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetResetToken", ctx, "tok").Return(&model.PasswordResetToken{
			ID: "rt1", UserID: "u1", Token: "tok",
			ExpiresAt: time.Now().UTC().Add(30 * time.Minute),
		}, nil)
		userRepo.On("UpdatePassword", ctx, "u1", mock.AnythingOfType("string")).Return(nil)
		userRepo.On("MarkResetTokenUsed", ctx, "rt1").Return(nil)

		svc := NewUserService(userRepo, new(MockSessionStore), zerolog.Nop())
		require.NoError(t, svc.ConfirmPasswordReset(ctx, &model.ConfirmPasswordResetRequest{
			Token: "tok", NewPassword: "new-password-1",
		}))
		userRepo.AssertExpectations(t)
	})

	t.Run("expired token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetResetToken", ctx, "tok").Return(&model.PasswordResetToken{
			ID: "rt1", UserID: "u1", Token: "tok",
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
		}, nil)

		svc := NewUserService(userRepo, new(MockSessionStore), zerolog.Nop())
		err := svc.ConfirmPasswordReset(ctx, &model.ConfirmPasswordResetRequest{
			Token: "tok", NewPassword: "new-password-1",
		})
		assert.ErrorIs(t, err, model.ErrResetTokenExpired)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("used token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetResetToken", ctx, "tok").Return(&model.PasswordResetToken{
			ID: "rt1", UserID: "u1", Token: "tok", Used: true,
			ExpiresAt: time.Now().UTC().Add(30 * time.Minute),
		}, nil)

		svc := NewUserService(userRepo, new(MockSessionStore), zerolog.Nop())
		err := svc.ConfirmPasswordReset(ctx, &model.ConfirmPasswordResetRequest{
			Token: "tok", NewPassword: "new-password-1",
		})
		assert.ErrorIs(t, err, model.ErrResetTokenExpired)
	})
}
