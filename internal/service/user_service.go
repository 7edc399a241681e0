package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/repository"
	"shopfront/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL         = 7 * 24 * time.Hour
	rememberSessionTTL = 30 * 24 * time.Hour
	resetTokenTTL      = time.Hour
	minPasswordLength  = 8
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	sessions session.Store
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, sessions session.Store, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, model.NewValidationError("a valid email is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, model.NewValidationError("name is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, model.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hashStr,
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.sessions.Create(ctx, user.ID, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return sessionResponse(user, token), nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.SessionResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	ttl := sessionTTL
	if req.RememberMe {
		ttl = rememberSessionTTL
	}
	token, err := s.sessions.Create(ctx, user.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return sessionResponse(user, token), nil
}

func (s *userService) AdminLogin(ctx context.Context, req *model.LoginRequest) (*model.SessionResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, model.ErrForbidden
	}

	token, err := s.sessions.Create(ctx, user.ID, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("admin logged in")
	return sessionResponse(user, token), nil
}

// authenticate verifies credentials without distinguishing unknown
// email from wrong password.
func (s *userService) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, model.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, model.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req *model.ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return model.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || user.PasswordHash == nil {
		return model.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.OldPassword)) != nil {
		return model.NewDomainError(model.ErrCodeUnauthorized, "Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// RequestPasswordReset always succeeds from the caller's perspective so
// the endpoint cannot be used to probe registered emails.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil
	}

	token := &model.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.CreateResetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	// Token delivery (email) is outside this service; the token is
	// logged at debug level for development setups.
	s.logger.Debug().Str("user_id", user.ID).Str("reset_token", token.Token).Msg("password reset requested")
	return nil
}

func (s *userService) ConfirmPasswordReset(ctx context.Context, req *model.ConfirmPasswordResetRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return model.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	token, err := s.userRepo.GetResetToken(ctx, req.Token)
	if err != nil {
		return fmt.Errorf("failed to load reset token: %w", err)
	}
	if token == nil || token.Used || time.Now().UTC().After(token.ExpiresAt) {
		return model.ErrResetTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, token.UserID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.userRepo.MarkResetTokenUsed(ctx, token.ID); err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}

	s.logger.Info().Str("user_id", token.UserID).Msg("password reset completed")
	return nil
}

func (s *userService) ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error) {
	addresses, err := s.userRepo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *userService) CreateAddress(ctx context.Context, userID string, req *model.AddressRequest) (*model.UserAddress, error) {
	addr := &model.UserAddress{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	applyAddressRequest(addr, req)
	if addr.FullName == "" || addr.AddressLine1 == "" || addr.City == "" || addr.Country == "" {
		return nil, model.NewValidationError("full name, address line, city and country are required")
	}

	if addr.IsDefault {
		if err := s.userRepo.UnsetDefaultAddresses(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to unset default addresses: %w", err)
		}
	}
	if err := s.userRepo.CreateAddress(ctx, addr); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return addr, nil
}

func (s *userService) UpdateAddress(ctx context.Context, userID, addressID string, req *model.AddressRequest) (*model.UserAddress, error) {
	addr, err := s.userRepo.GetAddress(ctx, addressID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load address: %w", err)
	}
	if addr == nil {
		return nil, model.ErrAddressNotFound
	}

	applyAddressRequest(addr, req)
	if addr.IsDefault {
		if err := s.userRepo.UnsetDefaultAddresses(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to unset default addresses: %w", err)
		}
	}
	if err := s.userRepo.UpdateAddress(ctx, addr); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return addr, nil
}

func (s *userService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	ok, err := s.userRepo.DeleteAddress(ctx, addressID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if !ok {
		return model.ErrAddressNotFound
	}
	return nil
}

func applyAddressRequest(addr *model.UserAddress, req *model.AddressRequest) {
	if req.FullName != nil {
		addr.FullName = *req.FullName
	}
	if req.Phone != nil {
		addr.Phone = *req.Phone
	}
	if req.AddressLine1 != nil {
		addr.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		addr.AddressLine2 = req.AddressLine2
	}
	if req.City != nil {
		addr.City = *req.City
	}
	if req.State != nil {
		addr.State = *req.State
	}
	if req.PostalCode != nil {
		addr.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		addr.Country = *req.Country
	}
	if req.IsDefault != nil {
		addr.IsDefault = *req.IsDefault
	}
}

func sessionResponse(user *model.User, token string) *model.SessionResponse {
	return &model.SessionResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Picture:      user.Picture,
		SessionToken: token,
	}
}
