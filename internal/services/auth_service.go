package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/config"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
	"github.com/ppsociety/membership-backend/internal/utils"
	"github.com/ppsociety/membership-backend/pkg/mailer"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = time.Hour

// AuthService handles member registration and authentication
type AuthService struct {
	userRepo repositories.UserRepository
	mailer   mailer.Mailer
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, m mailer.Mailer, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   m,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates a member account and sends a verification mail. The mail
// send is best-effort; a delivery failure does not fail the registration.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Password:          string(hashed),
		Role:              models.RoleMember,
		Organization:      req.Organization,
		Phone:             req.Phone,
		VerificationToken: uuid.NewString(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		return nil, apperrors.Internal(err)
	}

	s.sendMail(user.Email, "Verify your email",
		fmt.Sprintf("Welcome, %s. Use this token to verify your email address: %s", user.FirstName, user.VerificationToken))

	return user, nil
}

// Login verifies credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, apperrors.Unauthorized("Invalid credentials")
		}
		return "", nil, apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, s.cfg)
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}
	return token, user, nil
}

// VerifyEmail marks the account matching the token as verified and clears
// the token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.Validation("Verification token is required")
	}

	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Invalid verification token")
		}
		return apperrors.Internal(err)
	}

	user.IsEmailVerified = true
	user.VerificationToken = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ForgotPassword issues a reset token and mails it. Unknown emails succeed
// silently so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return apperrors.Internal(err)
	}

	user.ResetPasswordToken = uuid.NewString()
	user.ResetPasswordExpires = time.Now().Add(resetTokenTTL)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}

	s.sendMail(user.Email, "Reset your password",
		fmt.Sprintf("Use this token to reset your password: %s. It expires in one hour.", user.ResetPasswordToken))

	return nil
}

// ResetPassword sets a new password for the account matching an unexpired
// reset token and clears the token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Invalid or expired reset token")
		}
		return apperrors.Internal(err)
	}
	if time.Now().After(user.ResetPasswordExpires) {
		return apperrors.NotFound("Invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(err)
	}

	user.Password = string(hashed)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = time.Time{}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *AuthService) sendMail(to, subject, body string) {
	if err := s.mailer.Send(to, subject, body); err != nil {
		s.logger.Warn("mail delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
