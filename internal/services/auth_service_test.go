package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/config"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/pkg/mailer"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: 3600,
		},
	}
}

func newTestAuthService(users ...*models.User) (*AuthService, *stubUserRepo, *mailer.MockMailer) {
	repo := newStubUserRepo(users...)
	mock := &mailer.MockMailer{}
	return NewAuthService(repo, mock, testConfig(), zap.NewNop()), repo, mock
}

func TestRegisterSendsVerificationMail(t *testing.T) {
	svc, _, mock := newTestAuthService()

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "Ada@Example.com",
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != models.RoleMember {
		t.Errorf("Role = %q, want member", user.Role)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("Email = %q, want lowercase", user.Email)
	}
	if user.VerificationToken == "" {
		t.Error("VerificationToken not issued")
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	if len(mock.Sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mock.Sent))
	}
	if mock.Sent[0].To != "ada@example.com" {
		t.Errorf("mail to = %q", mock.Sent[0].To)
	}
	if !strings.Contains(mock.Sent[0].Body, user.VerificationToken) {
		t.Error("verification mail does not carry the token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	req := &models.RegisterRequest{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", Password: "secret123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, req)
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("second Register err = %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &models.User{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  string(hashed),
		Role:      models.RoleMember,
	}
	svc, _, _ := newTestAuthService(user)
	ctx := context.Background()

	token, got, err := svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("no token issued")
	}
	if got.ID != user.ID {
		t.Errorf("user ID = %v, want %v", got.ID, user.ID)
	}

	if _, _, err := svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "wrong"}); !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Fatalf("wrong password err = %v, want unauthorized", err)
	}
	if _, _, err := svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "secret123"}); !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Fatalf("unknown email err = %v, want unauthorized", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.RegisterRequest{
		FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.VerifyEmail(ctx, "bogus"); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("bogus token err = %v, want not found", err)
	}
	if err := svc.VerifyEmail(ctx, user.VerificationToken); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	stored, _ := repo.FindByID(ctx, user.ID)
	if !stored.IsEmailVerified {
		t.Error("IsEmailVerified = false after verification")
	}
	if stored.VerificationToken != "" {
		t.Error("VerificationToken not cleared after verification")
	}
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	svc, _, mock := newTestAuthService()

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if len(mock.Sent) != 0 {
		t.Errorf("sent %d mails for unknown email, want 0", len(mock.Sent))
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.RegisterRequest{
		FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.ForgotPassword(ctx, "ada@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	stored, _ := repo.FindByID(ctx, user.ID)
	if stored.ResetPasswordToken == "" {
		t.Fatal("no reset token issued")
	}

	if err := svc.ResetPassword(ctx, stored.ResetPasswordToken, "newsecret"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, _, err := svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "newsecret"}); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}

	// The token is single-use.
	if err := svc.ResetPassword(ctx, stored.ResetPasswordToken, "again"); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("reused token err = %v, want not found", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	user := &models.User{
		Email:                "ada@example.com",
		ResetPasswordToken:   "expired-token",
		ResetPasswordExpires: time.Now().Add(-time.Minute),
	}
	svc, _, _ := newTestAuthService(user)

	err := svc.ResetPassword(context.Background(), "expired-token", "newsecret")
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expired token err = %v, want not found", err)
	}
}
