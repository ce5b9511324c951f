package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/otp"
	"github.com/bookhubapp/bookhub/internal/pkg/password"
	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
)

type otpUserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Activate(ctx context.Context, userID string, mtime int64) error
	UpdatePassword(ctx context.Context, userID, passwordHash string, mtime int64) error
}

type otpTokenStore interface {
	Create(ctx context.Context, token *model.OtpToken) error
	LatestForUser(ctx context.Context, userID string) (*model.OtpToken, error)
}

// OtpService drives email verification and password reset. Tokens are
// append-only: issuing never touches older tokens, and validation only
// ever consults the latest one, so a resend supersedes everything
// before it.
type OtpService struct {
	users    otpUserStore
	tokens   otpTokenStore
	sender   EmailSender
	validity time.Duration
	baseURL  string
	now      func() int64
}

func NewOtpService(users otpUserStore, tokens otpTokenStore, sender EmailSender, validity time.Duration, baseURL string) *OtpService {
	if validity <= 0 {
		validity = 2 * time.Minute
	}
	return &OtpService{
		users:    users,
		tokens:   tokens,
		sender:   sender,
		validity: validity,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		now:      timeutil.NowUnix,
	}
}

// Issue creates a fresh token for the user and mails it. The token is
// persisted before the send, so a delivery failure leaves an orphan
// row; the next resend supersedes it.
func (s *OtpService) Issue(ctx context.Context, user *model.User) error {
	code, err := s.issueToken(ctx, user)
	if err != nil {
		return err
	}
	subject := "Email Verification"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour OTP is %s. It expires in %d minutes. Use the URL below to verify your email:\n\n%s/verify-email/%s",
		user.Username, code, int(s.validity.Minutes()), s.baseURL, user.Username,
	)
	if err := s.sender.Send(user.Email, subject, body); err != nil {
		return appErr.ErrDeliveryFailure
	}
	return nil
}

func (s *OtpService) issueReset(ctx context.Context, user *model.User) error {
	code, err := s.issueToken(ctx, user)
	if err != nil {
		return err
	}
	subject := "Password Reset"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour password reset code is %s. It expires in %d minutes. Use the URL below to choose a new password:\n\n%s/reset-password/%s",
		user.Username, code, int(s.validity.Minutes()), s.baseURL, user.Username,
	)
	if err := s.sender.Send(user.Email, subject, body); err != nil {
		return appErr.ErrDeliveryFailure
	}
	return nil
}

func (s *OtpService) issueToken(ctx context.Context, user *model.User) (string, error) {
	now := s.now()
	token := &model.OtpToken{
		ID:        newID(),
		UserID:    user.ID,
		Code:      otp.Generate(),
		Ctime:     now,
		ExpiresAt: now + int64(s.validity.Seconds()),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", err
	}
	return token.Code, nil
}

// VerifyEmail checks the submitted code against the user's latest
// token and activates the account on success. Activation happens only
// after every check passes; mismatch and expiry leave the account
// untouched.
func (s *OtpService) VerifyEmail(ctx context.Context, username, code string) error {
	username = strings.TrimSpace(username)
	code = strings.TrimSpace(code)
	if username == "" || code == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrUserNotFound
		}
		return err
	}
	if user.IsVerified != 0 {
		// terminal state stays terminal
		return appErr.ErrInvalid
	}
	latest, err := s.latest(ctx, user.ID)
	if err != nil {
		return err
	}
	if latest.Code != code {
		return appErr.ErrCodeMismatch
	}
	if s.now() > latest.ExpiresAt {
		return appErr.ErrCodeExpired
	}
	return s.users.Activate(ctx, user.ID, s.now())
}

// Resend issues a brand-new token; the previous one becomes moot
// because validation only looks at the latest.
func (s *OtpService) Resend(ctx context.Context, email string) error {
	user, err := s.resolveByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified != 0 {
		return appErr.ErrInvalid
	}
	return s.Issue(ctx, user)
}

func (s *OtpService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.resolveByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.issueReset(ctx, user)
}

// ConfirmPasswordReset updates the password hash only after the
// confirmation matches, the code matches, and the token is unexpired.
// Any failed check returns before the hash is touched.
func (s *OtpService) ConfirmPasswordReset(ctx context.Context, username, code, newPassword, confirmPassword string) error {
	if newPassword == "" || newPassword != confirmPassword {
		return appErr.ErrPasswordMismatch
	}
	username = strings.TrimSpace(username)
	code = strings.TrimSpace(code)
	if username == "" || code == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrUserNotFound
		}
		return err
	}
	latest, err := s.latest(ctx, user.ID)
	if err != nil {
		return err
	}
	if latest.Code != code {
		return appErr.ErrCodeMismatch
	}
	if s.now() > latest.ExpiresAt {
		return appErr.ErrCodeExpired
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash, s.now())
}

func (s *OtpService) latest(ctx context.Context, userID string) (*model.OtpToken, error) {
	latest, err := s.tokens.LatestForUser(ctx, userID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrNoCodeIssued
		}
		return nil, err
	}
	return latest, nil
}

func (s *OtpService) resolveByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
