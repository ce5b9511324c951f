package service

import (
	"context"
	"strings"
	"time"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/jwt"
	"github.com/bookhubapp/bookhub/internal/pkg/password"
	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
)

type authUserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

type AuthService struct {
	users     authUserStore
	otps      *OtpService
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users authUserStore, otps *OtpService, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, otps: otps, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a pending account (inactive, unverified) and issues
// the first verification code. The account exists even when the mail
// could not be delivered; the caller learns that via ErrDeliveryFailure
// and is expected to resend.
func (s *AuthService) Register(ctx context.Context, email, username, plainPassword string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || plainPassword == "" {
		return nil, appErr.ErrInvalid
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsActive:     model.UserInactive,
		IsVerified:   0,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.otps.Issue(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// Login accepts either the email or the username as identifier. An
// account that never completed verification cannot log in.
func (s *AuthService) Login(ctx context.Context, identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", appErr.ErrUnauthorized
	}
	var user *model.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.users.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if user.IsActive == model.UserInactive {
		return nil, "", appErr.ErrForbidden
	}
	token, err := jwt.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
