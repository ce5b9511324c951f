package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookhubapp/bookhub/internal/model"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/jwt"
)

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return appErr.ErrConflict
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, userID string) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return user, nil
}

func newTestAuthService(users *fakeUserStore, tokens *fakeOtpStore, sender EmailSender) *AuthService {
	otps := newTestOtpService(users, tokens, sender)
	return NewAuthService(users, otps, []byte("test-secret"), time.Hour)
}

func TestRegisterCreatesPendingUserAndIssuesCode(t *testing.T) {
	users := newFakeUserStore()
	tokens := &fakeOtpStore{}
	sender := &recordingSender{}
	svc := newTestAuthService(users, tokens, sender)

	user, err := svc.Register(context.Background(), "Reader@Example.com", "reader", "secret")
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", user.Email)
	require.Equal(t, model.UserInactive, user.IsActive)
	require.Equal(t, 0, user.IsVerified)
	require.Len(t, tokens.tokens, 1)
	require.Equal(t, []string{"reader@example.com"}, sender.sent)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeOtpStore{}, &recordingSender{})

	_, err := svc.Register(context.Background(), "reader@example.com", "reader", "secret")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "reader@example.com", "other", "secret")
	require.ErrorIs(t, err, appErr.ErrConflict)
}

func TestLoginRejectsUnverified(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeOtpStore{}, &recordingSender{})

	_, err := svc.Register(context.Background(), "reader@example.com", "reader", "secret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "reader@example.com", "secret")
	require.ErrorIs(t, err, appErr.ErrForbidden)
}

func TestLoginAfterVerification(t *testing.T) {
	users := newFakeUserStore()
	tokens := &fakeOtpStore{}
	svc := newTestAuthService(users, tokens, &recordingSender{})

	_, err := svc.Register(context.Background(), "reader@example.com", "reader", "secret")
	require.NoError(t, err)
	require.NoError(t, svc.otps.VerifyEmail(context.Background(), "reader", tokens.lastCode()))

	user, token, err := svc.Login(context.Background(), "reader", "secret")
	require.NoError(t, err)
	require.Equal(t, "reader", user.Username)

	claims, err := jwt.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	tokens := &fakeOtpStore{}
	svc := newTestAuthService(users, tokens, &recordingSender{})

	_, err := svc.Register(context.Background(), "reader@example.com", "reader", "secret")
	require.NoError(t, err)
	require.NoError(t, svc.otps.VerifyEmail(context.Background(), "reader", tokens.lastCode()))

	_, _, err = svc.Login(context.Background(), "reader", "wrong")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}
