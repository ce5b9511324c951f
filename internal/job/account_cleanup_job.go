package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bookhubapp/bookhub/internal/pkg/timeutil"
)

type cleanupUserStore interface {
	DeleteUnverifiedBefore(ctx context.Context, cutoff int64) (int64, error)
}

type cleanupTokenStore interface {
	DeleteBefore(ctx context.Context, cutoff int64) (int64, error)
}

// AccountCleanupJob removes accounts that never completed email
// verification, together with OTP tokens that can no longer be used.
type AccountCleanupJob struct {
	users  cleanupUserStore
	tokens cleanupTokenStore
	maxAge time.Duration
	now    func() int64
}

func NewAccountCleanupJob(users cleanupUserStore, tokens cleanupTokenStore, maxAge time.Duration) *AccountCleanupJob {
	if maxAge <= 0 {
		maxAge = 3 * time.Minute
	}
	return &AccountCleanupJob{
		users:  users,
		tokens: tokens,
		maxAge: maxAge,
		now:    timeutil.NowUnix,
	}
}

func (j *AccountCleanupJob) Name() string {
	return "account_cleanup"
}

func (j *AccountCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now() - int64(j.maxAge/time.Second)
	logger := logutil.GetLogger(ctx).With(zap.Int64("cutoff", cutoff))

	removedUsers, err := j.users.DeleteUnverifiedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	removedTokens, err := j.tokens.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if removedUsers > 0 || removedTokens > 0 {
		logger.Info("cleanup done",
			zap.Int64("removed_users", removedUsers),
			zap.Int64("removed_tokens", removedTokens))
	}
	return nil
}
