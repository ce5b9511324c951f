package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeCleanupStore struct {
	userCutoff  int64
	tokenCutoff int64
}

func (s *fakeCleanupStore) DeleteUnverifiedBefore(_ context.Context, cutoff int64) (int64, error) {
	s.userCutoff = cutoff
	return 2, nil
}

func (s *fakeCleanupStore) DeleteBefore(_ context.Context, cutoff int64) (int64, error) {
	s.tokenCutoff = cutoff
	return 5, nil
}

func TestAccountCleanupCutoff(t *testing.T) {
	store := &fakeCleanupStore{}
	j := NewAccountCleanupJob(store, store, 3*time.Minute)
	j.now = func() int64 { return 1000 }

	require.NoError(t, j.Run(context.Background()))
	require.Equal(t, int64(820), store.userCutoff)
	require.Equal(t, int64(820), store.tokenCutoff)
}

func TestAccountCleanupDefaultAge(t *testing.T) {
	j := NewAccountCleanupJob(&fakeCleanupStore{}, &fakeCleanupStore{}, 0)
	require.Equal(t, 3*time.Minute, j.maxAge)
}
