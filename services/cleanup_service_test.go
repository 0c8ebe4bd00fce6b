package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pilab.hu/ssoadmin/domain"
	"go.pilab.hu/ssoadmin/services"
)

func TestSweepDeletesAnyExpiredDimension(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Hour)

	repo := &fakeAuthorizationRepo{records: []domain.Authorization{
		// One expired dimension among live ones.
		{ID: "1", AccessTokenExpiresAt: &future, UserCodeExpiresAt: &past},
		// All dimensions in the future.
		{ID: "2", AccessTokenExpiresAt: &future, RefreshTokenExpiresAt: &future},
		// No dimensions present at all.
		{ID: "3"},
		// Every dimension expired.
		{ID: "4", AuthorizationCodeExpiresAt: &past, DeviceCodeExpiresAt: &past},
	}}
	svc := services.NewCleanupService(repo)

	rows, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
	assert.Len(t, repo.records, 2)
}

func TestSweepIdempotentUnderStableClock(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Hour)

	repo := &fakeAuthorizationRepo{records: []domain.Authorization{
		{ID: "1", RefreshTokenExpiresAt: &past},
		{ID: "2", RefreshTokenExpiresAt: &future},
	}}
	svc := services.NewCleanupService(repo)

	rows, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestSweepPropagatesStoreFailure(t *testing.T) {
	repo := &fakeAuthorizationRepo{err: errors.New("connection reset")}
	svc := services.NewCleanupService(repo)

	_, err := svc.Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc := services.NewCleanupService(&fakeAuthorizationRepo{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
