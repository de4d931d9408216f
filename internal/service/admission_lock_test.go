package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAdmissionLocker_RejectsSameNIKWhileHeld(t *testing.T) {
	locker := NewLocalAdmissionLocker()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- locker.WithNIKLock(context.Background(), "3201012345678901", func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	err := locker.WithNIKLock(context.Background(), "3201012345678901", func(ctx context.Context) error {
		t.Fatal("must not run while locked")
		return nil
	})
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	ran := false
	err = locker.WithNIKLock(context.Background(), "3201012345678902", func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	close(release)
	require.NoError(t, <-done)

	err = locker.WithNIKLock(context.Background(), "3201012345678901", func(ctx context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestLocalAdmissionLocker_ReturnsFnError(t *testing.T) {
	boom := errors.New("boom")
	err := NewLocalAdmissionLocker().WithNIKLock(context.Background(), "1", func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRedisAdmissionLocker_AcquireFailure(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	locker := NewRedisAdmissionLocker(client, time.Second)
	err := locker.WithNIKLock(context.Background(), "3201012345678901", func(ctx context.Context) error {
		t.Fatal("must not run without the lock")
		return nil
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLockNotAcquired)
	assert.Contains(t, err.Error(), "acquire admission lock")
}
