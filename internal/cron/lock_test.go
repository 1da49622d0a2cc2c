package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRedis struct {
	values   map[string]string
	releases int
}

func (m *memoryRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryRedis) DelIfValue(_ context.Context, key, value string) (bool, error) {
	m.releases++
	if m.values[key] != value {
		return false, nil
	}
	delete(m.values, key)
	return true, nil
}

func TestRedisLockIsExclusive(t *testing.T) {
	store := &memoryRedis{values: map[string]string{}}
	ctx := context.Background()

	first, err := NewRedisLock(store, "lock:cron", 0)
	require.NoError(t, err)
	second, err := NewRedisLock(store, "lock:cron", 0)
	require.NoError(t, err)

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, second.Release(ctx), "non-owner release is a no-op")
	assert.Contains(t, store.values, "lock:cron")

	require.NoError(t, first.Release(ctx))
	assert.NotContains(t, store.values, "lock:cron")

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLockKeepsForeignOwner(t *testing.T) {
	store := &memoryRedis{values: map[string]string{}}
	ctx := context.Background()
	lock, err := NewRedisLock(store, "lock:cron", time.Minute)
	require.NoError(t, err)

	ok, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// expired and taken over by another worker
	store.values["lock:cron"] = "someone-else"
	require.NoError(t, lock.Release(ctx))
	assert.Equal(t, "someone-else", store.values["lock:cron"])
	assert.Equal(t, 1, store.releases, "owner check and delete are one call")

	require.NoError(t, lock.Release(ctx), "second release is a no-op")
	assert.Equal(t, 1, store.releases)
}

func TestRedisLockReleaseError(t *testing.T) {
	lock, err := NewRedisLock(failingRedis{}, "lock:cron", time.Minute)
	require.NoError(t, err)
	lock.owner = "me"

	err = lock.Release(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errRedisDown)
}

var errRedisDown = errors.New("connection refused")

type failingRedis struct{}

func (failingRedis) SetNX(context.Context, string, any, time.Duration) (bool, error) {
	return false, errRedisDown
}

func (failingRedis) DelIfValue(context.Context, string, string) (bool, error) {
	return false, errRedisDown
}

func TestNewRedisLockValidates(t *testing.T) {
	_, err := NewRedisLock(nil, "k", 0)
	assert.Error(t, err)
	_, err = NewRedisLock(&memoryRedis{}, "", 0)
	assert.Error(t, err)
}

func TestLocalLock(t *testing.T) {
	var lock LocalLock
	ctx := context.Background()

	ok, _ := lock.Acquire(ctx)
	assert.True(t, ok)
	ok, _ = lock.Acquire(ctx)
	assert.False(t, ok)
	require.NoError(t, lock.Release(ctx))
	ok, _ = lock.Acquire(ctx)
	assert.True(t, ok)
}
