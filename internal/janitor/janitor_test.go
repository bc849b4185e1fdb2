package janitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobbify/internal/domain/job"
)

type fakeCacheRepo struct {
	sweeps int
}

func (f *fakeCacheRepo) Upsert(context.Context, []job.CachedEntry) error { return nil }

func (f *fakeCacheRepo) ListFresh(context.Context, job.Source, int, int) ([]job.CachedEntry, error) {
	return nil, nil
}

func (f *fakeCacheRepo) HasFresh(context.Context, job.Source, time.Duration) (bool, error) {
	return false, nil
}

func (f *fakeCacheRepo) DeleteExpired(context.Context) (int64, error) {
	f.sweeps++
	return 0, nil
}

type fakeLocker struct {
	granted bool
	calls   int
}

func (f *fakeLocker) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	f.calls++
	return f.granted, nil
}

func TestJanitor_Sweep_RunsWhenLockGranted(t *testing.T) {
	repo := &fakeCacheRepo{}
	lock := &fakeLocker{granted: true}

	j := New(repo, lock, nil, "@hourly")
	j.sweep()

	assert.Equal(t, 1, lock.calls)
	assert.Equal(t, 1, repo.sweeps)
}

func TestJanitor_Sweep_SkipsWhenLockHeld(t *testing.T) {
	repo := &fakeCacheRepo{}
	lock := &fakeLocker{granted: false}

	j := New(repo, lock, nil, "@hourly")
	j.sweep()

	assert.Equal(t, 0, repo.sweeps, "a held lock means another instance sweeps")
}

func TestJanitor_Start_DisabledWithoutSpec(t *testing.T) {
	j := New(&fakeCacheRepo{}, &fakeLocker{granted: true}, nil, "")
	require.NoError(t, j.Start())
	assert.Nil(t, j.cron)
	j.Stop()
}
