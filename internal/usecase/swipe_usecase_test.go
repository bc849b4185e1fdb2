package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobbify/internal/domain/swipe"
)

func TestSwipes_Record_UpsertsAndInvalidates(t *testing.T) {
	repo := newFakeSwipeRepo()
	cache := newFakeResultCache()
	uc := NewSwipes(repo, cache, nil)

	userID := uuid.New()
	err := uc.Record(context.Background(), userID, SwipeInput{
		JobID:      "remoteok-1",
		Direction:  swipe.DirectionRight,
		JobTitle:   "Go Developer",
		JobCompany: "Acme",
	})
	require.NoError(t, err)

	seen, err := repo.ListJobIDs(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, seen["remoteok-1"])
	assert.Equal(t, 1, cache.invalidations)
}

// Swiping the same job twice keeps one record with the latest direction.
func TestSwipes_Record_SecondSwipeOverwrites(t *testing.T) {
	repo := newFakeSwipeRepo()
	uc := NewSwipes(repo, nil, nil)

	userID := uuid.New()
	require.NoError(t, uc.Record(context.Background(), userID, SwipeInput{JobID: "j1", Direction: swipe.DirectionLeft}))
	require.NoError(t, uc.Record(context.Background(), userID, SwipeInput{JobID: "j1", Direction: swipe.DirectionRight}))

	records, err := repo.ListByUser(context.Background(), userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, swipe.DirectionRight, records[0].Direction)
}

func TestSwipes_Record_RejectsBadInput(t *testing.T) {
	uc := NewSwipes(newFakeSwipeRepo(), nil, nil)
	userID := uuid.New()

	assert.ErrorIs(t, uc.Record(context.Background(), userID, SwipeInput{JobID: "", Direction: swipe.DirectionLeft}), ErrInvalidInput)
	assert.ErrorIs(t, uc.Record(context.Background(), userID, SwipeInput{JobID: "j1", Direction: "up"}), ErrInvalidInput)
	bad := 150
	assert.ErrorIs(t, uc.Record(context.Background(), userID, SwipeInput{JobID: "j1", Direction: swipe.DirectionLeft, MatchScore: &bad}), ErrInvalidInput)
	assert.ErrorIs(t, uc.Record(context.Background(), uuid.Nil, SwipeInput{JobID: "j1", Direction: swipe.DirectionLeft}), ErrInvalidInput)
}
