package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/foosballTracker/internal/models"
)

func TestInterestingStatsRanksPerClass(t *testing.T) {
	st := newFakeStore()
	st.addPlayers(4)
	svc := newTestService(st)
	ctx := context.Background()

	id, _ := svc.NewGame(ctx, 1, 2, 3, 4)
	now := time.Now()
	add := func(playerID, class, n int) {
		for i := 0; i < n; i++ {
			require.NoError(t, svc.AddPoint(ctx, id, playerID, class, now.Add(time.Duration(i)*time.Second)))
		}
	}
	add(1, 0, 3)
	add(2, 0, 5)
	add(3, 0, 1)
	add(1, 1, 2)
	add(4, 2, 1)

	stats, err := svc.InterestingStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, []models.ClassCount{{PlayerID: 2, Count: 5}, {PlayerID: 1, Count: 3}, {PlayerID: 3, Count: 1}}, stats[0])
	assert.Equal(t, []models.ClassCount{{PlayerID: 1, Count: 2}}, stats[1])
	assert.Equal(t, []models.ClassCount{{PlayerID: 4, Count: 1}}, stats[2])
}

func TestInterestingStatsOmitsZeroCounts(t *testing.T) {
	st := newFakeStore()
	st.addPlayers(4)
	svc := newTestService(st)
	ctx := context.Background()

	id, _ := svc.NewGame(ctx, 1, 2, 3, 4)
	now := time.Now()
	require.NoError(t, svc.AddPoint(ctx, id, 1, 0, now))
	require.NoError(t, svc.AddPoint(ctx, id, 2, 1, now))

	stats, err := svc.InterestingStats(ctx)
	require.NoError(t, err)
	for class, ranking := range stats {
		for _, cc := range ranking {
			assert.NotZero(t, cc.Count, "class %d must not list zero counts", class)
		}
	}
	assert.NotContains(t, playerIDsOf(stats[0]), 2)
	assert.NotContains(t, playerIDsOf(stats[1]), 1)
}

// Rankings span every game, ended ones included, not just one game.
func TestInterestingStatsSpansAllGames(t *testing.T) {
	st := newFakeStore()
	st.addPlayers(4)
	svc := newTestService(st)
	ctx := context.Background()

	id1, _ := svc.NewGame(ctx, 1, 2, 3, 4)
	now := time.Now()
	require.NoError(t, svc.AddPoint(ctx, id1, 1, 0, now))
	require.NoError(t, svc.EndGame(ctx, id1, now.Add(time.Hour)))

	id2, _ := svc.NewGame(ctx, 1, 3, 2, 4)
	require.NoError(t, svc.AddPoint(ctx, id2, 1, 0, now.Add(2*time.Hour)))

	stats, err := svc.InterestingStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ClassCount{{PlayerID: 1, Count: 2}}, stats[0])
}

func TestInterestingStatsEmptyStore(t *testing.T) {
	svc := newTestService(newFakeStore())

	stats, err := svc.InterestingStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestInterestingStatsRejectsMalformedClass(t *testing.T) {
	st := newFakeStore()
	svc := newTestService(st)
	st.points = append(st.points, models.Point{ID: 1, GameID: 0, PlayerID: 1, Class: -2, CreatedAt: time.Now()})

	_, err := svc.InterestingStats(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
}

func playerIDsOf(ranking []models.ClassCount) []int {
	var ids []int
	for _, cc := range ranking {
		ids = append(ids, cc.PlayerID)
	}
	return ids
}
