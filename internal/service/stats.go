package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/antigravity/foosballTracker/internal/models"
)

// InterestingStats ranks players per point class across every game,
// active and ended. For each class observed anywhere, the result
// holds (player, count) pairs with count > 0, sorted descending by
// count. Tie order is whatever map iteration produced; callers must
// not rely on it.
func (s *Service) InterestingStats(ctx context.Context) (map[int][]models.ClassCount, error) {
	points, err := s.store.AllPoints(ctx)
	if err != nil {
		return nil, err
	}

	// player -> class -> count
	perPlayer := make(map[int]map[int]int)
	classes := make(map[int]bool)
	for _, p := range points {
		if p.Class < 0 {
			return nil, fmt.Errorf("%w: point %d has class %d", ErrValidation, p.ID, p.Class)
		}
		if perPlayer[p.PlayerID] == nil {
			perPlayer[p.PlayerID] = make(map[int]int)
		}
		perPlayer[p.PlayerID][p.Class]++
		classes[p.Class] = true
	}

	stats := make(map[int][]models.ClassCount, len(classes))
	for class := range classes {
		var ranking []models.ClassCount
		for playerID, counts := range perPlayer {
			if n := counts[class]; n > 0 {
				ranking = append(ranking, models.ClassCount{PlayerID: playerID, Count: n})
			}
		}
		sort.SliceStable(ranking, func(i, j int) bool {
			return ranking[i].Count > ranking[j].Count
		})
		stats[class] = ranking
	}
	return stats, nil
}
