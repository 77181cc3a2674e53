package service

import (
	"context"
	"fmt"

	"github.com/antigravity/foosballTracker/internal/models"
)

// Score tallies the game's ledger. Every point is worth exactly 1 no
// matter its class; class is stats metadata only. Do not "fix" this
// by weighting doubles or triples.
func (s *Service) Score(ctx context.Context, gameID int) (models.Score, error) {
	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return models.Score{}, err
	}

	points, err := s.store.AllPoints(ctx)
	if err != nil {
		return models.Score{}, err
	}

	var score models.Score
	for _, p := range points {
		if p.GameID != gameID {
			continue
		}
		if p.PlayerID < 0 {
			return models.Score{}, fmt.Errorf("%w: point %d has no player", ErrValidation, p.ID)
		}
		switch p.PlayerID {
		case g.Player1ID:
			score.Player1++
			score.TeamA++
		case g.Player2ID:
			score.Player2++
			score.TeamB++
		case g.Player3ID:
			score.Player3++
			score.TeamA++
		case g.Player4ID:
			score.Player4++
			score.TeamB++
		default:
			return models.Score{}, fmt.Errorf("%w: point %d references player %d not in game %d",
				ErrConsistency, p.ID, p.PlayerID, gameID)
		}
	}
	return score, nil
}
