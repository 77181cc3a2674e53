package service

import (
	"context"
	"fmt"
	"time"

	"github.com/antigravity/foosballTracker/internal/models"
)

// AddPoint appends one scoring event to an active game. The player is
// not checked against the game's slots here; a bad reference surfaces
// as ErrConsistency when the score is computed.
func (s *Service) AddPoint(ctx context.Context, gameID, playerID, class int, at time.Time) error {
	if playerID < 0 {
		return fmt.Errorf("%w: player id %d", ErrValidation, playerID)
	}
	if class < 0 {
		return fmt.Errorf("%w: point class %d", ErrValidation, class)
	}

	unlock := s.lockGame(gameID)
	defer unlock()

	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !g.Active() {
		return fmt.Errorf("%w: game %d", ErrInactiveGame, gameID)
	}

	_, err = s.store.AppendPoint(ctx, models.Point{
		GameID:    gameID,
		PlayerID:  playerID,
		Class:     class,
		CreatedAt: at,
	})
	if err != nil {
		return err
	}
	s.log.Info("point added", "game_id", gameID, "player_id", playerID, "class", class)
	return nil
}

// RemovePoint deletes the most recent point for (game, player): the
// one with the latest timestamp, not the last inserted. No matching
// point is a no-op, not an error.
func (s *Service) RemovePoint(ctx context.Context, gameID, playerID int) error {
	unlock := s.lockGame(gameID)
	defer unlock()

	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !g.Active() {
		return fmt.Errorf("%w: game %d", ErrInactiveGame, gameID)
	}

	points, err := s.store.AllPoints(ctx)
	if err != nil {
		return err
	}
	var latest *models.Point
	for i := range points {
		p := points[i]
		if p.GameID != gameID || p.PlayerID != playerID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = &points[i]
		}
	}
	if latest == nil {
		s.log.Debug("no point to remove", "game_id", gameID, "player_id", playerID)
		return nil
	}

	if err := s.store.DeletePoint(ctx, latest.ID); err != nil {
		return err
	}
	s.log.Info("point removed", "game_id", gameID, "player_id", playerID)
	return nil
}
