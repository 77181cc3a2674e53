package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/antigravity/foosballTracker/internal/models"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	players []models.Player
	games   []models.Game
	points  []models.Point

	nextPlayerID int
	nextPointID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextPlayerID: 1, nextPointID: 1}
}

func newTestService(st *fakeStore) *Service {
	return New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (f *fakeStore) AllPlayers(ctx context.Context) ([]models.Player, error) {
	return append([]models.Player(nil), f.players...), nil
}

func (f *fakeStore) AppendPlayer(ctx context.Context, name string) (models.Player, error) {
	p := models.Player{ID: f.nextPlayerID, Name: name}
	f.nextPlayerID++
	f.players = append(f.players, p)
	return p, nil
}

func (f *fakeStore) UpdatePlayer(ctx context.Context, p models.Player) error {
	for i := range f.players {
		if f.players[i].ID == p.ID {
			f.players[i] = p
			return nil
		}
	}
	return fmt.Errorf("player row %d no longer exists", p.ID)
}

func (f *fakeStore) AllGames(ctx context.Context) ([]models.Game, error) {
	return append([]models.Game(nil), f.games...), nil
}

func (f *fakeStore) AppendGame(ctx context.Context, g models.Game) error {
	f.games = append(f.games, g)
	return nil
}

func (f *fakeStore) UpdateGameEndedAt(ctx context.Context, id int, at time.Time) error {
	for i := range f.games {
		if f.games[i].ID == id {
			t := at
			f.games[i].EndedAt = &t
			return nil
		}
	}
	return fmt.Errorf("game row %d no longer exists", id)
}

func (f *fakeStore) UpdateGameName(ctx context.Context, id int, name string) error {
	for i := range f.games {
		if f.games[i].ID == id {
			f.games[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("game row %d no longer exists", id)
}

func (f *fakeStore) AllPoints(ctx context.Context) ([]models.Point, error) {
	return append([]models.Point(nil), f.points...), nil
}

func (f *fakeStore) AppendPoint(ctx context.Context, p models.Point) (models.Point, error) {
	p.ID = f.nextPointID
	f.nextPointID++
	f.points = append(f.points, p)
	return p, nil
}

func (f *fakeStore) DeletePoint(ctx context.Context, id int64) error {
	for i := range f.points {
		if f.points[i].ID == id {
			f.points = append(f.points[:i], f.points[i+1:]...)
			return nil
		}
	}
	return nil
}

// addPlayers seeds n players named P1..Pn with ids 1..n.
func (f *fakeStore) addPlayers(n int) {
	for i := 0; i < n; i++ {
		f.AppendPlayer(context.Background(), fmt.Sprintf("P%d", i+1))
	}
}
