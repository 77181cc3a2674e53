package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/antigravity/foosballTracker/internal/models"
)

// Store is the row-store surface the service needs. Each call is an
// independent round trip; there is no atomicity across calls, which
// is why mutations below are serialized in-process.
type Store interface {
	AllPlayers(ctx context.Context) ([]models.Player, error)
	AppendPlayer(ctx context.Context, name string) (models.Player, error)
	UpdatePlayer(ctx context.Context, p models.Player) error

	AllGames(ctx context.Context) ([]models.Game, error)
	AppendGame(ctx context.Context, g models.Game) error
	UpdateGameEndedAt(ctx context.Context, id int, at time.Time) error
	UpdateGameName(ctx context.Context, id int, name string) error

	AllPoints(ctx context.Context) ([]models.Point, error)
	AppendPoint(ctx context.Context, p models.Point) (models.Point, error)
	DeletePoint(ctx context.Context, id int64) error
}

type Service struct {
	store Store
	log   *slog.Logger

	// createMu serializes game creation so two callers cannot compute
	// the same max+1 id. gameMu serializes all mutations of one game
	// (end, rename, add/remove point) so lifecycle and ledger writes
	// never interleave.
	createMu sync.Mutex
	mu       sync.Mutex
	gameMu   map[int]*sync.Mutex
}

func New(store Store, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		log:    log,
		gameMu: make(map[int]*sync.Mutex),
	}
}

func (s *Service) lockGame(id int) func() {
	s.mu.Lock()
	m, ok := s.gameMu[id]
	if !ok {
		m = &sync.Mutex{}
		s.gameMu[id] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// NewGame creates a game for four distinct players and returns its id.
// Ids are max existing id + 1, never reused, starting at 0.
func (s *Service) NewGame(ctx context.Context, p1, p2, p3, p4 int) (int, error) {
	ids := map[int]bool{p1: true, p2: true, p3: true, p4: true}
	if len(ids) != 4 {
		return 0, fmt.Errorf("%w: players must be distinct", ErrValidation)
	}
	for _, id := range []int{p1, p2, p3, p4} {
		if id < 0 {
			return 0, fmt.Errorf("%w: player id %d", ErrValidation, id)
		}
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	games, err := s.store.AllGames(ctx)
	if err != nil {
		return 0, err
	}
	maxID := -1
	for _, g := range games {
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	id := maxID + 1

	g := models.Game{
		ID:        id,
		Player1ID: p1,
		Player2ID: p2,
		Player3ID: p3,
		Player4ID: p4,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendGame(ctx, g); err != nil {
		return 0, err
	}
	s.log.Info("game created", "game_id", id)
	return id, nil
}

func (s *Service) GetGame(ctx context.Context, id int) (models.Game, error) {
	if id < 0 {
		return models.Game{}, fmt.Errorf("%w: game id %d", ErrValidation, id)
	}
	games, err := s.store.AllGames(ctx)
	if err != nil {
		return models.Game{}, err
	}
	for _, g := range games {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Game{}, fmt.Errorf("%w: game %d", ErrNotFound, id)
}

func (s *Service) AllGames(ctx context.Context) (map[int]models.Game, error) {
	games, err := s.store.AllGames(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	return byID, nil
}

// ActiveAndConcludedGames partitions all games on EndedAt presence.
func (s *Service) ActiveAndConcludedGames(ctx context.Context) ([]models.Game, []models.Game, error) {
	games, err := s.store.AllGames(ctx)
	if err != nil {
		return nil, nil, err
	}
	var active, concluded []models.Game
	for _, g := range games {
		if g.Active() {
			active = append(active, g)
		} else {
			concluded = append(concluded, g)
		}
	}
	return active, concluded, nil
}

func (s *Service) AllPlayers(ctx context.Context) ([]models.Player, error) {
	return s.store.AllPlayers(ctx)
}

// GetPlayers resolves ids to players, preserving input order.
func (s *Service) GetPlayers(ctx context.Context, ids []int) ([]models.Player, error) {
	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("%w: player id %d", ErrValidation, id)
		}
	}
	all, err := s.store.AllPlayers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Player, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	players := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: player %d", ErrNotFound, id)
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *Service) CreatePlayer(ctx context.Context, name string) (models.Player, error) {
	if name == "" {
		return models.Player{}, fmt.Errorf("%w: player name is empty", ErrValidation)
	}
	return s.store.AppendPlayer(ctx, name)
}

func (s *Service) UpdatePlayer(ctx context.Context, p models.Player) error {
	if p.ID < 0 || p.Name == "" {
		return fmt.Errorf("%w: player id and name required", ErrValidation)
	}
	return s.store.UpdatePlayer(ctx, p)
}

func (s *Service) IsActive(ctx context.Context, id int) (bool, error) {
	g, err := s.GetGame(ctx, id)
	if err != nil {
		return false, err
	}
	return g.Active(), nil
}

// EndGame is the one lifecycle transition. There is no way back.
func (s *Service) EndGame(ctx context.Context, id int, at time.Time) error {
	unlock := s.lockGame(id)
	defer unlock()

	g, err := s.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if !g.Active() {
		return fmt.Errorf("%w: game %d", ErrAlreadyEnded, id)
	}
	if err := s.store.UpdateGameEndedAt(ctx, id, at); err != nil {
		return err
	}
	s.log.Info("game ended", "game_id", id)
	return nil
}

// RenameGame updates the display name. Allowed on ended games too;
// only the ledger freezes at end time.
func (s *Service) RenameGame(ctx context.Context, id int, name string) error {
	unlock := s.lockGame(id)
	defer unlock()

	if _, err := s.GetGame(ctx, id); err != nil {
		return err
	}
	return s.store.UpdateGameName(ctx, id, name)
}
