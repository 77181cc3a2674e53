package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/antigravity/foosballTracker/internal/models"
)

// Store holds the row collections (players, games, points) in a
// sqlite file. It is deliberately dumb: no uniqueness checks, no
// id assignment for games, no ordering beyond insertion order.
// All invariants live in the service layer.
type Store struct {
	db *sql.DB
}

func Open(filepath string) (*Store, error) {
	db, err := sql.Open("sqlite3", filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	createPlayersTable := `CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT
	);`

	// games.id is assigned by the caller (max existing id + 1),
	// so no AUTOINCREMENT here.
	createGamesTable := `CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY,
		name TEXT DEFAULT '',
		player1_id INTEGER,
		player2_id INTEGER,
		player3_id INTEGER,
		player4_id INTEGER,
		created_at DATETIME,
		ended_at DATETIME,
		FOREIGN KEY(player1_id) REFERENCES players(id),
		FOREIGN KEY(player2_id) REFERENCES players(id),
		FOREIGN KEY(player3_id) REFERENCES players(id),
		FOREIGN KEY(player4_id) REFERENCES players(id)
	);`

	createPointsTable := `CREATE TABLE IF NOT EXISTS points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id INTEGER,
		player_id INTEGER,
		class INTEGER,
		created_at DATETIME,
		FOREIGN KEY(game_id) REFERENCES games(id),
		FOREIGN KEY(player_id) REFERENCES players(id)
	);`

	for _, stmt := range []string{createPlayersTable, createGamesTable, createPointsTable} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (s *Store) AllPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM players ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Store) AppendPlayer(ctx context.Context, name string) (models.Player, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO players (name) VALUES (?)", name)
	if err != nil {
		return models.Player{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Player{}, err
	}
	return models.Player{ID: int(id), Name: name}, nil
}

func (s *Store) UpdatePlayer(ctx context.Context, p models.Player) error {
	_, err := s.db.ExecContext(ctx, "UPDATE players SET name=? WHERE id=?", p.Name, p.ID)
	return err
}

func (s *Store) AllGames(ctx context.Context) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, player1_id, player2_id, player3_id, player4_id, created_at, ended_at
		FROM games ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		var ended sql.NullTime
		if err := rows.Scan(&g.ID, &g.Name, &g.Player1ID, &g.Player2ID, &g.Player3ID, &g.Player4ID, &g.CreatedAt, &ended); err != nil {
			return nil, err
		}
		if ended.Valid {
			t := ended.Time
			g.EndedAt = &t
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *Store) AppendGame(ctx context.Context, g models.Game) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, name, player1_id, player2_id, player3_id, player4_id, created_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
	`, g.ID, g.Name, g.Player1ID, g.Player2ID, g.Player3ID, g.Player4ID, g.CreatedAt)
	return err
}

func (s *Store) UpdateGameEndedAt(ctx context.Context, id int, at time.Time) error {
	return s.updateGame(ctx, id, "UPDATE games SET ended_at=? WHERE id=?", at)
}

func (s *Store) UpdateGameName(ctx context.Context, id int, name string) error {
	return s.updateGame(ctx, id, "UPDATE games SET name=? WHERE id=?", name)
}

func (s *Store) updateGame(ctx context.Context, id int, query string, value interface{}) error {
	res, err := s.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("game row %d no longer exists", id)
	}
	return nil
}

func (s *Store) AllPoints(ctx context.Context) ([]models.Point, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, game_id, player_id, class, created_at FROM points ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.Point
	for rows.Next() {
		var p models.Point
		if err := rows.Scan(&p.ID, &p.GameID, &p.PlayerID, &p.Class, &p.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *Store) AppendPoint(ctx context.Context, p models.Point) (models.Point, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO points (game_id, player_id, class, created_at) VALUES (?, ?, ?, ?)
	`, p.GameID, p.PlayerID, p.Class, p.CreatedAt)
	if err != nil {
		return models.Point{}, err
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return models.Point{}, err
	}
	return p, nil
}

func (s *Store) DeletePoint(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM points WHERE id=?", id)
	return err
}
