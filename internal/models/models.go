package models

import "time"

type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Game is one 2v2 match. Team A is the players in slots 1 and 3,
// team B the players in slots 2 and 4. EndedAt nil means the game
// is still running.
type Game struct {
	ID        int        `json:"id"`
	Name      string     `json:"name,omitempty"`
	Player1ID int        `json:"player1_id"`
	Player2ID int        `json:"player2_id"`
	Player3ID int        `json:"player3_id"`
	Player4ID int        `json:"player4_id"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

func (g Game) Active() bool {
	return g.EndedAt == nil
}

// PlayerIDs returns the four slot players in slot order.
func (g Game) PlayerIDs() [4]int {
	return [4]int{g.Player1ID, g.Player2ID, g.Player3ID, g.Player4ID}
}

// Point is a single scoring event. Class labels the kind of goal
// (0 = single, 1 = double, 2 = triple, ...); it never changes how
// much the point is worth.
type Point struct {
	ID        int64     `json:"id"`
	GameID    int       `json:"game_id"`
	PlayerID  int       `json:"player_id"`
	Class     int       `json:"class"`
	CreatedAt time.Time `json:"created_at"`
}

// Score is derived from the point ledger and never stored.
type Score struct {
	TeamA   int `json:"team_a"`
	TeamB   int `json:"team_b"`
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
	Player3 int `json:"player3"`
	Player4 int `json:"player4"`
}

func (s Score) Total() int {
	return s.TeamA + s.TeamB
}

// ClassCount is one entry of a per-class ranking.
type ClassCount struct {
	PlayerID int `json:"player_id"`
	Count    int `json:"count"`
}
