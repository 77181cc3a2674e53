package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/antigravity/foosballTracker/internal/models"
	"github.com/antigravity/foosballTracker/internal/service"
)

type Handler struct {
	svc *service.Service
	log *slog.Logger
}

func New(svc *service.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/players", h.PlayersHandler)                // GET, POST
	mux.HandleFunc("/api/players/import", h.ImportPlayersHandler)   // POST
	mux.HandleFunc("/api/games", h.GamesHandler)                    // GET (dashboard), POST (create)
	mux.HandleFunc("/api/games/detail", h.GameDetailHandler)        // GET
	mux.HandleFunc("/api/games/rename", h.RenameGameHandler)        // POST
	mux.HandleFunc("/api/games/end", h.EndGameHandler)              // POST
	mux.HandleFunc("/api/games/point", h.AddPointHandler)           // POST
	mux.HandleFunc("/api/games/point/remove", h.RemovePointHandler) // POST
	mux.HandleFunc("/api/stats", h.StatsHandler)                    // GET
}

// writeError translates the service taxonomy into a status code.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInactiveGame), errors.Is(err, service.ErrAlreadyEnded):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) PlayersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		players, err := h.svc.AllPlayers(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		if players == nil {
			players = []models.Player{}
		}
		json.NewEncoder(w).Encode(players)
	} else if r.Method == http.MethodPost {
		var p models.Player
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if p.ID > 0 {
			// Update
			if err := h.svc.UpdatePlayer(r.Context(), p); err != nil {
				h.writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusOK)
		} else {
			// Create
			created, err := h.svc.CreatePlayer(r.Context(), p.Name)
			if err != nil {
				h.writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(created)
		}
	} else {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) ImportPlayersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		http.Error(w, "Failed to parse CSV", http.StatusBadRequest)
		return
	}

	for i, record := range records {
		// Skip header if it looks like one
		if i == 0 && len(record) > 0 && (record[0] == "Name" || record[0] == "name") {
			continue
		}
		if len(record) < 1 || record[0] == "" {
			continue
		}
		if _, err := h.svc.CreatePlayer(r.Context(), record[0]); err != nil {
			h.log.Warn("skipping player row", "row", i, "err", err)
			continue
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GamesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		active, concluded, err := h.svc.ActiveAndConcludedGames(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		players, err := h.svc.AllPlayers(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		if active == nil {
			active = []models.Game{}
		}
		if concluded == nil {
			concluded = []models.Game{}
		}
		if players == nil {
			players = []models.Player{}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"active":    active,
			"concluded": concluded,
			"players":   players,
		})
	} else if r.Method == http.MethodPost {
		var req struct {
			Player1ID int `json:"player1_id"`
			Player2ID int `json:"player2_id"`
			Player3ID int `json:"player3_id"`
			Player4ID int `json:"player4_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id, err := h.svc.NewGame(r.Context(), req.Player1ID, req.Player2ID, req.Player3ID, req.Player4ID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": id})
	} else {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) GameDetailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		http.Error(w, "Missing id", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Bad id", http.StatusBadRequest)
		return
	}

	game, err := h.svc.GetGame(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	slots := game.PlayerIDs()
	players, err := h.svc.GetPlayers(r.Context(), slots[:])
	if err != nil {
		h.writeError(w, err)
		return
	}
	score, err := h.svc.Score(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"game":    game,
		"players": players,
		"score":   score,
	})
}

func (h *Handler) RenameGameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.RenameGame(r.Context(), req.ID, req.Name); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) EndGameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.EndGame(r.Context(), req.ID, time.Now()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AddPointHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		GameID   int `json:"game_id"`
		PlayerID int `json:"player_id"`
		Class    int `json:"class"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.AddPoint(r.Context(), req.GameID, req.PlayerID, req.Class, time.Now()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemovePointHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		GameID   int `json:"game_id"`
		PlayerID int `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.RemovePoint(r.Context(), req.GameID, req.PlayerID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.svc.InterestingStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	// JSON object keys are strings
	out := make(map[string][]models.ClassCount, len(stats))
	for class, ranking := range stats {
		out[strconv.Itoa(class)] = ranking
	}
	json.NewEncoder(w).Encode(out)
}
