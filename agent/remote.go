package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"dicewars/game"
	"dicewars/meta"
)

// Position is the wire form of a view.
type Position struct {
	Player  int            `json:"player"`
	Areas   []PositionArea `json:"areas"`
	Players game.Players   `json:"players"`
}

type PositionArea struct {
	ID        int   `json:"id"`
	Owner     int   `json:"owner"`
	Dice      int   `json:"dice"`
	Neighbors []int `json:"neighbors"`
}

// NewPosition encodes the active areas of a view.
func NewPosition(view *game.View) Position {
	pos := Position{Player: view.Player, Players: view.Players}
	for _, id := range view.Registry.ActiveIDs() {
		a := view.Registry.Area(id)
		pos.Areas = append(pos.Areas, PositionArea{
			ID:        id,
			Owner:     a.Owner,
			Dice:      a.Dice,
			Neighbors: view.Registry.Neighbors(id),
		})
	}
	return pos
}

// View rebuilds a view with standard rules. Every area is given size 1.
// Area ids must lie in [1, meta.AreaMax).
func (pos Position) View() (*game.View, error) {
	capacity := 1
	for _, a := range pos.Areas {
		if a.ID <= 0 || a.ID >= meta.AreaMax {
			return nil, fmt.Errorf("%w: %d", game.ErrInvalidAreaID, a.ID)
		}
		capacity = max(capacity, a.ID+1)
	}
	areas := make([]game.Area, capacity)
	for id := range areas {
		areas[id] = game.NewArea(id, capacity)
	}
	for _, a := range pos.Areas {
		areas[a.ID].Size = 1
		areas[a.ID].Owner = a.Owner
		areas[a.ID].Dice = a.Dice
		for _, n := range a.Neighbors {
			if n <= 0 || n >= capacity {
				return nil, fmt.Errorf("%w: neighbour %d of area %d", game.ErrInvalidAreaID, n, a.ID)
			}
			areas[a.ID].MarkAdjacent(n)
		}
	}
	return &game.View{
		Registry: game.NewRegistry(nil, nil, areas),
		Players:  pos.Players,
		Player:   pos.Player,
		Rules:    game.NewStandardRules(),
	}, nil
}

// Remote asks an agent server for every decision and ends the turn when the
// server cannot be reached.
type Remote struct {
	URL    string
	Client *http.Client
}

func NewRemote(url string) *Remote {
	return &Remote{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Remote) Decide(view *game.View) game.Action {
	action, err := r.request(NewPosition(view))
	if err != nil {
		log.Warn().Err(err).Str("url", r.URL).Int("player", view.Player).Msg("remote agent failed, ending turn")
		return game.EndTurn()
	}
	return action
}

func (r *Remote) request(pos Position) (game.Action, error) {
	body, err := json.Marshal(pos)
	if err != nil {
		return game.Action{}, err
	}

	resp, err := r.Client.Post(r.URL+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return game.Action{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return game.Action{}, fmt.Errorf("agent returned status %d", resp.StatusCode)
	}

	var action game.Action
	if err := json.NewDecoder(resp.Body).Decode(&action); err != nil {
		return game.Action{}, fmt.Errorf("decode action: %w", err)
	}
	return action, nil
}

// NewServer serves p on /findmove for Remote clients. Decisions are made
// one at a time.
func NewServer(p Provider) http.Handler {
	var mu sync.Mutex
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", func(w http.ResponseWriter, r *http.Request) {
		var pos Position
		if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		view, err := pos.View()
		if err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		mu.Lock()
		action := p.Decide(view)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(action); err != nil {
			http.Error(w, "failed to encode action: "+err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}
