package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	EndTurnAction ActionType = iota
	AttackAction
	ReinforceAction
)

func (t ActionType) String() string {
	switch t {
	case EndTurnAction:
		return "end_turn"
	case AttackAction:
		return "attack"
	case ReinforceAction:
		return "reinforce"
	default:
		return fmt.Sprintf("action(%d)", int(t))
	}
}

// Action is what a decision provider proposes for the current player.
type Action struct {
	Type  ActionType `json:"type"`
	From  int        `json:"from,omitempty"`
	To    int        `json:"to,omitempty"`
	Area  int        `json:"area,omitempty"`
	Count int        `json:"count,omitempty"`
}

// Attack proposes an attack from one area on an adjacent one.
func Attack(from, to int) Action {
	return Action{Type: AttackAction, From: from, To: to}
}

// Reinforce proposes moving count dice from stock onto area.
func Reinforce(area, count int) Action {
	return Action{Type: ReinforceAction, Area: area, Count: count}
}

// EndTurn proposes to finish the turn.
func EndTurn() Action {
	return Action{Type: EndTurnAction}
}

// ParseAction reads an action typed as "attack FROM TO", "reinforce AREA
// COUNT" or "end".
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("empty action")
	}

	args := make([]int, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Action{}, fmt.Errorf("argument %q is not a number", f)
		}
		args[i] = v
	}

	switch {
	case fields[0] == "end" && len(args) == 0:
		return EndTurn(), nil
	case fields[0] == "attack" && len(args) == 2:
		return Attack(args[0], args[1]), nil
	case fields[0] == "reinforce" && len(args) == 2:
		return Reinforce(args[0], args[1]), nil
	default:
		return Action{}, fmt.Errorf("unknown action %q", s)
	}
}
