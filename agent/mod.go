// Package agent holds the decision providers that choose actions for
// automated seats.
package agent

import (
	"fmt"
	"strings"

	"dicewars/game"
)

// Provider proposes an action from a read-only view. It must not keep or
// change the view.
type Provider interface {
	Decide(view *game.View) game.Action
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(view *game.View) game.Action

func (f ProviderFunc) Decide(view *game.View) game.Action {
	return f(view)
}

type ControllerKind int

const (
	// HumanController seats wait for actions delivered from outside.
	HumanController ControllerKind = iota
	// AutomatedController seats are driven by a Provider.
	AutomatedController
)

// Controller binds a seat to either a human or a provider.
type Controller struct {
	Kind     ControllerKind
	Name     string
	Provider Provider
}

// Human returns a controller for an externally driven seat.
func Human() Controller {
	return Controller{Kind: HumanController, Name: "human"}
}

// Automated returns a controller that asks p for every action.
func Automated(name string, p Provider) Controller {
	return Controller{Kind: AutomatedController, Name: name, Provider: p}
}

func (c Controller) IsHuman() bool {
	return c.Kind == HumanController
}

// Decide asks the bound provider. Human seats have nothing to decide.
func (c Controller) Decide(view *game.View) (game.Action, bool) {
	if c.IsHuman() || c.Provider == nil {
		return game.Action{}, false
	}
	return c.Provider.Decide(view), true
}

// FromName builds the controller registered under name. "remote=URL" seats
// an agent server.
func FromName(name string, seed uint64, options ...Option) (Controller, error) {
	if url, ok := strings.CutPrefix(name, "remote="); ok {
		return Automated(name, NewRemote(url)), nil
	}
	switch name {
	case "human":
		return Human(), nil
	case "default":
		return Automated(name, Default{}), nil
	case "defensive":
		return Automated(name, Defensive{}), nil
	case "lookahead":
		return Automated(name, NewLookahead(seed, options...)), nil
	default:
		return Controller{}, fmt.Errorf("unknown controller %q", name)
	}
}
