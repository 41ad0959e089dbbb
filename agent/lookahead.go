package agent

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"dicewars/experiments/metrics"
	"dicewars/game"
)

type Option func(l *Lookahead)

func WithGoroutines(goroutines int) Option {
	return func(l *Lookahead) {
		if goroutines > 0 {
			l.goroutines = goroutines
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(l *Lookahead) {
		if episodes > 0 {
			l.episodes = episodes
		}
	}
}

// WithThreshold sets the win probability below which an attack is never
// considered.
func WithThreshold(threshold float64) Option {
	return func(l *Lookahead) {
		if threshold >= 0 && threshold <= 1 {
			l.threshold = threshold
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(l *Lookahead) {
		if evaluate != nil {
			l.evaluate = evaluate
		}
	}
}

// EvaluationFromName returns the position evaluator registered under name.
func EvaluationFromName(name string) (game.Evaluate, error) {
	switch name {
	case "", "connectivity":
		return game.EvaluateConnectivity, nil
	case "resources":
		return game.EvaluateResources, nil
	default:
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
}

func WithMetrics() Option {
	return func(l *Lookahead) {
		l.metrics = metrics.NewCollector()
	}
}

// Lookahead estimates the win probability of every legal attack by rolling
// the dice many times in parallel, and plays the attack with the best
// expected change of the position score.
type Lookahead struct {
	goroutines int
	episodes   int
	threshold  float64
	evaluate   game.Evaluate
	metrics    metrics.Collector
	seed       uint64
	calls      uint64
	last       metrics.SearchMetric
}

func NewLookahead(seed uint64, options ...Option) *Lookahead {
	l := &Lookahead{ // Default values
		goroutines: 4,
		episodes:   200,
		threshold:  0.5,
		evaluate:   game.EvaluateConnectivity,
		metrics:    metrics.NewDummyCollector(),
		seed:       seed,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// LastMetric reports the search behind the previous decision.
func (l *Lookahead) LastMetric() metrics.SearchMetric {
	return l.last
}

func (l *Lookahead) Decide(view *game.View) game.Action {
	moves := view.Attacks()
	l.calls++
	l.metrics.Start(l.goroutines, len(moves))
	defer func() { l.last = l.metrics.Complete() }()

	if len(moves) == 0 {
		return game.EndTurn()
	}

	wins := l.simulate(view, moves)
	base := l.evaluate(view.Registry, view.Player)

	best := game.EndTurn()
	bestScore := 0.0
	for i, move := range moves {
		p := float64(wins[i]) / float64(l.episodes)
		if p < l.threshold {
			continue
		}
		gain := l.evaluate(outcome(view, move, true), view.Player) - base
		loss := l.evaluate(outcome(view, move, false), view.Player) - base
		if score := p*gain + (1-p)*loss; score > bestScore {
			best, bestScore = move, score
		}
	}
	return best
}

// simulate splits the episodes evenly over the goroutines. Each goroutine
// has its own seeded source, so the counts do not depend on scheduling.
func (l *Lookahead) simulate(view *game.View, moves []game.Action) []int {
	attack := make([]int, len(moves))
	defend := make([]int, len(moves))
	for i, move := range moves {
		attack[i] = view.Registry.Area(move.From).Dice
		defend[i] = view.Registry.Area(move.To).Dice
	}

	partial := make([][]int, l.goroutines)
	var wg sync.WaitGroup
	for w := 0; w < l.goroutines; w++ {
		n := l.episodes / l.goroutines
		if w < l.episodes%l.goroutines {
			n++
		}
		wg.Add(1)
		go func() {
			defer wg.Done()

			rng := rand.New(rand.NewPCG(l.seed+l.calls, uint64(w)))
			local := make([]int, len(moves))
			for i := range moves {
				for e := 0; e < n; e++ {
					if view.Rules.IsAttackSuccessful(view.Rules.Roll(rng, attack[i]), view.Rules.Roll(rng, defend[i])) {
						local[i]++
					}
				}
			}
			l.metrics.AddEpisodes(n * len(moves))
			partial[w] = local
		}()
	}
	wg.Wait()

	wins := make([]int, len(moves))
	for _, local := range partial {
		for i, v := range local {
			wins[i] += v
		}
	}
	return wins
}

// outcome applies move to a copy of the view's board.
func outcome(view *game.View, move game.Action, success bool) *game.Registry {
	next := view.Registry.Clone()
	view.Rules.ApplyAttack(next.Area(move.From), next.Area(move.To), success)
	return next
}
