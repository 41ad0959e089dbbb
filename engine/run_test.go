package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dicewars/agent"
	"dicewars/board"
	"dicewars/config"
	"dicewars/game"
	"dicewars/mapgen"
	"dicewars/meta"
)

func selfPlay(t *testing.T, seed uint64, maxTurns int) *Engine {
	t.Helper()
	rng := newRand(seed)
	top := board.MustTopology(meta.XMax, meta.YMax)
	reg, _, err := mapgen.NewGenerator(top, rng).GenerateWithRetry(meta.MaxAttempts)
	require.NoError(t, err)

	e, err := New(reg, game.NewStandardRules(), automated(meta.Players), rng, WithSeed(seed))
	require.NoError(t, err)
	e.StartGame()
	e.Run(maxTurns)
	return e
}

func TestRun(t *testing.T) {
	e := selfPlay(t, 5, 60)

	t.Run("stops at the turn cap or a winner", func(t *testing.T) {
		require.True(t, e.Turns() == 60 || e.Winner() != game.Unowned)
		require.LessOrEqual(t, e.Turns(), 60)
	})

	t.Run("history replays to the live board", func(t *testing.T) {
		replayed, err := game.Replay(e.Registry, e.Baseline, e.History.Entries(), e.Rules)
		require.NoError(t, err)
		require.Equal(t, e.Registry.Baseline(), replayed.Baseline())
	})

	t.Run("board stays consistent", func(t *testing.T) {
		total := 0
		for _, id := range e.Registry.ActiveIDs() {
			a := e.Registry.Area(id)
			require.GreaterOrEqual(t, a.Dice, 1)
			require.LessOrEqual(t, a.Dice, meta.MaxDice)
			require.GreaterOrEqual(t, a.Owner, 0)
			total += a.Dice
		}
		sum := 0
		for _, p := range e.Players {
			sum += p.Dice
			require.LessOrEqual(t, p.Stock, meta.StockMax)
		}
		require.Equal(t, total, sum, "Player table should match the board")
	})
}

func TestRunDeterministic(t *testing.T) {
	a := selfPlay(t, 11, 30)
	b := selfPlay(t, 11, 30)
	require.Equal(t, a.Order(), b.Order())
	require.Equal(t, a.History.Entries(), b.History.Entries())
}

func TestRunStopsAtHumanSeat(t *testing.T) {
	e := newTestEngine(t, game.NewStandardRules(), 2,
		map[int]seat{1: {0, 3}, 2: {1, 1}},
		[][2]int{{1, 2}})
	e.Controllers[0] = agent.Human()

	gm, moves := e.Run(10)
	require.Zero(t, gm.TotalActions)
	require.Empty(t, moves)
	require.Equal(t, game.Unowned, gm.Winner)
}

func TestRunRecordsSearchMetrics(t *testing.T) {
	e := newTestEngine(t, game.NewStandardRules(), 2,
		map[int]seat{1: {0, 8}, 2: {1, 1}, 3: {1, 1}},
		[][2]int{{1, 2}, {2, 3}})
	e.Controllers[0] = agent.Automated("lookahead", agent.NewLookahead(1, agent.WithMetrics(), agent.WithEpisodes(40)))

	gm, moves := e.Run(5)
	require.Len(t, moves, 2, "Both captures should be searched")
	require.Equal(t, 0, moves[0].Player)
	require.Equal(t, 40, moves[0].Episodes)
	require.Equal(t, 1, moves[1].Step)
	require.Equal(t, 0, gm.Winner)
	require.Zero(t, gm.TotalTurns)
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Players = 3
	cfg.Game.Controllers = []string{"defensive", "lookahead"}
	cfg.Lookahead.Episodes = 20

	e, err := FromConfig(cfg, 21)
	require.NoError(t, err)
	require.Equal(t, uint64(21), e.Seed())
	require.Equal(t, cfg.Game.DicePerArea, e.DicePerArea())
	require.Len(t, e.Controllers, 3)
	require.Equal(t, "defensive", e.Controllers[0].Name)
	require.Equal(t, "lookahead", e.Controllers[1].Name)
	require.Equal(t, "default", e.Controllers[2].Name)
	for _, id := range e.Registry.ActiveIDs() {
		require.Less(t, e.Registry.Area(id).Owner, 3)
	}

	again, err := FromConfig(cfg, 21)
	require.NoError(t, err)
	require.Equal(t, e.Baseline, again.Baseline, "A seed should reproduce the board")

	t.Run("resources evaluation", func(t *testing.T) {
		cfg.Lookahead.Evaluate = "resources"
		_, err := FromConfig(cfg, 21)
		require.NoError(t, err)

		cfg.Lookahead.Evaluate = "territory"
		_, err = FromConfig(cfg, 21)
		require.ErrorContains(t, err, "unknown evaluation")
		cfg.Lookahead.Evaluate = "connectivity"
	})

	cfg.Game.Controllers = []string{"random"}
	_, err = FromConfig(cfg, 21)
	require.Error(t, err)
}

func TestLookaheadOptions(t *testing.T) {
	cfg := config.Default()
	options, err := LookaheadOptions(cfg)
	require.NoError(t, err)

	e := newTestEngine(t, game.NewStandardRules(), 2,
		map[int]seat{1: {0, 8}, 2: {1, 1}},
		[][2]int{{1, 2}})
	e.Controllers[0] = agent.Automated("lookahead", agent.NewLookahead(1, options...))

	_, moves := e.Run(5)
	require.NotEmpty(t, moves, "Configured lookahead players should report their searches")
	require.Equal(t, cfg.Lookahead.Episodes, moves[0].Episodes)
}
