package store

import (
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"dicewars/agent"
	"dicewars/board"
	"dicewars/config"
	"dicewars/engine"
	"dicewars/game"
	"dicewars/mapgen"
	"dicewars/meta"
)

func openDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newBoard(t *testing.T, seed uint64) (*game.Registry, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	top := board.MustTopology(meta.XMax, meta.YMax)
	reg, _, err := mapgen.NewGenerator(top, rng).GenerateWithRetry(meta.MaxAttempts)
	require.NoError(t, err)
	return reg, rng
}

func playedSession(t *testing.T, seed uint64) (*engine.Engine, *Session) {
	t.Helper()
	reg, rng := newBoard(t, seed)
	controllers := make([]agent.Controller, meta.Players)
	for i := range controllers {
		controllers[i] = agent.Automated("default", agent.Default{})
	}
	e, err := engine.New(reg, game.NewStandardRules(), controllers, rng, engine.WithSeed(seed))
	require.NoError(t, err)
	e.StartGame()
	e.Run(20)
	return e, FromEngine(e)
}

func TestSaveAndLoadSession(t *testing.T) {
	db := openDB(t)
	e, s := playedSession(t, 3)
	require.NoError(t, db.SaveSession(s))

	got, err := db.LoadSession(s.ID)
	require.NoError(t, err)

	t.Run("session fields survive", func(t *testing.T) {
		require.Equal(t, s.ID, got.ID)
		require.Equal(t, uint64(3), got.Seed)
		require.Equal(t, meta.Players, got.Players)
		require.Equal(t, meta.XMax, got.Width)
		require.Equal(t, meta.YMax, got.Height)
		require.Equal(t, s.DicePerArea, got.DicePerArea)
		require.Equal(t, s.Controllers, got.Controllers)
		require.Equal(t, s.Turns, got.Turns)
		require.Equal(t, s.Winner, got.Winner)
		require.WithinDuration(t, s.CreatedAt, got.CreatedAt, time.Microsecond)
		require.Equal(t, s.Baseline, got.Baseline)
		require.Equal(t, s.History, got.History)
	})

	t.Run("replaying a loaded session", func(t *testing.T) {
		reg, _ := newBoard(t, got.Seed)
		replayed, err := game.Replay(reg, got.Baseline, got.History, game.NewStandardRules())
		require.NoError(t, err)
		require.Equal(t, e.Registry.Baseline(), replayed.Baseline(),
			"Regenerating from the seed and replaying should reach the saved position")
	})

	t.Run("saving again replaces the session", func(t *testing.T) {
		s.History = s.History[:1]
		s.Turns = 0
		require.NoError(t, db.SaveSession(s))
		got, err := db.LoadSession(s.ID)
		require.NoError(t, err)
		require.Len(t, got.History, 1)
		require.Zero(t, got.Turns)
	})
}

func TestLoadSessionNotFound(t *testing.T) {
	db := openDB(t)
	_, err := db.LoadSession("missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListSessions(t *testing.T) {
	db := openDB(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, db.SaveSession(&Session{
			ID:          id,
			Seed:        uint64(i),
			Players:     2,
			Controllers: []string{"default", "human"},
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			Baseline:    game.Baseline{Owners: []int{game.Unowned, 0}, Dice: []int{0, 1}},
		}))
	}

	sessions, err := db.ListSessions(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "c", sessions[0].ID, "Newest sessions should come first")
	require.Equal(t, "b", sessions[1].ID)
	require.Equal(t, []string{"default", "human"}, sessions[0].Controllers)
	require.Nil(t, sessions[0].History)
}

func TestSaveSessionRejectsBrokenBaseline(t *testing.T) {
	db := openDB(t)
	err := db.SaveSession(&Session{ID: "x", Baseline: game.Baseline{Owners: []int{0}}})
	require.Error(t, err)
}

func TestReplayKeepsDicePerArea(t *testing.T) {
	db := openDB(t)
	cfg := config.Default()
	cfg.Game.Players = 3
	cfg.Game.DicePerArea = 2

	e, err := engine.FromConfig(cfg, 12)
	require.NoError(t, err)
	e.Run(5)
	require.NoError(t, db.SaveSession(FromEngine(e)))

	s, err := db.LoadSession(e.ID.String())
	require.NoError(t, err)
	require.Equal(t, 2, s.DicePerArea)

	base := config.Default()
	require.Equal(t, meta.DicePerArea, base.Game.DicePerArea)
	replayed, err := engine.FromConfig(s.Config(base), s.Seed)
	require.NoError(t, err)
	require.Equal(t, s.Baseline, replayed.Baseline,
		"The stored dice per area should regenerate the same garrisons")
	require.Equal(t, meta.Players, base.Game.Players, "The base config should not change")

	wrong := s.Config(base)
	wrong.Game.DicePerArea = meta.DicePerArea
	other, err := engine.FromConfig(wrong, s.Seed)
	require.NoError(t, err)
	require.NotEqual(t, s.Baseline.Dice, other.Baseline.Dice)
}

func TestMigrateAddsDicePerArea(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	conn, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		players INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		areas INTEGER NOT NULL,
		controllers TEXT NOT NULL,
		winner INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO sessions VALUES ('old', 5, 2, 10, 10, 0, '', -1, 0, 0)`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	s, err := db.LoadSession("old")
	require.NoError(t, err)
	require.Zero(t, s.DicePerArea)
	require.Equal(t, meta.DicePerArea, s.Config(config.Default()).Game.DicePerArea,
		"Sessions saved before dice per area was stored should keep the configured value")
}
