package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "tournament")
	require.NoError(t, err)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err = w.WriteGameRecords([]GameRecord{{
		ID:     1,
		Agents: "default/lookahead",
		GameMetric: GameMetric{
			Seed: 42, Winner: 1, Areas: 28, TotalTurns: 30, TotalActions: 120,
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second,
		},
	}})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(w.Dir(), "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2, "Header plus one record")
	require.Equal(t, "agents", rows[0][1])
	require.Equal(t, []string{"1", "default/lookahead", "42", "0", "1", "28", "30", "120"}, rows[1][:8])
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, 3)
	c.AddEpisodes(10)
	c.AddEpisodes(5)
	m := c.Complete()

	require.Equal(t, 15, m.Episodes)
	require.Equal(t, 4, m.Goroutines)
	require.Equal(t, 3, m.Candidates)
	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete(), "Dummy collector records nothing")
}
