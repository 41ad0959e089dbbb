package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one lookahead decision.
type SearchMetric struct {
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Candidates int
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	SearchMetric
}

type GameMetric struct {
	Seed           uint64
	StartingPlayer int // Player ID
	Winner         int // Player ID, -1 if the turn cap was hit
	Areas          int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalTurns     int
	TotalActions   int
}

type Collector interface {
	Start(goroutines, candidates int)
	AddEpisodes(n int)
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	candidates int
	startTime  time.Time
	episodes   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, candidates int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.candidates = candidates
	m.episodes.Store(0)
}

func (m *collector) AddEpisodes(n int) {
	m.episodes.Add(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Episodes:   int(m.episodes.Load()),
		Candidates: m.candidates,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, candidates int) {}
func (m *dummyCollector) AddEpisodes(n int)                {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
