package metrics

import (
	"sync/atomic"
	"time"

	"hive/game"
)

type MoveMetric struct {
	Step       int
	Color      game.Color
	Move       string
	ValidMoves int
	Duration   time.Duration
}

type GameMetric struct {
	Expansions game.ExpansionPieces
	Result     game.BoardState
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Passes     int
	ZobristKey uint64
}

// BatchMetric sums up games played concurrently.
type BatchMetric struct {
	Goroutines int
	Duration   time.Duration
	Games      int
	Moves      int
	Passes     int
	WhiteWins  int
	BlackWins  int
	Draws      int
	Unfinished int
}

// Collector is shared by every game of a batch, so it must be safe for
// concurrent use.
type Collector interface {
	Start(goroutines int)
	AddMove(pass bool)
	AddGame(g GameMetric)
	Complete() BatchMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	moves      atomic.Int32
	passes     atomic.Int32
	results    [game.BlackWins + 1]atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *collector) AddMove(pass bool) {
	m.moves.Add(1)
	if pass {
		m.passes.Add(1)
	}
}

func (m *collector) AddGame(g GameMetric) {
	m.results[g.Result].Add(1)
}

func (m *collector) Complete() BatchMetric {
	b := BatchMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Moves:      int(m.moves.Load()),
		Passes:     int(m.passes.Load()),
		WhiteWins:  int(m.results[game.WhiteWins].Load()),
		BlackWins:  int(m.results[game.BlackWins].Load()),
		Draws:      int(m.results[game.Draw].Load()),
		Unfinished: int(m.results[game.InProgress].Load() + m.results[game.NotStarted].Load()),
	}
	b.Games = b.WhiteWins + b.BlackWins + b.Draws + b.Unfinished
	return b
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)  {}
func (m *dummyCollector) AddMove(pass bool)     {}
func (m *dummyCollector) AddGame(g GameMetric)  {}
func (m *dummyCollector) Complete() BatchMetric { return BatchMetric{} }
