package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"hive/game"
)

type GameRecord struct {
	ID   int
	Seed uint64
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type PerftRecord struct {
	ID         int
	Expansions game.ExpansionPieces
	Depth      int
	Goroutines int
	Nodes      uint64
	Duration   time.Duration
}

// NodesPerSecond is the perft throughput of the run.
func (r PerftRecord) NodesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Duration.Seconds()
}

type Writer struct {
	baseDir string
}

// NewWriter creates <dir>/<experiment>/<timestamp> to hold the CSV files.
func NewWriter(dir, experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, experiment, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seed", "game_type", "result", "start_time", "end_time", "duration", "total_moves", "passes", "zobrist_key"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Expansions.String(),
			record.Result.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Passes),
			strconv.FormatUint(record.ZobristKey, 16),
		}
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "color", "move", "valid_moves", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Color.String(),
			record.Move,
			strconv.Itoa(record.ValidMoves),
			record.Duration.String(),
		}
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WritePerftRecords(records []PerftRecord) error {
	header := []string{"id", "game_type", "depth", "goroutines", "nodes", "duration", "nodes_per_second"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			record.Expansions.String(),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Goroutines),
			strconv.FormatUint(record.Nodes, 10),
			record.Duration.String(),
			strconv.FormatFloat(record.NodesPerSecond(), 'f', 0, 64),
		}
	}
	return w.write("perft_records.csv", header, rows)
}

func (w *Writer) WriteBatch(batch BatchMetric) error {
	header := []string{"goroutines", "duration", "games", "moves", "passes", "white_wins", "black_wins", "draws", "unfinished"}
	row := []string{
		strconv.Itoa(batch.Goroutines),
		batch.Duration.String(),
		strconv.Itoa(batch.Games),
		strconv.Itoa(batch.Moves),
		strconv.Itoa(batch.Passes),
		strconv.Itoa(batch.WhiteWins),
		strconv.Itoa(batch.BlackWins),
		strconv.Itoa(batch.Draws),
		strconv.Itoa(batch.Unfinished),
	}
	return w.write("batch.csv", header, [][]string{row})
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
