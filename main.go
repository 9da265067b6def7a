package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"slices"
	"strconv"
	"strings"
	"time"

	"hive/experiments"
	"hive/game"
	"hive/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	gameType := flag.String("gametype", "Base", "Game type, e.g. Base or Base+MLP")
	gameString := flag.String("game", "", "Game or board string to start from (overrides -gametype)")
	depth := flag.Int("depth", 0, "Perft depth")
	goroutines := flag.String("goroutines", strconv.Itoa(meta.GO_ROUTINES), "Comma separated goroutine counts for parallel perft")
	divide := flag.Bool("divide", false, "Print per-move node counts at the root")
	selfPlay := flag.Int("selfplay", 0, "Number of self-play games to run instead of perft")
	greedy := flag.Bool("greedy", false, "Use greedy agents for self-play")
	maxMoves := flag.Int("maxmoves", meta.MAX_TURNS, "Move cap per self-play game")
	seed := flag.Uint64("seed", 1, "Seed of the first self-play game")
	out := flag.String("out", "", "Directory for CSV results (none if empty)")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("starting cpu profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var err error
	switch {
	case *selfPlay > 0:
		err = runSelfPlay(ctx, *gameType, *selfPlay, *goroutines, *maxMoves, *seed, *greedy, *out)
	case *depth > 0:
		err = runPerft(ctx, *gameType, *gameString, *depth, *goroutines, *divide, *out)
	default:
		flag.Usage()
		err = fmt.Errorf("need -depth or -selfplay")
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		stop()
		os.Exit(1)
	}
}

func startBoard(gameType, gameString string) (*game.GameBoard, error) {
	if gameString != "" {
		board, err := game.ParseGameString(gameString)
		if err == nil {
			return board, nil
		}
		if board, boardErr := game.ParseGameBoardString(gameString); boardErr == nil {
			return board, nil
		}
		return nil, err
	}
	expansions, err := game.ParseExpansionPieces(gameType)
	if err != nil {
		return nil, err
	}
	return game.NewGameBoard(expansions), nil
}

func parseGoroutines(s string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad goroutine count %q", field)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func runPerft(ctx context.Context, gameType, gameString string, depth int, goroutines string, divide bool, out string) error {
	board, err := startBoard(gameType, gameString)
	if err != nil {
		return err
	}

	if divide {
		div, err := board.PerftDivide(ctx, depth)
		if err != nil {
			return err
		}
		moves := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			moves = append(moves, m)
			sum += n
		}
		slices.Sort(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return nil
	}

	counts, err := parseGoroutines(goroutines)
	if err != nil {
		return err
	}
	records, err := experiments.RunPerftExperiment(ctx, board, depth, counts, out)
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Printf("%d \t%d \t\t%d \t\t%s \t%.0f\n", r.Goroutines, r.Depth, r.Nodes, r.Duration, r.NodesPerSecond())
	}
	return nil
}

func runSelfPlay(ctx context.Context, gameType string, games int, goroutines string, maxMoves int, seed uint64, greedy bool, out string) error {
	expansions, err := game.ParseExpansionPieces(gameType)
	if err != nil {
		return err
	}
	counts, err := parseGoroutines(goroutines)
	if err != nil {
		return err
	}

	result, err := experiments.RunThroughputExperiment(ctx, experiments.SelfPlayConfig{
		Expansions: expansions,
		Games:      games,
		Goroutines: counts[0],
		MaxMoves:   maxMoves,
		Seed:       seed,
		Greedy:     greedy,
	}, out)
	if err != nil {
		return err
	}

	b := result.Batch
	fmt.Printf("games %d  moves %d  passes %d  white %d  black %d  draws %d  unfinished %d  in %s\n",
		b.Games, b.Moves, b.Passes, b.WhiteWins, b.BlackWins, b.Draws, b.Unfinished, b.Duration)
	return nil
}
