// Command selfplay benchmarks the AI by playing it against itself in
// parallel and summarizing the results.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/bggame/pkg/ai"
	"github.com/yourusername/bggame/pkg/engine"
	"github.com/yourusername/bggame/pkg/game"
)

const maxTurns = 4096

type result struct {
	winner engine.Color
	kind   engine.Kind
	points int
	moves  int
	err    error
}

func main() {
	games := flag.Int("games", 500, "Number of games to play")
	white := flag.String("white", "normal", "White difficulty: easy, normal, hard")
	black := flag.String("black", "normal", "Black difficulty: easy, normal, hard")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel workers")
	seed := flag.Int64("seed", 0, "Base seed (0 seeds randomly)")
	flag.Parse()

	if *seed == 0 {
		*seed = rand.Int63()
	}
	if *workers < 1 {
		*workers = 1
	}

	fmt.Printf("self-play: %d games, white=%s black=%s, seed=%d, %d workers\n",
		*games, *white, *black, *seed, *workers)

	start := time.Now()
	results := run(*games, *workers, *seed, *white, *black)
	elapsed := time.Since(start)

	report(results, *white, *black, elapsed)
}

func run(games, workers int, seed int64, white, black string) []result {
	jobs := make(chan int64)
	out := make(chan result, games)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			whitePlayer := ai.NewPlayer(ai.ParseDifficulty(white))
			blackPlayer := ai.NewPlayer(ai.ParseDifficulty(black))
			for s := range jobs {
				out <- playGame(s, whitePlayer, blackPlayer)
			}
		}()
	}

	go func() {
		for i := 0; i < games; i++ {
			jobs <- seed + int64(i)
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	results := make([]result, 0, games)
	for r := range out {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "game failed: %v\n", r.err)
			continue
		}
		results = append(results, r)
	}
	return results
}

func playGame(seed int64, white, black *ai.Player) result {
	ctl := game.New(game.Options{
		MatchLength: 0,
		OpeningMode: game.OpeningAuction,
		Seed:        seed,
	})

	moves := 0
	for turn := 0; turn < maxTurns; turn++ {
		switch ctl.State() {
		case game.WaitingForRoll:
			if _, err := ctl.RollDice(); err != nil {
				return result{err: err}
			}
		case game.RolledDice, game.SelectingMove:
			board := ctl.BoardSnapshot()
			picker := white
			if board.Player == engine.Black {
				picker = black
			}
			m, ok := picker.ChooseMove(board)
			if !ok {
				if _, err := ctl.EndTurn(); err != nil {
					return result{err: err}
				}
				continue
			}
			events, err := ctl.RequestMove(m.From, m.To)
			if err != nil {
				return result{err: err}
			}
			moves++
			for _, ev := range events {
				if won, ok := ev.(game.GameWon); ok {
					return result{winner: won.Winner, kind: won.Result, points: won.Points, moves: moves}
				}
			}
		case game.GameOver:
			return result{err: fmt.Errorf("game over without a win event")}
		}
	}
	return result{err: fmt.Errorf("game exceeded %d turns", maxTurns)}
}

func report(results []result, white, black string, elapsed time.Duration) {
	if len(results) == 0 {
		fmt.Println("no completed games")
		return
	}

	var whiteWins, blackWins, singles, gammons, backgammons int
	moves := make([]float64, len(results))
	points := make([]float64, len(results))
	for i, r := range results {
		if r.winner == engine.White {
			whiteWins++
		} else {
			blackWins++
		}
		switch r.kind {
		case engine.Single:
			singles++
		case engine.Gammon:
			gammons++
		case engine.Backgammon:
			backgammons++
		}
		moves[i] = float64(r.moves)
		points[i] = float64(r.points)
	}

	n := float64(len(results))
	fmt.Printf("\n%d games in %v (%.1f games/s)\n", len(results), elapsed.Round(time.Millisecond), n/elapsed.Seconds())
	fmt.Printf("white (%s): %d wins (%.1f%%)\n", white, whiteWins, 100*float64(whiteWins)/n)
	fmt.Printf("black (%s): %d wins (%.1f%%)\n", black, blackWins, 100*float64(blackWins)/n)
	fmt.Printf("singles %d, gammons %d, backgammons %d\n", singles, gammons, backgammons)
	fmt.Printf("moves per game: mean %.1f, stddev %.1f\n", stat.Mean(moves, nil), stat.StdDev(moves, nil))
	fmt.Printf("points per game: mean %.2f, stddev %.2f\n", stat.Mean(points, nil), stat.StdDev(points, nil))
}
