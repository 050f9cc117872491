package api

import (
	"context"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/bggame/pkg/ai"
	"github.com/yourusername/bggame/pkg/engine"
	"github.com/yourusername/bggame/pkg/game"
)

// gameResult is one finished self-play game.
type gameResult struct {
	winner engine.Color
	kind   engine.Kind
	points int
	moves  int
}

// playSelfPlayGame runs one AI-vs-AI game to the end. The safety cap
// exists so a pathological position can never wedge a simulation; no
// heuristic-vs-heuristic game gets anywhere near it.
func playSelfPlayGame(seed int64, white, black *ai.Player) (gameResult, error) {
	ctl := game.New(game.Options{MatchLength: 0, OpeningMode: game.OpeningAuction, Seed: seed})

	var res gameResult
	const maxTurns = 4096
	for turn := 0; turn < maxTurns; turn++ {
		if ctl.State() == game.GameOver {
			return res, nil
		}

		if ctl.State() == game.WaitingForRoll {
			if _, err := ctl.RollDice(); err != nil {
				return res, fmt.Errorf("self-play roll: %w", err)
			}
			continue
		}

		board := ctl.BoardSnapshot()
		picker := white
		if board.Player == engine.Black {
			picker = black
		}
		m, ok := picker.ChooseMove(board)
		if !ok {
			if _, err := ctl.EndTurn(); err != nil {
				return res, fmt.Errorf("self-play end turn: %w", err)
			}
			continue
		}
		events, err := ctl.RequestMove(m.From, m.To)
		if err != nil {
			return res, fmt.Errorf("self-play move %v: %w", m, err)
		}
		res.moves++
		for _, ev := range events {
			if won, isWin := ev.(game.GameWon); isWin {
				res.winner = won.Winner
				res.kind = won.Result
				res.points = won.Points
			}
		}
	}
	return res, fmt.Errorf("self-play game exceeded %d turns", maxTurns)
}

// runSimulation plays the requested batch, reporting progress after
// every game when the callback is non-nil.
func runSimulation(ctx context.Context, req SimulateRequest, progress func(SimProgress)) (SimulateResponse, error) {
	games := req.Games
	if games <= 0 {
		games = 100
	}
	seed := req.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	white := ai.NewPlayer(ai.ParseDifficulty(req.White))
	black := ai.NewPlayer(ai.ParseDifficulty(req.Black))

	resp := SimulateResponse{Games: games, Seed: seed}
	moves := make([]float64, 0, games)
	points := make([]float64, 0, games)

	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return resp, err
		}
		res, err := playSelfPlayGame(seed+int64(i), white, black)
		if err != nil {
			return resp, err
		}

		if res.winner == engine.White {
			resp.WhiteWins++
		} else {
			resp.BlackWins++
		}
		switch res.kind {
		case engine.Gammon:
			resp.Gammons++
		case engine.Backgammon:
			resp.Backgammons++
		default:
			resp.Singles++
		}
		moves = append(moves, float64(res.moves))
		points = append(points, float64(res.points))

		if progress != nil {
			progress(SimProgress{
				GamesDone:  i + 1,
				GamesTotal: games,
				Percent:    float64(i+1) / float64(games) * 100,
				WhiteWins:  resp.WhiteWins,
				BlackWins:  resp.BlackWins,
			})
		}
	}

	resp.MeanMoves = stat.Mean(moves, nil)
	resp.StdDevMoves = stat.StdDev(moves, nil)
	resp.MeanPoints = stat.Mean(points, nil)
	resp.StdDevPoints = stat.StdDev(points, nil)
	return resp, nil
}
