// Command bgplay plays backgammon in the terminal, against the
// computer or watching the computer play itself.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/bggame/pkg/ai"
	"github.com/yourusername/bggame/pkg/engine"
	"github.com/yourusername/bggame/pkg/game"
	"github.com/yourusername/bggame/pkg/match"
)

func main() {
	length := flag.Int("length", 7, "Match length in points (0 for a single session)")
	seed := flag.Int64("seed", 0, "Dice seed (0 seeds randomly)")
	difficulty := flag.String("difficulty", "normal", "Computer strength: easy, normal, hard")
	mode := flag.String("mode", "auction", "Opening mode: auction or simple")
	auto := flag.Bool("auto", false, "Computer plays both sides")
	aiColor := flag.String("ai", "black", "Computer side: white, black, none")
	exportPath := flag.String("export", "", "Write a MAT transcript to this file on exit")
	name := flag.String("name", "Player", "Your name for the transcript")
	flag.Parse()

	opening := game.OpeningAuction
	if *mode == "simple" {
		opening = game.OpeningSimple
	}

	ctl := game.New(game.Options{
		MatchLength: *length,
		OpeningMode: opening,
		Seed:        *seed,
	})

	picker := ai.NewPlayer(ai.ParseDifficulty(*difficulty))
	p1, p2 := *name, "Computer"
	switch {
	case *auto:
		p1, p2 = "Computer 1", "Computer 2"
	case *aiColor == "white":
		p1, p2 = "Computer", *name
		ctl.SetAI(game.AIConfig{Enabled: true, Player: engine.White, Difficulty: *difficulty}, picker)
	case *aiColor == "black":
		ctl.SetAI(game.AIConfig{Enabled: true, Player: engine.Black, Difficulty: *difficulty}, picker)
	}

	rec := match.NewRecorder(p1, p2, *length)
	ctl.Subscribe(rec.Handle)
	ctl.Subscribe(printEvent)

	// Replay the opening deal so the recorder sees it.
	if _, err := ctl.NewGame(); err != nil {
		fmt.Fprintf(os.Stderr, "starting game: %v\n", err)
		os.Exit(1)
	}

	if *auto {
		runAuto(ctl, picker)
	} else {
		runInteractive(ctl, *aiColor)
	}

	if *exportPath != "" {
		if err := writeTranscript(*exportPath, rec.Match()); err != nil {
			fmt.Fprintf(os.Stderr, "writing transcript: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("transcript written to %s\n", *exportPath)
	}
}

// runAuto lets the computer play both sides until the match ends or a
// session game finishes.
func runAuto(ctl *game.Controller, picker *ai.Player) {
	for {
		switch ctl.State() {
		case game.GameOver:
			if matchOver(ctl) || ctl.MatchLength() <= 0 {
				fmt.Println(ctl.BoardSnapshot())
				return
			}
			if _, err := ctl.NewGame(); err != nil {
				fmt.Fprintf(os.Stderr, "new game: %v\n", err)
				return
			}
		case game.WaitingForRoll:
			if _, err := ctl.RollDice(); err != nil {
				fmt.Fprintf(os.Stderr, "roll: %v\n", err)
				return
			}
		case game.RolledDice, game.SelectingMove:
			board := ctl.BoardSnapshot()
			m, ok := picker.ChooseMove(board)
			if !ok {
				if _, err := ctl.EndTurn(); err != nil {
					fmt.Fprintf(os.Stderr, "end turn: %v\n", err)
					return
				}
				continue
			}
			if _, err := ctl.RequestMove(m.From, m.To); err != nil {
				fmt.Fprintf(os.Stderr, "move: %v\n", err)
				return
			}
		default:
			return
		}
	}
}

func runInteractive(ctl *game.Controller, aiColor string) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("commands: roll, move <from> <to>, undo, end, double, accept, decline, hint, board, pips, new, quit")

	for {
		playAI(ctl, aiColor)
		if ctl.State() == game.GameOver && matchOver(ctl) {
			fmt.Println("match over")
			return
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "roll", "r":
			_, err = ctl.RollDice()
		case "move", "m":
			if len(fields) != 3 {
				fmt.Println("usage: move <from> <to>  (bar = 24, off = -1)")
				continue
			}
			var from, to int8
			from, err = parsePoint(fields[1])
			if err == nil {
				to, err = parsePoint(fields[2])
			}
			if err == nil {
				_, err = ctl.RequestMove(from, to)
			}
		case "undo", "u":
			_, err = ctl.UndoMove()
		case "end", "e":
			_, err = ctl.EndTurn()
		case "double", "d":
			_, err = ctl.OfferDouble()
		case "accept":
			_, err = ctl.AcceptDouble()
		case "decline":
			_, err = ctl.DeclineDouble()
		case "hint", "h":
			printHint(ctl)
		case "board", "b":
			fmt.Println(ctl.BoardSnapshot())
		case "pips", "p":
			fmt.Printf("white %d, black %d\n", ctl.PipCount(engine.White), ctl.PipCount(engine.Black))
		case "new", "n":
			_, err = ctl.NewGame()
		case "quit", "q":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
			continue
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

// playAI runs the computer's turns until it is the human's move again.
func playAI(ctl *game.Controller, aiColor string) {
	computer := colorFor(aiColor)
	if computer == engine.None {
		return
	}
	for ctl.State() != game.GameOver && ctl.BoardSnapshot().Player == computer {
		if _, err := ctl.PlayAITurn(); err != nil {
			return
		}
	}
}

func matchOver(ctl *game.Controller) bool {
	length := ctl.MatchLength()
	if length <= 0 {
		return false
	}
	score := ctl.Score()
	return score[0] >= length || score[1] >= length
}

func colorFor(s string) engine.Color {
	switch s {
	case "white":
		return engine.White
	case "black":
		return engine.Black
	}
	return engine.None
}

func parsePoint(s string) (int8, error) {
	switch s {
	case "bar":
		return engine.BarIndex, nil
	case "off":
		return engine.OffIndex, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 24 {
		return 0, fmt.Errorf("bad point %q", s)
	}
	return int8(n), nil
}

func printHint(ctl *game.Controller) {
	board := ctl.BoardSnapshot()
	ranked := ai.NewPlayer(ai.Hard).RankMoves(board)
	if len(ranked) == 0 {
		fmt.Println("no legal moves")
		return
	}
	limit := len(ranked)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		fmt.Printf("  %d. %d/%d (die %d) score %.2f\n",
			i+1, ranked[i].Move.From, ranked[i].Move.To, ranked[i].Move.Die, ranked[i].Score)
	}
}

func printEvent(ev game.Event) {
	switch e := ev.(type) {
	case game.DiceRolled:
		if e.Player == engine.None {
			fmt.Printf("opening roll %v ties, roll again\n", e.Values)
		} else {
			fmt.Printf("%s rolls %v\n", e.Player, e.Values)
		}
	case game.CheckerHit:
		fmt.Printf("%s is hit on point %d\n", e.Color, e.Point)
	case game.TurnEnded:
		fmt.Printf("%s to play\n", e.Next)
	case game.CubeOffered:
		fmt.Printf("%s doubles to %d\n", e.By, e.NewValue)
	case game.CubeAccepted:
		fmt.Printf("double taken, cube at %d\n", e.Value)
	case game.CubeDeclined:
		fmt.Printf("double dropped, %d point(s) to %s\n", e.Points, e.By.Opponent())
	case game.GameWon:
		fmt.Printf("%s wins a %s for %d point(s)\n", e.Winner, e.Result, e.Points)
	case game.MatchWon:
		fmt.Printf("%s wins the match %d-%d\n", e.Winner, e.Score[0], e.Score[1])
	}
}

func writeTranscript(path string, m *match.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := match.ExportMAT(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
