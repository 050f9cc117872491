package game

import (
	"errors"
	"fmt"

	"github.com/yourusername/bggame/pkg/engine"
)

// ErrCorruptSave rejects a saved game that fails its integrity checks.
var ErrCorruptSave = errors.New("saved game fails integrity checks")

// SavedGame is the persistence record for a controller. Restore(Save())
// reproduces the controller state exactly, except for the per-turn undo
// stack and any registered listeners. PositionID duplicates the checker
// layout as a compact integrity check on load.
type SavedGame struct {
	Board          engine.Board `json:"board"`
	PositionID     string       `json:"position_id"`
	State          string       `json:"state"`
	Score          [2]int       `json:"score"`
	MatchLength    int          `json:"match_length"`
	GamesPlayed    int          `json:"games_played"`
	Cube           engine.Cube  `json:"cube"`
	History        []MoveRecord `json:"history"`
	AI             AIConfig     `json:"ai"`
	OpeningMode    string       `json:"opening_mode"`
	OpeningPending bool         `json:"opening_pending"`
	Crawford       bool         `json:"crawford"`
	CrawfordDue    bool         `json:"crawford_due"`
	CrawfordDone   bool         `json:"crawford_done"`
}

// Save captures the controller for persistence.
func (g *Controller) Save() SavedGame {
	return SavedGame{
		Board:          g.board,
		PositionID:     g.board.ID(),
		State:          g.state.String(),
		Score:          g.score,
		MatchLength:    g.matchLength,
		GamesPlayed:    g.gamesPlayed,
		Cube:           g.cube,
		History:        g.History(),
		AI:             g.ai,
		OpeningMode:    g.openingMode.String(),
		OpeningPending: g.openingPending,
		Crawford:       g.crawford,
		CrawfordDue:    g.crawfordDue,
		CrawfordDone:   g.crawfordDone,
	}
}

// Restore replaces the controller's state with a saved record. The AI
// picker is not persisted; call SetAI again if sg.AI.Enabled. The undo
// stack starts empty.
func (g *Controller) Restore(sg SavedGame) error {
	state, ok := parseTurnState(sg.State)
	if !ok {
		return fmt.Errorf("%w: unknown state %q", ErrCorruptSave, sg.State)
	}
	mode, ok := parseOpeningMode(sg.OpeningMode)
	if !ok {
		return fmt.Errorf("%w: unknown opening mode %q", ErrCorruptSave, sg.OpeningMode)
	}
	if err := sg.Board.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if sg.PositionID != "" {
		parsed, err := engine.ParseID(sg.PositionID)
		if err != nil {
			return fmt.Errorf("%w: bad position id: %v", ErrCorruptSave, err)
		}
		if parsed.Points != sg.Board.Points || parsed.Bar != sg.Board.Bar || parsed.Off != sg.Board.Off {
			return fmt.Errorf("%w: board does not match its position id", ErrCorruptSave)
		}
	}
	if (state == RolledDice || state == SelectingMove) && !sg.Board.DiceRolled() {
		return fmt.Errorf("%w: state %q with no dice rolled", ErrCorruptSave, sg.State)
	}
	if sg.Cube.Value < 1 || sg.Cube.Value > engine.MaxCubeValue {
		return fmt.Errorf("%w: cube value %d", ErrCorruptSave, sg.Cube.Value)
	}
	if sg.MatchLength < 0 || sg.GamesPlayed < 0 || sg.Score[0] < 0 || sg.Score[1] < 0 {
		return fmt.Errorf("%w: negative match totals", ErrCorruptSave)
	}

	g.board = sg.Board
	g.state = state
	g.score = sg.Score
	g.matchLength = sg.MatchLength
	g.gamesPlayed = sg.GamesPlayed
	g.cube = sg.Cube
	g.history = append(g.history[:0], sg.History...)
	g.ai = sg.AI
	g.openingMode = mode
	g.openingPending = sg.OpeningPending
	g.crawford = sg.Crawford
	g.crawfordDue = sg.CrawfordDue
	g.crawfordDone = sg.CrawfordDone
	g.undo.clear()

	g.gameNumber = g.gamesPlayed + 1
	if g.state == GameOver && g.gamesPlayed > 0 {
		g.gameNumber = g.gamesPlayed
	}
	return nil
}
