package ai

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// Skill grades a played move against the chooser's best move, for the
// tutor surfaces. Grades follow the usual annotation ladder.
type Skill int

const (
	SkillVeryBad  Skill = iota // blunder
	SkillBad                   // error
	SkillDoubtful              // questionable
	SkillNone                  // good or best
)

func (s Skill) String() string {
	return [...]string{"very bad", "bad", "doubtful", "none"}[s]
}

// Abbr returns the annotation mark for the grade.
func (s Skill) Abbr() string {
	return [...]string{"??", "?", "?!", ""}[s]
}

// Score-loss thresholds for the grades. The chooser's scores live on a
// heuristic point scale roughly ten times an equity scale.
var skillThresholds = [3]float64{1.2, 0.6, 0.3}

// Rate grades a score loss against the best available move.
func Rate(scoreLoss float64) Skill {
	switch {
	case scoreLoss >= skillThresholds[0]:
		return SkillVeryBad
	case scoreLoss >= skillThresholds[1]:
		return SkillBad
	case scoreLoss >= skillThresholds[2]:
		return SkillDoubtful
	}
	return SkillNone
}

// MoveReport is the tutor's verdict on one played move.
type MoveReport struct {
	Played   engine.Move `json:"played"`
	Best     engine.Move `json:"best"`
	Score    float64     `json:"score"`
	BestMark float64     `json:"best_score"`
	Loss     float64     `json:"loss"`
	Skill    Skill       `json:"skill"`
	Forced   bool        `json:"forced"`
}

// RateMove grades a move that was played on the given board. A forced or
// dance position always grades as none.
func (p *Player) RateMove(b engine.Board, played engine.Move) MoveReport {
	report := MoveReport{Played: played, Skill: SkillNone}

	ranked := p.RankMoves(b)
	if len(ranked) <= 1 {
		report.Forced = true
		if len(ranked) == 1 {
			report.Best = ranked[0].Move
			report.Score = ranked[0].Score
			report.BestMark = ranked[0].Score
		}
		return report
	}

	report.Best = ranked[0].Move
	report.BestMark = ranked[0].Score
	report.Score = ranked[len(ranked)-1].Score
	for _, r := range ranked {
		if r.Move == played {
			report.Score = r.Score
			break
		}
	}
	report.Loss = report.BestMark - report.Score
	report.Skill = Rate(report.Loss)
	return report
}
