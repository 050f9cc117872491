package match

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/bggame/pkg/engine"
)

// MAT is the Jellyfish/gnubg match transcript format. Example:
//
//	; [Player 1 "Human"]
//	; [Player 2 "Computer"]
//	7 point match
//
//	Game 1
//	Human : 0                 Computer : 0
//	  1) 31: 8/5 6/5          52: 24/22 13/8
//	  2) Doubles => 2         Takes
//	...
//	     Wins 2 points
//
// Points are written from each player's own perspective, 24 down to 1,
// with "bar" and "off" for entries and bear-offs.

var (
	matchLengthRE = regexp.MustCompile(`(\d+)\s+point\s+match`)
	gameHeaderRE  = regexp.MustCompile(`^Game\s+(\d+)`)
	scoreLineRE   = regexp.MustCompile(`^(.+?)\s*:\s*(\d+)\s+(.+?)\s*:\s*(\d+)$`)
	moveLineRE    = regexp.MustCompile(`^\s*\d+\)`)
	winsRE        = regexp.MustCompile(`Wins\s+(\d+)\s+point`)
	tagRE         = regexp.MustCompile(`\[([\w ]+)\s+"([^"]+)"\]`)
	columnSplitRE = regexp.MustCompile(`\s{3,}`)
)

// ExportMAT writes the match as MAT text.
func ExportMAT(w io.Writer, m *Match) error {
	if m.Place != "" {
		fmt.Fprintf(w, " ; [Site \"%s\"]\n", m.Place)
	}
	if m.Event != "" {
		fmt.Fprintf(w, " ; [Event \"%s\"]\n", m.Event)
	}
	if m.Date != "" {
		fmt.Fprintf(w, " ; [Date \"%s\"]\n", m.Date)
	}
	fmt.Fprintf(w, " ; [Player 1 \"%s\"]\n", m.Player1)
	fmt.Fprintf(w, " ; [Player 2 \"%s\"]\n", m.Player2)
	if m.Annotator != "" {
		fmt.Fprintf(w, " ; [Annotator \"%s\"]\n", m.Annotator)
	}
	if m.Length > 0 {
		fmt.Fprintf(w, " %d point match\n\n", m.Length)
	} else {
		fmt.Fprintf(w, " Unlimited match\n\n")
	}

	for _, g := range m.Games {
		if err := exportGame(w, m, g); err != nil {
			return err
		}
	}
	return nil
}

// turnCell is one player's column entry on a transcript line.
type turnCell struct {
	player engine.Color
	text   string
}

func exportGame(w io.Writer, m *Match, g *Game) error {
	fmt.Fprintf(w, " Game %d\n", g.Number)
	fmt.Fprintf(w, " %s : %d                 %s : %d\n", m.Player1, g.Score1, m.Player2, g.Score2)

	cells := gameCells(g)
	if g.Winner.Valid() && g.Points > 0 {
		cells = append(cells, turnCell{
			player: g.Winner,
			text:   fmt.Sprintf("Wins %d point%s", g.Points, plural(g.Points)),
		})
	}

	line := 0
	for i := 0; i < len(cells); {
		line++
		white, black := "", ""
		if cells[i].player == engine.White {
			white = cells[i].text
			i++
		}
		if i < len(cells) && cells[i].player == engine.Black {
			black = cells[i].text
			i++
		}
		if _, err := fmt.Fprintf(w, "%3d) %s\n", line, strings.TrimRight(fmt.Sprintf("%-24s %s", white, black), " ")); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return nil
}

// gameCells folds the flat action list into per-player column entries:
// a roll and the moves it produced become one cell, cube actions stand
// alone.
func gameCells(g *Game) []turnCell {
	var cells []turnCell
	for i := 0; i < len(g.Actions); {
		a := g.Actions[i]
		switch a.Type {
		case ActionRoll:
			var moves []string
			j := i + 1
			for ; j < len(g.Actions) && g.Actions[j].Type == ActionMove && g.Actions[j].Player == a.Player; j++ {
				moves = append(moves, formatMove(g.Actions[j].Move, a.Player))
			}
			text := fmt.Sprintf("%d%d:", a.Dice[0], a.Dice[1])
			if len(moves) > 0 {
				text += " " + strings.Join(moves, " ")
			}
			cells = append(cells, turnCell{player: a.Player, text: text})
			i = j
		case ActionDouble:
			cells = append(cells, turnCell{player: a.Player, text: fmt.Sprintf("Doubles => %d", a.Value)})
			i++
		case ActionTake:
			cells = append(cells, turnCell{player: a.Player, text: "Takes"})
			i++
		case ActionDrop:
			cells = append(cells, turnCell{player: a.Player, text: "Drops"})
			i++
		default:
			i++
		}
	}
	return cells
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// formatMove renders a move in the mover's own 24..1 perspective.
func formatMove(m engine.Move, player engine.Color) string {
	return formatPoint(m.From, player) + "/" + formatPoint(m.To, player)
}

func formatPoint(p int8, player engine.Color) string {
	switch p {
	case engine.BarIndex:
		return "bar"
	case engine.OffIndex:
		return "off"
	}
	if player == engine.White {
		return strconv.Itoa(int(p) + 1)
	}
	return strconv.Itoa(24 - int(p))
}

// parsePoint is the inverse of formatPoint.
func parsePoint(s string, player engine.Color) (int8, bool) {
	switch strings.ToLower(s) {
	case "bar":
		return engine.BarIndex, true
	case "off", "home":
		return engine.OffIndex, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 24 {
		return 0, false
	}
	if player == engine.White {
		return int8(n - 1), true
	}
	return int8(24 - n), true
}

// ParseMAT reads a MAT transcript back into a Match. Tolerant of layout
// noise: unrecognized lines are skipped, move dies are re-derived from
// the pip distance.
func ParseMAT(r io.Reader) (*Match, error) {
	scanner := bufio.NewScanner(r)
	m := &Match{Games: make([]*Game, 0)}

	var g *Game
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ";") {
			if t := tagRE.FindStringSubmatch(line); t != nil {
				switch strings.ToLower(t[1]) {
				case "player 1", "player1":
					m.Player1 = t[2]
				case "player 2", "player2":
					m.Player2 = t[2]
				case "site", "place":
					m.Place = t[2]
				case "event":
					m.Event = t[2]
				case "date":
					m.Date = t[2]
				case "annotator", "transcriber":
					m.Annotator = t[2]
				}
			}
			continue
		}

		if t := matchLengthRE.FindStringSubmatch(line); t != nil {
			m.Length, _ = strconv.Atoi(t[1])
			continue
		}

		if t := gameHeaderRE.FindStringSubmatch(line); t != nil {
			n, _ := strconv.Atoi(t[1])
			g = m.StartGame(0, 0, false)
			g.Number = n
			continue
		}
		if g == nil {
			continue
		}

		if t := scoreLineRE.FindStringSubmatch(line); t != nil && len(g.Actions) == 0 {
			if m.Player1 == "" {
				m.Player1 = strings.TrimSpace(t[1])
			}
			if m.Player2 == "" {
				m.Player2 = strings.TrimSpace(t[3])
			}
			g.Score1, _ = strconv.Atoi(t[2])
			g.Score2, _ = strconv.Atoi(t[4])
			continue
		}

		if moveLineRE.MatchString(line) {
			parseTurnLine(line, g)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MAT transcript: %w", err)
	}
	return m, nil
}

// parseTurnLine splits "N) <white cell>   <black cell>" into the two
// column entries. Three or more spaces separate the columns.
func parseTurnLine(line string, g *Game) {
	parts := strings.SplitN(line, ")", 2)
	if len(parts) != 2 {
		return
	}
	rest := parts[1]
	halves := columnSplitRE.Split(strings.TrimSpace(rest), 2)

	// A line whose only cell sits deep in the right column belongs to the
	// second player (the first player's column was blank).
	if len(halves) == 1 && len(rest)-len(strings.TrimLeft(rest, " ")) >= 20 {
		parseCell(strings.TrimSpace(halves[0]), engine.Black, g)
		return
	}
	players := [2]engine.Color{engine.White, engine.Black}
	for i, half := range halves {
		parseCell(strings.TrimSpace(half), players[i], g)
	}
}

func parseCell(text string, player engine.Color, g *Game) {
	if text == "" {
		return
	}
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "doubles"):
		g.AddDouble(player, g.CubeValue*2)
		return
	case lower == "takes":
		g.AddTake(player)
		return
	case lower == "drops" || lower == "passes":
		g.AddDrop(player)
		return
	case strings.HasPrefix(lower, "wins"):
		if t := winsRE.FindStringSubmatch(text); t != nil {
			g.Winner = player
			g.Points, _ = strconv.Atoi(t[1])
			if g.Result != ResultDrop {
				g.Result = resultForPoints(g.Points, g.CubeValue)
			}
		}
		return
	}

	colon := strings.Index(text, ":")
	if colon == -1 {
		return
	}
	dice := strings.TrimSpace(text[:colon])
	if len(dice) < 2 {
		return
	}
	d1 := int8(dice[0] - '0')
	d2 := int8(dice[1] - '0')
	if d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
		return
	}
	g.AddRoll(player, d1, d2)

	for _, part := range strings.Fields(text[colon+1:]) {
		if strings.Contains(strings.ToLower(part), "cannot") {
			break
		}
		count := 1
		if open := strings.Index(part, "("); open != -1 {
			if end := strings.Index(part, ")"); end > open {
				count, _ = strconv.Atoi(part[open+1 : end])
			}
			part = part[:open]
		}
		fromTo := strings.Split(part, "/")
		if len(fromTo) != 2 {
			continue
		}
		from, ok1 := parsePoint(fromTo[0], player)
		to, ok2 := parsePoint(fromTo[1], player)
		if !ok1 || !ok2 {
			continue
		}
		die := engine.MoveDistance(from, to, player)
		for i := 0; i < count; i++ {
			g.AddMove(player, engine.Move{From: from, To: to, Die: die})
		}
	}
}

// resultForPoints recovers the win kind from the scored points and the
// cube value the transcript reached.
func resultForPoints(points, cube int) Result {
	if cube < 1 {
		cube = 1
	}
	switch points / cube {
	case 2:
		return ResultGammon
	case 3:
		return ResultBackgammon
	default:
		return ResultSingle
	}
}
