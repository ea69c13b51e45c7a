// Package ai picks moves for the computer player with a fixed-priority
// heuristic: win, block, center, opposite corner, corner, side, anything.
// It is not a game-tree search and can be beaten.
package ai

import (
	"math/rand/v2"

	"github.com/jaminalder/tictactoe/internal/domain"
)

// Rule identifies the heuristic step that produced a move.
type Rule uint8

const (
	RuleNone Rule = iota
	RuleWin
	RuleBlock
	RuleCenter
	RuleOppositeCorner
	RuleCorner
	RuleSide
	RuleAny
)

func (r Rule) String() string {
	switch r {
	case RuleWin:
		return "win"
	case RuleBlock:
		return "block"
	case RuleCenter:
		return "center"
	case RuleOppositeCorner:
		return "opposite_corner"
	case RuleCorner:
		return "corner"
	case RuleSide:
		return "side"
	case RuleAny:
		return "any"
	default:
		return "none"
	}
}

// Decision is a chosen cell and the rule that chose it.
type Decision struct {
	Row  int
	Col  int
	Rule Rule
}

// Source is the randomness used by the random rules. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

var (
	center  = domain.Pos{Row: 1, Col: 1}
	corners = []domain.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	sides   = []domain.Pos{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}

	// opposite corners as (opponent corner, reply) pairs, tried in order.
	// Each unordered pair appears twice with the roles swapped.
	oppositeCorners = [4][2]domain.Pos{
		{{Row: 0, Col: 0}, {Row: 2, Col: 2}},
		{{Row: 0, Col: 2}, {Row: 2, Col: 0}},
		{{Row: 2, Col: 0}, {Row: 0, Col: 2}},
		{{Row: 2, Col: 2}, {Row: 0, Col: 0}},
	}
)

// Selector chooses moves for one side. It is not safe for concurrent use
// when its Source is not.
type Selector struct {
	rng Source
}

// NewSelector returns a selector drawing random choices from rng.
func NewSelector(rng Source) *Selector {
	if rng == nil {
		rng = globalSource{}
	}
	return &Selector{rng: rng}
}

// NewSeeded returns a selector with a reproducible PCG source.
func NewSeeded(seed uint64) *Selector {
	return NewSelector(rand.New(rand.NewPCG(seed, seed)))
}

// Default returns a selector backed by the runtime-seeded global generator.
func Default() *Selector { return NewSelector(globalSource{}) }

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// SelectAIMove picks a move for ai on b with the default selector.
// ok is false when the board has no empty cell or ai is not a player mark.
func SelectAIMove(b domain.Board, ai domain.Cell) (row, col int, ok bool) {
	d, ok := Default().Select(b, ai)
	return d.Row, d.Col, ok
}

// Select returns the move for ai following the rule priority. b is taken by
// value, so the caller's board is never touched by the trial placements.
// Calling Select on a terminal board is a caller error; on a full board, or
// when ai is neither X nor O, it returns ok=false.
func (s *Selector) Select(b domain.Board, ai domain.Cell) (Decision, bool) {
	if ai != domain.X && ai != domain.O {
		return Decision{Row: -1, Col: -1}, false
	}
	opp := ai.Opponent()

	if p, ok := findWinningMove(b, ai); ok {
		return decide(p, RuleWin), true
	}
	if p, ok := findWinningMove(b, opp); ok {
		return decide(p, RuleBlock), true
	}
	if b.IsEmpty(center.Row, center.Col) {
		return decide(center, RuleCenter), true
	}
	if p, ok := oppositeCorner(b, opp); ok {
		return decide(p, RuleOppositeCorner), true
	}
	if p, ok := s.pick(b, corners); ok {
		return decide(p, RuleCorner), true
	}
	if p, ok := s.pick(b, sides); ok {
		return decide(p, RuleSide), true
	}
	if p, ok := s.pick(b, b.EmptyCells()); ok {
		return decide(p, RuleAny), true
	}
	return Decision{Row: -1, Col: -1}, false
}

func decide(p domain.Pos, r Rule) Decision {
	return Decision{Row: p.Row, Col: p.Col, Rule: r}
}

// findWinningMove scans empty cells row-major and returns the first one where
// placing mark completes a line for mark.
func findWinningMove(b domain.Board, mark domain.Cell) (domain.Pos, bool) {
	for _, p := range b.EmptyCells() {
		trial := b
		trial[p.Row*domain.Size+p.Col] = mark
		if trial.Winner() == mark {
			return p, true
		}
	}
	return domain.Pos{}, false
}

func oppositeCorner(b domain.Board, opp domain.Cell) (domain.Pos, bool) {
	for _, pair := range oppositeCorners {
		theirs, mine := pair[0], pair[1]
		if b.At(theirs.Row, theirs.Col) == opp && b.IsEmpty(mine.Row, mine.Col) {
			return mine, true
		}
	}
	return domain.Pos{}, false
}

// pick chooses uniformly among the empty cells of candidates.
func (s *Selector) pick(b domain.Board, candidates []domain.Pos) (domain.Pos, bool) {
	available := make([]domain.Pos, 0, len(candidates))
	for _, p := range candidates {
		if b.IsEmpty(p.Row, p.Col) {
			available = append(available, p)
		}
	}
	if len(available) == 0 {
		return domain.Pos{}, false
	}
	return available[s.rng.IntN(len(available))], true
}
