package domain

// Status is the coarse state of a board.
type Status uint8

const (
	InProgress Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is derived from the board on demand and never stored.
type Outcome struct {
	Status Status
	Winner Cell
}

// Outcome reports whether the board is won, drawn or still in progress.
func (b *Board) Outcome() Outcome {
	if w := b.Winner(); w != Empty {
		return Outcome{Status: Won, Winner: w}
	}
	if b.Full() {
		return Outcome{Status: Drawn}
	}
	return Outcome{Status: InProgress}
}

// Game holds the current state of a Tic-Tac-Toe match.
type Game struct {
	Board Board
	Turn  Cell
	Moves int
}

// New returns a new game with X to move.
func New() Game {
	return Game{Turn: X}
}

// Play places the current turn's mark at row r, column c (0..2) and hands the
// turn to the other side unless the move ended the game.
func (g *Game) Play(r, c int) error {
	if err := g.Board.Place(r, c, g.Turn); err != nil {
		return err
	}
	g.Moves++

	if !g.Board.Terminal() {
		g.Turn = g.Turn.Opponent()
	}
	return nil
}

// Over reports whether the game reached a terminal state.
func (g *Game) Over() bool { return g.Board.Terminal() }

// Winner returns the winning side, or Empty for a draw or unfinished game.
func (g *Game) Winner() Cell { return g.Board.Winner() }

// Outcome delegates to the board.
func (g *Game) Outcome() Outcome { return g.Board.Outcome() }

// Reset clears the board and gives the first move back to X.
func (g *Game) Reset() {
	*g = New()
}
