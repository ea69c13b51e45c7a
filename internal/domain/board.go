package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns "X", "O" or "" for an empty cell.
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player's symbol. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Errors returned by board operations. Every error matches either
// ErrInvalidMove or ErrInvalidState with errors.Is.
var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidState = errors.New("invalid state")

	ErrOutOfBounds   = fmt.Errorf("%w: out of bounds", ErrInvalidMove)
	ErrOccupied      = fmt.Errorf("%w: cell occupied", ErrInvalidMove)
	ErrInvalidSymbol = fmt.Errorf("%w: symbol must be X or O", ErrInvalidMove)
	ErrGameOver      = fmt.Errorf("%w: game over", ErrInvalidState)
)

// Size is the side length of the board.
const Size = 3

// Pos is a (row, col) coordinate on the board.
type Pos struct {
	Row, Col int
}

// Board is a fixed 3x3 board stored row-major.
type Board [Size * Size]Cell

// lines lists the eight winning triples in scan order: rows, columns, diagonals.
var lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// InBounds reports whether (r, c) addresses a cell of the board.
func InBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// At returns the cell at row r, column c. Coordinates must be in bounds.
func (b *Board) At(r, c int) Cell {
	return b[r*Size+c]
}

// IsEmpty reports whether the in-bounds cell at (r, c) is unoccupied.
func (b *Board) IsEmpty(r, c int) bool {
	return b.At(r, c) == Empty
}

// Place puts side on row r, column c.
// The board is left untouched when an error is returned.
func (b *Board) Place(r, c int, side Cell) error {
	if side != X && side != O {
		return ErrInvalidSymbol
	}
	if b.Terminal() {
		return ErrGameOver
	}
	if !InBounds(r, c) {
		return ErrOutOfBounds
	}
	idx := r*Size + c
	if b[idx] != Empty {
		return ErrOccupied
	}
	b[idx] = side
	return nil
}

// Winner returns the symbol of the first complete line in scan order
// (rows, then columns, then the two diagonals), or Empty if there is none.
func (b *Board) Winner() Cell {
	for _, ln := range lines {
		v := b[ln[0]]
		if v != Empty && b[ln[1]] == v && b[ln[2]] == v {
			return v
		}
	}
	return Empty
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Terminal reports whether the board is won or full.
func (b *Board) Terminal() bool {
	return b.Winner() != Empty || b.Full()
}

// Reset clears every cell.
func (b *Board) Reset() {
	*b = Board{}
}

// EmptyCells lists unoccupied cells in row-major order.
func (b *Board) EmptyCells() []Pos {
	out := make([]Pos, 0, len(b))
	for i, c := range b {
		if c == Empty {
			out = append(out, Pos{Row: i / Size, Col: i % Size})
		}
	}
	return out
}

// String renders the board as three rows separated by "/", using "." for
// empty cells, e.g. "XO./.X./..O". ParseBoard accepts the same format.
func (b *Board) String() string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 && i%Size == 0 {
			sb.WriteByte('/')
		}
		if c == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}

// FromRows builds a board from rows of "X", "O" and "" strings.
// No game rules are checked, so any arrangement can be injected.
func FromRows(rows [Size][Size]string) (Board, error) {
	var b Board
	for r, row := range rows {
		for c, s := range row {
			cell, err := parseCell(s)
			if err != nil {
				return Board{}, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			b[r*Size+c] = cell
		}
	}
	return b, nil
}

// ParseBoard parses the format produced by Board.String. Lower-case marks,
// "-" and "_" are accepted as well.
func ParseBoard(s string) (Board, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != Size {
		return Board{}, fmt.Errorf("parse board %q: want %d rows, got %d", s, Size, len(parts))
	}
	var rows [Size][Size]string
	for r, p := range parts {
		if len(p) != Size {
			return Board{}, fmt.Errorf("parse board %q: row %d has %d cells", s, r, len(p))
		}
		for c := 0; c < Size; c++ {
			switch ch := p[c]; ch {
			case '.', '-', '_':
				rows[r][c] = ""
			default:
				rows[r][c] = strings.ToUpper(string(ch))
			}
		}
	}
	b, err := FromRows(rows)
	if err != nil {
		return Board{}, fmt.Errorf("parse board %q: %w", s, err)
	}
	return b, nil
}

func parseCell(s string) (Cell, error) {
	switch s {
	case "":
		return Empty, nil
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("unknown mark %q", s)
	}
}
