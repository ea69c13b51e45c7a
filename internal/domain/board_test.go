package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [3][3]string) Board {
	t.Helper()
	b, err := FromRows(rows)
	require.NoError(t, err)
	return b
}

func TestBoard_Winner(t *testing.T) {
	tests := []struct {
		name string
		rows [3][3]string
		want Cell
	}{
		{name: "empty", want: Empty},
		{
			name: "partial",
			rows: [3][3]string{{"X", "", ""}, {"", "O", ""}, {"", "", ""}},
			want: Empty,
		},
		{
			name: "row 1 for O",
			rows: [3][3]string{{"X", "X", ""}, {"O", "O", "O"}, {"X", "", ""}},
			want: O,
		},
		{
			name: "column 2 for X",
			rows: [3][3]string{{"O", "", "X"}, {"", "O", "X"}, {"", "", "X"}},
			want: X,
		},
		{
			name: "main diagonal",
			rows: [3][3]string{{"O", "X", ""}, {"X", "O", ""}, {"", "", "O"}},
			want: O,
		},
		{
			name: "anti diagonal",
			rows: [3][3]string{{"O", "", "X"}, {"O", "X", ""}, {"X", "", ""}},
			want: X,
		},
		{
			name: "full board without line",
			rows: [3][3]string{{"X", "O", "X"}, {"X", "O", "O"}, {"O", "X", "X"}},
			want: Empty,
		},
		{
			// rows are scanned before columns
			name: "row 0 and column 0 complete",
			rows: [3][3]string{{"X", "X", "X"}, {"O", "", ""}, {"O", "", ""}},
			want: X,
		},
		{
			name: "row 0 for X reported before row 2 for O",
			rows: [3][3]string{{"X", "X", "X"}, {"", "", ""}, {"O", "O", "O"}},
			want: X,
		},
		{
			name: "column 0 for O reported before column 2 for X",
			rows: [3][3]string{{"O", "", "X"}, {"O", "", "X"}, {"O", "", "X"}},
			want: O,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustRows(t, tt.rows)
			assert.Equal(t, tt.want, b.Winner())
		})
	}
}

func TestBoard_WinnerIffUniformLine(t *testing.T) {
	// Every one of the 3^9 boards: Winner is non-empty exactly when a line is uniform.
	for n := 0; n < 19683; n++ {
		var b Board
		v := n
		for i := range b {
			b[i] = Cell(v % 3)
			v /= 3
		}
		uniform := false
		for _, ln := range lines {
			if b[ln[0]] != Empty && b[ln[0]] == b[ln[1]] && b[ln[1]] == b[ln[2]] {
				uniform = true
				break
			}
		}
		if (b.Winner() != Empty) != uniform {
			t.Fatalf("board %s: winner=%v uniform=%v", b.String(), b.Winner(), uniform)
		}
	}
}

func TestBoard_Full(t *testing.T) {
	var b Board
	assert.False(t, b.Full())

	b = mustRows(t, [3][3]string{{"X", "O", "X"}, {"X", "O", "O"}, {"O", "X", ""}})
	assert.False(t, b.Full())

	require.NoError(t, b.Place(2, 2, X))
	assert.True(t, b.Full())
	assert.Equal(t, b.Full(), b.Full(), "Full must be idempotent")
}

func TestBoard_PlaceNeverClobbers(t *testing.T) {
	var b Board
	require.NoError(t, b.Place(1, 1, O))

	err := b.Place(1, 1, X)
	require.ErrorIs(t, err, ErrOccupied)
	require.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, O, b.At(1, 1))

	require.ErrorIs(t, b.Place(0, 0, Empty), ErrInvalidSymbol)
	assert.True(t, b.IsEmpty(0, 0))

	require.ErrorIs(t, b.Place(3, 0, X), ErrOutOfBounds)
}

func TestBoard_PlaceOnTerminalBoard(t *testing.T) {
	b := mustRows(t, [3][3]string{{"X", "X", "X"}, {"O", "O", ""}, {"", "", ""}})
	err := b.Place(1, 2, O)
	require.ErrorIs(t, err, ErrGameOver)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.True(t, b.IsEmpty(1, 2))
}

func TestBoard_Reset(t *testing.T) {
	b := mustRows(t, [3][3]string{{"X", "O", "X"}, {"X", "O", "O"}, {"O", "X", "X"}})
	b.Reset()

	assert.False(t, b.Full())
	assert.Equal(t, Empty, b.Winner())
	assert.Len(t, b.EmptyCells(), 9)
	assert.Equal(t, Outcome{Status: InProgress}, b.Outcome())
}

func TestBoard_EmptyCellsRowMajor(t *testing.T) {
	b := mustRows(t, [3][3]string{{"X", "", "O"}, {"", "X", ""}, {"O", "", ""}})
	want := []Pos{{0, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 2}}
	assert.Equal(t, want, b.EmptyCells())
}

func TestBoard_StringRoundTrip(t *testing.T) {
	b := mustRows(t, [3][3]string{{"X", "O", ""}, {"", "X", ""}, {"", "", "O"}})
	assert.Equal(t, "XO./.X./..O", b.String())

	parsed, err := ParseBoard("xo-/_X./..o")
	require.NoError(t, err)
	assert.Equal(t, b, parsed)
}

func TestParseBoard_Errors(t *testing.T) {
	for _, in := range []string{"", "XO./.X.", "XO./.X./..", "XO./.Z./..O"} {
		_, err := ParseBoard(in)
		assert.Error(t, err, in)
	}
}

func TestBoard_Outcome(t *testing.T) {
	won := mustRows(t, [3][3]string{{"O", "X", "X"}, {"", "O", "X"}, {"", "", "O"}})
	assert.Equal(t, Outcome{Status: Won, Winner: O}, won.Outcome())

	drawn := mustRows(t, [3][3]string{{"X", "O", "X"}, {"X", "O", "O"}, {"O", "X", "X"}})
	assert.Equal(t, Outcome{Status: Drawn}, drawn.Outcome())
	assert.True(t, drawn.Terminal())
}
