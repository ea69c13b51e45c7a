package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe/internal/ai"
	"github.com/jaminalder/tictactoe/internal/app"
	"github.com/jaminalder/tictactoe/internal/domain"
)

func run(t *testing.T, svc *app.Service, mode app.Mode, input string) string {
	t.Helper()
	var out bytes.Buffer
	term := New(svc, strings.NewReader(input), &out, mode, termenv.WithProfile(termenv.Ascii))
	require.NoError(t, term.Run(context.Background()))
	return out.String()
}

func TestRun_AIGame(t *testing.T) {
	svc := app.NewService(app.WithSelector(ai.NewSeeded(1)))

	out := run(t, svc, app.ModeAI, "1 1\n1,2\n3 3\nn\n")

	assert.Contains(t, out, "AI played row 2, column 2 (center)")
	assert.Contains(t, out, "AI played row 1, column 3 (block)")
	assert.Contains(t, out, "AI played row 3, column 1 (win)")
	assert.Contains(t, out, "Player O wins!")
	assert.Equal(t, 0, svc.Len(), "session must be ended when leaving")
}

func TestRun_FriendGameFromMenu(t *testing.T) {
	svc := app.NewService()
	input := strings.Join([]string{
		"2",   // friend mode
		"1 1", // X
		"1 1", // occupied
		"9 9", // out of bounds
		"foo", // not a move
		"2 1", // O
		"1 2", // X
		"2 2", // O
		"1 3", // X wins
		"q",
	}, "\n") + "\n"

	out := run(t, svc, "", input)

	assert.Contains(t, out, "Play with Friend")
	assert.Contains(t, out, "Cell is occupied")
	assert.Contains(t, out, "Out of bounds")
	assert.Contains(t, out, `enter a move as "row column"`)
	assert.Contains(t, out, "Player O, enter row and column")
	assert.Contains(t, out, "Player X wins!")
	assert.NotContains(t, out, "AI played")
}

func TestRun_RestartAndPlayAgain(t *testing.T) {
	svc := app.NewService()
	input := "2\n1 1\nr\n1 1\n2 1\n1 2\n2 2\n1 3\ny\nb\nq\n"

	out := run(t, svc, "", input)

	// the win is reported once; "y" brings back an empty board
	assert.Equal(t, 1, strings.Count(out, "Player X wins!"))
	assert.Contains(t, out, "Play again?")
	assert.Equal(t, 0, svc.Len())
}

func TestRun_EndOfInput(t *testing.T) {
	out := run(t, app.NewService(), "", "")
	assert.Contains(t, out, "Tic Tac Toe")
}

func TestRun_UnknownMenuChoice(t *testing.T) {
	out := run(t, app.NewService(), "", "7\nq\n")
	assert.Contains(t, out, `Unknown choice "7"`)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	term := New(app.NewService(), strings.NewReader("1\n"), &bytes.Buffer{}, "", termenv.WithProfile(termenv.Ascii))
	assert.ErrorIs(t, term.Run(ctx), context.Canceled)
}

func TestParseMove(t *testing.T) {
	row, col, err := parseMove("2 3")
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, [2]int{row, col})

	row, col, err = parseMove("3,1")
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 0}, [2]int{row, col})

	for _, bad := range []string{"", "1", "a b", "1 b", "1 2 3"} {
		_, _, err := parseMove(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderBoard(t *testing.T) {
	b, err := domain.ParseBoard("XO./.X./..O")
	require.NoError(t, err)

	want := strings.Join([]string{
		"    1   2   3",
		"1   X | O |  ",
		"   ---+---+---",
		"2     | X |  ",
		"   ---+---+---",
		"3     |   | O",
	}, "\n")
	assert.Equal(t, want, RenderBoard(b))
}
