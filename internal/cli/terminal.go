// Package cli is a line-oriented front end for playing in a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tictactoe/internal/app"
	"github.com/jaminalder/tictactoe/internal/domain"
)

// Original palette: X blue, O red.
const (
	colorX = "#0A66E6"
	colorO = "#E61414"
)

var errQuit = errors.New("quit")

// Terminal runs games read from an input stream and rendered to an output.
type Terminal struct {
	svc  *app.Service
	in   *bufio.Scanner
	out  *termenv.Output
	mode app.Mode
}

// New returns a terminal front end. A non-empty mode skips the mode menu.
// opts are passed to termenv, e.g. termenv.WithProfile(termenv.Ascii).
func New(svc *app.Service, r io.Reader, w io.Writer, mode app.Mode, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{
		svc:  svc,
		in:   bufio.NewScanner(r),
		out:  termenv.NewOutput(w, opts...),
		mode: mode,
	}
}

// Run plays until the user quits, the input ends or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		mode := t.mode
		if mode == "" {
			var err error
			if mode, err = t.chooseMode(); err != nil {
				return ignoreQuit(err)
			}
		}
		gs, err := t.svc.CreateSession(mode)
		if err != nil {
			return err
		}
		err = t.playSession(ctx, gs)
		_ = t.svc.End(gs.ID)
		if err != nil {
			return ignoreQuit(err)
		}
		if t.mode != "" {
			return nil
		}
	}
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (t *Terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *Terminal) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(t.out, format, a...)
}

func (t *Terminal) chooseMode() (app.Mode, error) {
	for {
		t.printf("\n%s\n", t.out.String("Tic Tac Toe").Bold())
		t.printf("  1) Play vs AI\n  2) Play with Friend\n  q) Exit\n> ")
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		switch strings.ToLower(line) {
		case "1", "ai":
			return app.ModeAI, nil
		case "2", "friend":
			return app.ModeFriend, nil
		case "q", "quit", "exit":
			return "", errQuit
		default:
			t.printf("Unknown choice %q\n", line)
		}
	}
}

// playSession returns nil when the user goes back to the menu.
func (t *Terminal) playSession(ctx context.Context, gs *app.Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		t.printf("\n%s\n%s\n", t.renderBoard(gs.Game.Board), gs.Status())
		if gs.AIMoved {
			t.printf("AI played row %d, column %d (%s)\n", gs.LastAI.Row+1, gs.LastAI.Col+1, gs.LastAI.Rule)
		}

		if gs.Game.Over() {
			t.printf("Play again? [y/n] ")
			line, err := t.readLine()
			if err != nil {
				return err
			}
			switch strings.ToLower(line) {
			case "y", "yes", "":
				if gs, err = t.svc.Restart(gs.ID); err != nil {
					return err
				}
			case "q", "quit":
				return errQuit
			default:
				return nil
			}
			continue
		}

		t.printf("Player %s, enter row and column (1-3), r to restart, b for back, q to quit: ", gs.Game.Turn)
		line, err := t.readLine()
		if err != nil {
			return err
		}
		switch strings.ToLower(line) {
		case "q", "quit":
			return errQuit
		case "b", "back":
			return nil
		case "r", "restart":
			if gs, err = t.svc.Restart(gs.ID); err != nil {
				return err
			}
			continue
		}

		row, col, err := parseMove(line)
		if err != nil {
			t.printf("%v\n", err)
			continue
		}
		next, err := t.svc.Play(gs.ID, row, col)
		switch {
		case errors.Is(err, domain.ErrOccupied):
			t.printf("Cell is occupied\n")
		case errors.Is(err, domain.ErrOutOfBounds):
			t.printf("Out of bounds\n")
		case err != nil:
			return err
		default:
			gs = next
		}
	}
}

// parseMove reads "row col" or "row,col" with 1-based coordinates.
func parseMove(s string) (row, col int, err error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("enter a move as \"row column\", e.g. \"2 3\"")
	}
	row, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad row %q", fields[0])
	}
	col, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad column %q", fields[1])
	}
	return row - 1, col - 1, nil
}

func (t *Terminal) mark(c domain.Cell) string {
	switch c {
	case domain.X:
		return t.out.String("X").Foreground(t.out.Color(colorX)).Bold().String()
	case domain.O:
		return t.out.String("O").Foreground(t.out.Color(colorO)).Bold().String()
	default:
		return " "
	}
}

func (t *Terminal) renderBoard(b domain.Board) string {
	var sb strings.Builder
	sb.WriteString("    1   2   3\n")
	for r := 0; r < domain.Size; r++ {
		if r > 0 {
			sb.WriteString("   ---+---+---\n")
		}
		fmt.Fprintf(&sb, "%d   %s | %s | %s\n", r+1, t.mark(b.At(r, 0)), t.mark(b.At(r, 1)), t.mark(b.At(r, 2)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderBoard draws b without colours.
func RenderBoard(b domain.Board) string {
	t := &Terminal{out: termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))}
	return t.renderBoard(b)
}
