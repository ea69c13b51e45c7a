package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jaminalder/tictactoe/internal/app"
	"github.com/jaminalder/tictactoe/internal/domain"
)

type handlers struct {
	svc *app.Service
	tpl *templates
}

func (h *handlers) renderBoard(gs app.Session, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	mode, err := app.ParseMode(r.Form.Get("mode"))
	if err != nil {
		http.Error(w, "unknown mode", http.StatusBadRequest)
		return
	}
	gs, err := h.svc.CreateSession(mode)
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := struct {
		ID    string
		Title string
		Board boardView
	}{ID: gs.ID, Title: modeTitle(gs.Mode), Board: newBoardView(*gs, "")}
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.game, "base", data))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	ri := formCoord(r.Form.Get("r"))
	ci := formCoord(r.Form.Get("c"))

	gs, err := h.svc.Play(id, ri, ci)
	var errMsg string
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		gs, _ = h.svc.Get(id)
		switch {
		case errors.Is(err, app.ErrNotYourTurn):
			errMsg = "Not your turn"
		case errors.Is(err, domain.ErrOccupied):
			errMsg = "Cell is occupied"
		case errors.Is(err, domain.ErrOutOfBounds):
			errMsg = "Out of bounds"
		case errors.Is(err, domain.ErrGameOver):
			errMsg = "Game is over"
		default:
			errMsg = "Invalid move"
		}
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	writeHTML(w, status, h.renderBoard(*gs, errMsg))
}

func (h *handlers) restart(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Restart(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, http.StatusOK, h.renderBoard(*gs, ""))
}

func (h *handlers) leave(w http.ResponseWriter, r *http.Request) {
	// ending an unknown session is not an error for the client
	_ = h.svc.End(chi.URLParam(r, "id"))
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formCoord parses a 0-based coordinate; anything unparsable maps to -1 so the
// domain reports it as out of bounds.
func formCoord(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}

func modeTitle(m app.Mode) string {
	if m == app.ModeAI {
		return "Playing vs AI"
	}
	return "Playing with a friend"
}

type cellView struct {
	Row, Col int
	Mark     string
	Disabled bool
}

type boardView struct {
	ID     string
	Status string
	Over   bool
	AINote string
	Error  string
	Rows   [domain.Size][domain.Size]cellView
}

func newBoardView(gs app.Session, errMsg string) boardView {
	v := boardView{ID: gs.ID, Status: gs.Status(), Over: gs.Game.Over(), Error: errMsg}
	if gs.AIMoved {
		v.AINote = fmt.Sprintf("AI played row %d, column %d (%s)", gs.LastAI.Row+1, gs.LastAI.Col+1, gs.LastAI.Rule)
	}
	for r := 0; r < domain.Size; r++ {
		for c := 0; c < domain.Size; c++ {
			mark := gs.Game.Board.At(r, c)
			v.Rows[r][c] = cellView{Row: r, Col: c, Mark: mark.String(), Disabled: v.Over || mark != domain.Empty}
		}
	}
	return v
}
