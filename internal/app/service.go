package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe/internal/ai"
	"github.com/jaminalder/tictactoe/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode selects who plays O.
type Mode string

const (
	// ModeAI pits the human (always X, always first) against the heuristic AI as O.
	ModeAI Mode = "ai"
	// ModeFriend is two humans sharing one board, alternating X and O.
	ModeFriend Mode = "friend"
)

// Sides in ModeAI.
const (
	HumanSide = domain.X
	AISide    = domain.O
)

// ParseMode maps "ai" or "friend" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAI, ModeFriend:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MoveSelector picks the next cell for side. *ai.Selector implements it.
type MoveSelector interface {
	Select(b domain.Board, side domain.Cell) (ai.Decision, bool)
}

// Session is one game owned by the service.
type Session struct {
	ID      string
	Mode    Mode
	Game    domain.Game
	LastAI  ai.Decision
	AIMoved bool // LastAI is the reply to the latest human move
	Created time.Time
	Updated time.Time
}

// Status is the line shown above the board.
func (s Session) Status() string {
	switch out := s.Game.Outcome(); out.Status {
	case domain.Won:
		return fmt.Sprintf("Player %s wins!", out.Winner)
	case domain.Drawn:
		return "It's a tie!"
	default:
		return fmt.Sprintf("Player %s's turn", s.Game.Turn)
	}
}

// Service manages game sessions in memory.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	selector MoveSelector
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSelector replaces the AI move selector.
func WithSelector(sel MoveSelector) Option {
	return func(s *Service) { s.selector = sel }
}

// WithLogger sets the logger used for session events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log.With().Str("component", "app").Logger() }
}

// NewService creates a service. Without options it uses the default AI
// selector and discards logs.
func NewService(opts ...Option) *Service {
	s := &Service{
		sessions: make(map[string]*Session),
		selector: ai.Default(),
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession creates and registers a fresh game. X moves first.
func (s *Service) CreateSession(mode Mode) (*Session, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess := &Session{ID: uuid.NewString(), Mode: mode, Game: domain.New(), Created: now, Updated: now}
	s.sessions[sess.ID] = sess
	s.log.Info().Str("session", sess.ID).Str("mode", string(mode)).Msg("session created")
	cp := *sess
	return &cp, nil
}

// Get returns a copy of the session if present.
func (s *Service) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	cp := *sess
	return &cp, true
}

// Play applies the human move at row r, column c. In ModeAI the AI answers
// immediately unless the human move ended the game.
func (s *Service) Play(id string, r, c int) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	log := s.log.With().Str("session", sess.ID).Str("mode", string(sess.Mode)).Logger()

	if sess.Mode == ModeAI && sess.Game.Turn != HumanSide && !sess.Game.Over() {
		return nil, ErrNotYourTurn
	}
	side := sess.Game.Turn
	if err := sess.Game.Play(r, c); err != nil {
		log.Debug().Err(err).Int("row", r).Int("col", c).Msg("move rejected")
		return nil, fmt.Errorf("play %d,%d: %w", r, c, err)
	}
	sess.LastAI, sess.AIMoved = ai.Decision{}, false
	log.Info().Stringer("side", side).Int("row", r).Int("col", c).Str("board", sess.Game.Board.String()).Msg("move")

	if sess.Mode == ModeAI && !sess.Game.Over() {
		d, ok := s.selector.Select(sess.Game.Board, AISide)
		if ok {
			if err := sess.Game.Play(d.Row, d.Col); err != nil {
				return nil, fmt.Errorf("ai move %d,%d: %w", d.Row, d.Col, err)
			}
			sess.LastAI, sess.AIMoved = d, true
			log.Info().Stringer("side", AISide).Int("row", d.Row).Int("col", d.Col).
				Stringer("rule", d.Rule).Str("board", sess.Game.Board.String()).Msg("ai move")
		}
	}

	sess.Updated = s.now()
	if sess.Game.Over() {
		log.Info().Str("result", sess.Status()).Int("moves", sess.Game.Moves).Msg("game over")
	}
	cp := *sess
	return &cp, nil
}

// Restart clears the board of a session and hands the first move to X.
func (s *Service) Restart(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.Game.Reset()
	sess.LastAI, sess.AIMoved = ai.Decision{}, false
	sess.Updated = s.now()
	s.log.Info().Str("session", id).Msg("session restarted")
	cp := *sess
	return &cp, nil
}

// End discards a session.
func (s *Service) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	s.log.Info().Str("session", id).Msg("session ended")
	return nil
}

// Len returns the number of live sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
