package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
	"github.com/jaminalder/tic-tac-toe-bot/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotAPlayer  = errors.New("not a player")
)

// Human and Bot are the marks of the two sides. The human always opens.
const (
	Human = domain.X
	Bot   = domain.O
)

// Score tallies finished games within one session.
type Score struct {
	X    int
	O    int
	Draw int
}

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID         string
	Game       domain.Game
	Difficulty bot.Difficulty
	Player     string
	Score      Score
	LastBot    int
	Created    time.Time
	Updated    time.Time
}

// Status is a one-line description of the game for display.
func (gs GameState) Status() string {
	g := gs.Game
	switch {
	case g.Over && g.Winner == Human:
		return "You win"
	case g.Over && g.Winner == Bot:
		return "Bot wins"
	case g.Over:
		return "Draw"
	case g.Turn == Human:
		return "Your turn, you are X"
	default:
		return "Bot thinking"
	}
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	bot    *bot.Selector
	log    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the broadcast renderer.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) {
		if renderer != nil {
			s.render = renderer
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates a service whose bot moves come from sel. It panics
// if sel does not play the Bot mark.
func NewService(sel *bot.Selector, opts ...Option) *Service {
	if sel == nil || sel.Mark() != Bot {
		panic("app: selector must play " + Bot.String())
	}
	s := &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: func(gs GameState) []byte { return nil },
		bot:    sel,
		log:    slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(gs GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame creates and registers a new game at difficulty d.
func (s *Service) CreateGame(d bot.Difficulty) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	gs := &GameState{ID: id, Game: domain.New(), Difficulty: d, LastBot: bot.NoMove, Created: now, Updated: now}
	s.games[id] = gs
	s.log.Info("game created", "game", id, "difficulty", d)
	cp := *gs
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := *gs
	return &cp, true
}

// Join claims the human seat if it is free; returns Empty for spectators.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return domain.Empty, nil, ErrNotFound
	}
	side := domain.Empty
	if gs.Player == "" || gs.Player == playerID {
		gs.Player = playerID
		side = Human
	}
	gs.Updated = time.Now()
	cp := *gs
	return side, &cp, nil
}

// Play applies the human move at index idx and, unless that ended the
// game, the bot's reply. The result is broadcast to subscribers.
func (s *Service) Play(id, playerID string, idx int) (*GameState, error) {
	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if gs.Player != playerID {
		s.mu.Unlock()
		return nil, ErrNotAPlayer
	}
	if gs.Game.Turn != Human && !gs.Game.Over {
		s.mu.Unlock()
		return nil, ErrNotYourTurn
	}
	prev, prevBot := gs.Game, gs.LastBot
	if err := gs.Game.PlayIndex(idx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	gs.LastBot = bot.NoMove
	if !gs.Game.Over {
		if err := s.botTurnLocked(gs); err != nil {
			// Both moves land or neither does.
			gs.Game, gs.LastBot = prev, prevBot
			s.log.Error("bot move failed", "game", id, "difficulty", gs.Difficulty, "err", err)
			s.mu.Unlock()
			return nil, err
		}
	}
	if gs.Game.Over {
		s.tallyLocked(gs)
	}
	gs.Updated = time.Now()
	cp := *gs
	s.mu.Unlock()

	s.broadcast(cp)
	return &cp, nil
}

// botTurnLocked asks the selector for a move and applies it.
func (s *Service) botTurnLocked(gs *GameState) error {
	start := time.Now()
	move, err := s.bot.Select(gs.Game.Board, gs.Difficulty)
	if err != nil {
		return fmt.Errorf("bot move: %w", err)
	}
	if move == bot.NoMove {
		return nil
	}
	if err := gs.Game.PlayIndex(move); err != nil {
		return fmt.Errorf("bot move %d: %w", move, err)
	}
	gs.LastBot = move
	s.log.Debug("bot moved", "game", gs.ID, "difficulty", gs.Difficulty, "cell", move, "took", time.Since(start))
	return nil
}

func (s *Service) tallyLocked(gs *GameState) {
	switch gs.Game.Winner {
	case domain.X:
		gs.Score.X++
	case domain.O:
		gs.Score.O++
	default:
		gs.Score.Draw++
	}
	s.log.Info("game finished", "game", gs.ID, "outcome", gs.Game.Outcome(), "difficulty", gs.Difficulty)
}

// Reset starts a fresh board and keeps the score.
func (s *Service) Reset(id string) (*GameState, error) {
	return s.update(id, func(gs *GameState) {
		gs.Game = domain.New()
		gs.LastBot = bot.NoMove
	})
}

// ResetScore starts a fresh board and clears the score.
func (s *Service) ResetScore(id string) (*GameState, error) {
	return s.update(id, func(gs *GameState) {
		gs.Game = domain.New()
		gs.LastBot = bot.NoMove
		gs.Score = Score{}
	})
}

// SetDifficulty switches tiers. The board is reset so a game is never
// played under two policies.
func (s *Service) SetDifficulty(id string, d bot.Difficulty) (*GameState, error) {
	return s.update(id, func(gs *GameState) {
		gs.Difficulty = d
		gs.Game = domain.New()
		gs.LastBot = bot.NoMove
	})
}

func (s *Service) update(id string, fn func(gs *GameState)) (*GameState, error) {
	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	fn(gs)
	gs.Updated = time.Now()
	cp := *gs
	s.mu.Unlock()

	s.broadcast(cp)
	return &cp, nil
}

// broadcast renders cp and fans it out; slow subscribers are dropped.
// Sends are non-blocking, so holding the lock keeps them ordered with
// unsubscribe.
func (s *Service) broadcast(cp GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.subs[cp.ID]
	if !ok || len(set) == 0 {
		return
	}
	payload := s.render(cp)
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Warn("dropped slow subscribers", "game", cp.ID, "count", dropped)
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}
