package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, id string, snapshot gomoku.Snapshot) error
	GetByID(ctx context.Context, id string) (gomoku.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// Game is a session as seen by the transports.
type Game struct {
	ID   string      `json:"id"`
	View gomoku.View `json:"view"`
}

// GameManager loads a session, applies one operation and stores it back.
// Operations are serialised so two requests never interleave on one session.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	boardSize   int

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, boardSize int) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		boardSize:   boardSize,
	}
}

func (that *GameManager) NewGame(ctx context.Context) (*Game, error) {
	session, err := gomoku.NewSession(that.boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	id := pkg.GenerateSessionID()

	if err = that.sessionRepo.CreateOrUpdate(ctx, id, session.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.Info("game created", "id", id, "board_size", that.boardSize)

	return &Game{ID: id, View: session.CurrentView()}, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*Game, error) {
	session, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Game{ID: id, View: session.CurrentView()}, nil
}

// Play reports whether the move was accepted. A rejected move is not an error.
func (that *GameManager) Play(ctx context.Context, id string, row, col int) (*Game, bool, error) {
	log := that.logger.With("method", "Play", "id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSession(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if !session.Play(row, col) {
		log.Debug("move rejected", "row", row, "col", col)
		return &Game{ID: id, View: session.CurrentView()}, false, nil
	}

	if err = that.saveSession(ctx, id, session); err != nil {
		return nil, false, err
	}

	view := session.CurrentView()
	log.Debug("move accepted", "row", row, "col", col, "move", view.CurrentMove)

	if view.Winner != entity.Empty {
		log.Info("game won", "winner", view.Winner, "move", view.CurrentMove, "board", view.Board.String())
	}

	return &Game{ID: id, View: view}, true, nil
}

func (that *GameManager) JumpTo(ctx context.Context, id string, move int) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = session.JumpTo(move); err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.saveSession(ctx, id, session); err != nil {
		return nil, err
	}

	return &Game{ID: id, View: session.CurrentView()}, nil
}

// EndGame discards the session state.
func (that *GameManager) EndGame(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("game ended", "id", id)

	return nil
}

func (that *GameManager) getSession(ctx context.Context, id string) (*gomoku.Session, error) {
	snapshot, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session, err := gomoku.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	return session, nil
}

func (that *GameManager) saveSession(ctx context.Context, id string, session *gomoku.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, id, session.Snapshot()); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
