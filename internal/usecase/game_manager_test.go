package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
	mockedUseCase "github.com/rocketscienceinc/gomoku-backend/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func freshSnapshot(t *testing.T, size int) gomoku.Snapshot {
	t.Helper()

	session, err := gomoku.NewSession(size)
	require.NoError(t, err)

	return session.Snapshot()
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a fresh session under a new id", func(t *testing.T) {
		// Given: a repository that accepts writes
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("gomoku.Snapshot")).
			Run(func(_ context.Context, id string, snapshot gomoku.Snapshot) {
				assert.NotEmpty(t, id)
				assert.Equal(t, 15, snapshot.BoardSize)
				assert.Len(t, snapshot.History, 1)
			}).
			Return(nil).
			Once()

		// When: creating a game
		game, err := manager.NewGame(ctx)

		// Then: the view describes an empty board with X to move
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, 0, game.View.CurrentMove)
		assert.Equal(t, entity.X, game.View.NextToMove)
		assert.Equal(t, "Next player: X", game.View.Status)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.Anything, mock.Anything).
			Return(errRedisDown).
			Once()

		game, err := manager.NewGame(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})

	t.Run("Rejects an invalid board size", func(t *testing.T) {
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 0)

		_, err := manager.NewGame(ctx)

		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})
}

func TestGameManager_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the session after an accepted move", func(t *testing.T) {
		// Given: a stored empty session
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			GetByID(mock.Anything, "game1").
			Return(freshSnapshot(t, 15), nil).
			Once()
		mockSessionRepo.EXPECT().
			CreateOrUpdate(mock.Anything, "game1", mock.AnythingOfType("gomoku.Snapshot")).
			Run(func(_ context.Context, _ string, snapshot gomoku.Snapshot) {
				assert.Equal(t, 1, snapshot.CurrentMove)
				assert.Equal(t, entity.X, snapshot.History[1].At(7, 7))
			}).
			Return(nil).
			Once()

		// When: X plays the center
		game, accepted, err := manager.Play(ctx, "game1", 7, 7)

		// Then: the move is accepted and O is next
		require.NoError(t, err)
		assert.True(t, accepted)
		assert.Equal(t, entity.O, game.View.NextToMove)
	})

	t.Run("Does not save after a rejected move", func(t *testing.T) {
		// Given: a stored empty session
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			GetByID(mock.Anything, "game1").
			Return(freshSnapshot(t, 15), nil).
			Once()

		// When: playing outside the board
		game, accepted, err := manager.Play(ctx, "game1", 15, 0)

		// Then: the move is rejected without an error and nothing is written
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.Equal(t, 0, game.View.CurrentMove)
	})

	t.Run("Returns not found for unknown sessions", func(t *testing.T) {
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			GetByID(mock.Anything, "missing").
			Return(gomoku.Snapshot{}, apperror.ErrSessionNotFound).
			Once()

		game, accepted, err := manager.Play(ctx, "missing", 0, 0)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.False(t, accepted)
		assert.Nil(t, game)
	})

	t.Run("Returns corrupted history for a broken snapshot", func(t *testing.T) {
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			GetByID(mock.Anything, "broken").
			Return(gomoku.Snapshot{BoardSize: 15}, nil).
			Once()

		_, _, err := manager.Play(ctx, "broken", 0, 0)

		require.ErrorIs(t, err, apperror.ErrCorruptedHistory)
	})

	t.Run("Returns error if saving fails", func(t *testing.T) {
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			GetByID(mock.Anything, "game1").
			Return(freshSnapshot(t, 15), nil).
			Once()
		mockSessionRepo.EXPECT().
			CreateOrUpdate(mock.Anything, "game1", mock.Anything).
			Return(errRedisDown).
			Once()

		_, accepted, err := manager.Play(ctx, "game1", 0, 0)

		require.ErrorIs(t, err, errRedisDown)
		assert.False(t, accepted)
	})
}

func TestGameManager_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects an out of range move without saving", func(t *testing.T) {
		// Given: a stored empty session
		mockSessionRepo := mockedUseCase.NewMocksessionRepo(t)
		manager := NewGameManager(discardLogger(), mockSessionRepo, 15)

		mockSessionRepo.EXPECT().
			GetByID(mock.Anything, "game1").
			Return(freshSnapshot(t, 15), nil).
			Once()

		// When: jumping past the end of the history
		game, err := manager.JumpTo(ctx, "game1", 3)

		// Then: the jump is refused
		require.ErrorIs(t, err, apperror.ErrMoveOutOfRange)
		assert.Nil(t, game)
	})
}

func TestGameManager_WithMemoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays, jumps back and branches", func(t *testing.T) {
		// Given: a game with three moves played
		manager := NewGameManager(discardLogger(), repository.NewMemorySessionRepository(0), 15)
		game, err := manager.NewGame(ctx)
		require.NoError(t, err)

		for _, move := range [][2]int{{7, 7}, {7, 8}, {8, 8}} {
			_, accepted, err := manager.Play(ctx, game.ID, move[0], move[1])
			require.NoError(t, err)
			require.True(t, accepted)
		}

		// When: jumping back to move 1 and playing a different move
		jumped, err := manager.JumpTo(ctx, game.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, entity.O, jumped.View.NextToMove)
		assert.Len(t, jumped.View.Moves, 4)

		branched, accepted, err := manager.Play(ctx, game.ID, 0, 0)
		require.NoError(t, err)
		require.True(t, accepted)

		// Then: the later history is discarded
		assert.Equal(t, 2, branched.View.CurrentMove)
		assert.Len(t, branched.View.Moves, 3)
		assert.Equal(t, entity.O, branched.View.Board.At(0, 0))
		assert.Equal(t, entity.Empty, branched.View.Board.At(8, 8))

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, branched.View, stored.View)
	})

	t.Run("Ended games are gone", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), repository.NewMemorySessionRepository(0), 15)
		game, err := manager.NewGame(ctx)
		require.NoError(t, err)

		require.NoError(t, manager.EndGame(ctx, game.ID))

		_, err = manager.GetGame(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = manager.EndGame(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Sessions are independent", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), repository.NewMemorySessionRepository(0), 15)
		first, err := manager.NewGame(ctx)
		require.NoError(t, err)
		second, err := manager.NewGame(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		_, accepted, err := manager.Play(ctx, first.ID, 3, 3)
		require.NoError(t, err)
		require.True(t, accepted)

		untouched, err := manager.GetGame(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, untouched.View.CurrentMove)
		assert.True(t, untouched.View.Board.IsEmpty())
	})
}

func TestGameManager_WithRedisRepository(t *testing.T) {
	// Given: a game manager backed by a real Redis
	ctx, st := suite.New(t)
	manager := NewGameManager(st.Logger, repository.NewSessionRepository(st.Storage, time.Hour), 15)

	game, err := manager.NewGame(ctx)
	require.NoError(t, err)

	// When: X completes a horizontal line while O plays elsewhere
	for col := 0; col < 5; col++ {
		_, accepted, err := manager.Play(ctx, game.ID, 0, col)
		require.NoError(t, err)
		require.True(t, accepted)

		if col < 4 {
			_, accepted, err = manager.Play(ctx, game.ID, 5, col)
			require.NoError(t, err)
			require.True(t, accepted)
		}
	}

	// Then: the stored session reports X as the winner and refuses further moves
	stored, err := manager.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.X, stored.View.Winner)
	assert.Equal(t, "Winner: X", stored.View.Status)
	assert.Len(t, stored.View.WinningLine, 5)

	_, accepted, err := manager.Play(ctx, game.ID, 9, 9)
	require.NoError(t, err)
	assert.False(t, accepted)

	require.NoError(t, manager.EndGame(ctx, game.ID))
}
