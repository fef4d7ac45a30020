package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkForMove(t *testing.T) {
	t.Run("Even moves belong to X", func(t *testing.T) {
		for _, move := range []int{0, 2, 4, 224} {
			assert.Equal(t, X, MarkForMove(move))
		}
	})

	t.Run("Odd moves belong to O", func(t *testing.T) {
		for _, move := range []int{1, 3, 5, 223} {
			assert.Equal(t, O, MarkForMove(move))
		}
	})
}

func TestNewBoard(t *testing.T) {
	// When: creating a 15x15 board
	board := NewBoard(15)

	// Then: it should be square and empty
	assert.Equal(t, 15, board.Size())
	assert.True(t, board.IsEmpty())
	assert.Equal(t, Empty, board.At(14, 14))
}

func TestBoard_Place(t *testing.T) {
	t.Run("Returns a new board and leaves the original untouched", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(15)

		// When: placing X at (7, 7)
		next, err := board.Place(7, 7, X)
		require.NoError(t, err)

		// Then: only the new board carries the mark
		assert.Equal(t, X, next.At(7, 7))
		assert.Equal(t, Empty, board.At(7, 7))
		assert.True(t, board.IsEmpty())
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: a board with X at (0, 0)
		board, err := NewBoard(5).Place(0, 0, X)
		require.NoError(t, err)

		// When: O tries the same cell
		_, err = board.Place(0, 0, O)

		// Then: ErrCellOccupied should be returned
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, X, board.At(0, 0))
	})

	t.Run("Error on Invalid Cell Index", func(t *testing.T) {
		board := NewBoard(5)

		for _, cell := range []Cell{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
			// When: placing outside the grid
			_, err := board.Place(cell.Row, cell.Col, X)

			// Then: ErrInvalidCell should be returned
			assert.ErrorIs(t, err, ErrInvalidCell)
		}
	})

	t.Run("Error on Empty Mark", func(t *testing.T) {
		_, err := NewBoard(5).Place(1, 1, Empty)

		assert.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestBoard_Rows(t *testing.T) {
	// Given: a board with a single mark
	board, err := NewBoard(3).Place(1, 2, O)
	require.NoError(t, err)

	// When: the caller mutates the returned rows
	rows := board.Rows()
	rows[1][2] = X

	// Then: the board stays as it was
	assert.Equal(t, O, board.At(1, 2))
}

func TestBoard_Diff(t *testing.T) {
	t.Run("Lists changed cells", func(t *testing.T) {
		before := NewBoard(5)
		after, err := before.Place(2, 3, X)
		require.NoError(t, err)

		diff, err := before.Diff(after)

		require.NoError(t, err)
		assert.Equal(t, []Cell{{Row: 2, Col: 3}}, diff)
		assert.False(t, before.Equal(after))
		assert.True(t, after.Equal(after))
	})

	t.Run("Error on size mismatch", func(t *testing.T) {
		_, err := NewBoard(5).Diff(NewBoard(6))

		assert.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestBoard_String(t *testing.T) {
	board, err := NewBoard(3).Place(0, 0, X)
	require.NoError(t, err)
	board, err = board.Place(2, 1, O)
	require.NoError(t, err)

	assert.Equal(t, "X..\n...\n.O.", board.String())
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Encodes as rows of marks", func(t *testing.T) {
		board, err := NewBoard(2).Place(0, 1, X)
		require.NoError(t, err)

		data, err := json.Marshal(board)

		require.NoError(t, err)
		assert.JSONEq(t, `[["","X"],["",""]]`, string(data))
	})

	t.Run("Decodes back into an equal board", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[["O","",""],["","X",""],["","",""]]`), &board)

		require.NoError(t, err)
		assert.Equal(t, 3, board.Size())
		assert.Equal(t, O, board.At(0, 0))
		assert.Equal(t, X, board.At(1, 1))
	})

	t.Run("Rejects ragged rows", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[["",""],[""]]`), &board)

		assert.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[["Z"]]`), &board)

		assert.ErrorIs(t, err, ErrInvalidBoard)
	})
}
