package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const DefaultBoardSize = 15

// Session owns the move history of one game and the cursor into it.
// It is not safe for concurrent use.
type Session struct {
	boardSize int
	history   []entity.Board
	cursor    int
}

func NewSession(boardSize int) (*Session, error) {
	if boardSize < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, boardSize)
	}

	return &Session{
		boardSize: boardSize,
		history:   []entity.Board{entity.NewBoard(boardSize)},
	}, nil
}

// Play places the mark of the side to move at (row, col). It reports false and
// leaves the session untouched when the game is already won or the cell is
// occupied or off the board.
func (that *Session) Play(row, col int) bool {
	current := that.currentBoard()

	if DetectWinner(current) != entity.Empty {
		return false
	}

	next, err := current.Place(row, col, entity.MarkForMove(that.cursor))
	if err != nil {
		return false
	}

	// drop the future entries left behind by an earlier JumpTo
	that.history = append(that.history[:that.cursor+1:that.cursor+1], next)
	that.cursor = len(that.history) - 1

	return true
}

// JumpTo moves the cursor to a past board. Indexes outside the history are
// rejected with apperror.ErrMoveOutOfRange.
func (that *Session) JumpTo(move int) error {
	if move < 0 || move >= len(that.history) {
		return fmt.Errorf("%w: move %d, history holds moves 0..%d", apperror.ErrMoveOutOfRange, move, len(that.history)-1)
	}

	that.cursor = move

	return nil
}

func (that *Session) BoardSize() int {
	return that.boardSize
}

func (that *Session) CurrentMove() int {
	return that.cursor
}

// History returns a copy of all board snapshots, the empty board first.
func (that *Session) History() []entity.Board {
	return append([]entity.Board(nil), that.history...)
}

func (that *Session) currentBoard() entity.Board {
	return that.history[that.cursor]
}
