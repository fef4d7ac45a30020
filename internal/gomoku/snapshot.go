package gomoku

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Snapshot is the serialisable form of a Session.
type Snapshot struct {
	BoardSize   int            `json:"board_size"`
	History     []entity.Board `json:"history"`
	CurrentMove int            `json:"current_move"`
}

func (that *Session) Snapshot() Snapshot {
	return Snapshot{
		BoardSize:   that.boardSize,
		History:     that.History(),
		CurrentMove: that.cursor,
	}
}

// Restore rebuilds a Session, checking that every entry follows from the
// previous one by a single legal move.
func Restore(snapshot Snapshot) (*Session, error) {
	if snapshot.BoardSize < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, snapshot.BoardSize)
	}

	if len(snapshot.History) == 0 {
		return nil, fmt.Errorf("%w: no initial board", apperror.ErrCorruptedHistory)
	}

	if snapshot.CurrentMove < 0 || snapshot.CurrentMove >= len(snapshot.History) {
		return nil, fmt.Errorf("%w: current move %d outside 0..%d",
			apperror.ErrCorruptedHistory, snapshot.CurrentMove, len(snapshot.History)-1)
	}

	for i, board := range snapshot.History {
		if board.Size() != snapshot.BoardSize {
			return nil, fmt.Errorf("%w: entry %d has size %d, want %d",
				apperror.ErrCorruptedHistory, i, board.Size(), snapshot.BoardSize)
		}
	}

	if !snapshot.History[0].IsEmpty() {
		return nil, fmt.Errorf("%w: initial board is not empty", apperror.ErrCorruptedHistory)
	}

	for i := 1; i < len(snapshot.History); i++ {
		if err := checkTransition(snapshot.History[i-1], snapshot.History[i], i-1); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", apperror.ErrCorruptedHistory, i, err)
		}
	}

	return &Session{
		boardSize: snapshot.BoardSize,
		history:   append([]entity.Board(nil), snapshot.History...),
		cursor:    snapshot.CurrentMove,
	}, nil
}

func checkTransition(before, after entity.Board, move int) error {
	if DetectWinner(before) != entity.Empty {
		return errors.New("move played after the game was won")
	}

	diff, err := before.Diff(after)
	if err != nil {
		return err
	}

	if len(diff) != 1 {
		return fmt.Errorf("%d cells changed, want 1", len(diff))
	}

	cell := diff[0]
	if !before.At(cell.Row, cell.Col).IsEmpty() {
		return fmt.Errorf("cell (%d, %d) overwritten", cell.Row, cell.Col)
	}

	if want := entity.MarkForMove(move); after.At(cell.Row, cell.Col) != want {
		return fmt.Errorf("cell (%d, %d) holds %q, want %q", cell.Row, cell.Col, after.At(cell.Row, cell.Col), want)
	}

	return nil
}
