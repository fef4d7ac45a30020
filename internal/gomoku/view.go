package gomoku

import (
	"strconv"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// MoveEntry is one selectable item of the move list.
type MoveEntry struct {
	Move  int    `json:"move"`
	Label string `json:"label"`
}

// View is everything a presentation layer needs to draw the current state.
type View struct {
	Board       entity.Board  `json:"board"`
	Winner      entity.Mark   `json:"winner"`
	NextToMove  entity.Mark   `json:"next_to_move"`
	Status      string        `json:"status"`
	Moves       []MoveEntry   `json:"moves"`
	CurrentMove int           `json:"current_move"`
	WinningLine []entity.Cell `json:"winning_line,omitempty"`
}

// CurrentView is computed on demand from the board under the cursor.
func (that *Session) CurrentView() View {
	board := that.currentBoard()

	view := View{
		Board:       board,
		Moves:       make([]MoveEntry, len(that.history)),
		CurrentMove: that.cursor,
	}

	if line, ok := WinningLine(board); ok {
		view.Winner = board.At(line[0].Row, line[0].Col)
		view.WinningLine = line[:]
	} else {
		view.NextToMove = entity.MarkForMove(that.cursor)
	}

	view.Status = statusLine(view.Winner, view.NextToMove)

	for move := range that.history {
		view.Moves[move] = MoveEntry{Move: move, Label: MoveLabel(move)}
	}

	return view
}

// MoveLabel is the caption of a move list entry.
func MoveLabel(move int) string {
	if move > 0 {
		return "Go to move #" + strconv.Itoa(move)
	}
	return "Go to game start"
}

func statusLine(winner, next entity.Mark) string {
	if !winner.IsEmpty() {
		return "Winner: " + string(winner)
	}
	return "Next player: " + string(next)
}
