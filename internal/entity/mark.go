package entity

import "fmt"

// Mark is the content of a single board cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// MarkForMove returns the mark placed by the given zero-based move: X moves first.
func MarkForMove(move int) Mark {
	if move%2 == 0 {
		return X
	}
	return O
}

func (that Mark) IsEmpty() bool {
	return that == Empty
}

func (that Mark) validate() error {
	switch that {
	case Empty, X, O:
		return nil
	default:
		return fmt.Errorf("%w: unknown mark %q", ErrInvalidBoard, string(that))
	}
}

// Cell addresses a square on the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
