package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

var (
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidBoard = errors.New("invalid board")
)

// Board is an immutable square grid snapshot. A move never changes an existing
// Board: Place returns a new one.
type Board struct {
	cells [][]Mark
}

func NewBoard(size int) Board {
	if size < 0 {
		size = 0
	}

	cells := make([][]Mark, size)
	for i := range cells {
		cells[i] = make([]Mark, size)
	}

	return Board{cells: cells}
}

func (that Board) Size() int {
	return len(that.cells)
}

func (that Board) Contains(row, col int) bool {
	return row >= 0 && row < that.Size() && col >= 0 && col < that.Size()
}

// At returns Empty for cells outside the board.
func (that Board) At(row, col int) Mark {
	if !that.Contains(row, col) {
		return Empty
	}
	return that.cells[row][col]
}

// Place returns a copy of the board with mark written to an empty cell.
func (that Board) Place(row, col int, mark Mark) (Board, error) {
	if !that.Contains(row, col) {
		return Board{}, fmt.Errorf("%w: (%d, %d) on board of size %d", ErrInvalidCell, row, col, that.Size())
	}

	if mark.IsEmpty() {
		return Board{}, fmt.Errorf("%w: cannot place an empty mark", ErrInvalidBoard)
	}

	if !that.cells[row][col].IsEmpty() {
		return Board{}, apperror.ErrCellOccupied
	}

	next := that.clone()
	next.cells[row][col] = mark

	return next, nil
}

// Rows returns a copy of the grid, row by row.
func (that Board) Rows() [][]Mark {
	return that.clone().cells
}

func (that Board) IsEmpty() bool {
	for _, row := range that.cells {
		for _, mark := range row {
			if !mark.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Diff lists the cells whose marks differ between two boards of the same size.
func (that Board) Diff(other Board) ([]Cell, error) {
	if that.Size() != other.Size() {
		return nil, fmt.Errorf("%w: size %d differs from %d", ErrInvalidBoard, that.Size(), other.Size())
	}

	var diff []Cell
	for row := range that.cells {
		for col := range that.cells[row] {
			if that.cells[row][col] != other.cells[row][col] {
				diff = append(diff, Cell{Row: row, Col: col})
			}
		}
	}

	return diff, nil
}

func (that Board) Equal(other Board) bool {
	diff, err := that.Diff(other)
	return err == nil && len(diff) == 0
}

// String renders the board one row per line, "." for empty cells.
func (that Board) String() string {
	var sb strings.Builder
	for i, row := range that.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, mark := range row {
			if mark.IsEmpty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(mark))
		}
	}
	return sb.String()
}

func (that Board) MarshalJSON() ([]byte, error) {
	if that.cells == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(that.cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells [][]Mark
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	for i, row := range cells {
		if len(row) != len(cells) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, i, len(row), len(cells))
		}
		for _, mark := range row {
			if err := mark.validate(); err != nil {
				return err
			}
		}
	}

	that.cells = cells

	return nil
}

func (that Board) clone() Board {
	cells := make([][]Mark, len(that.cells))
	for i, row := range that.cells {
		cells[i] = append([]Mark(nil), row...)
	}
	return Board{cells: cells}
}
