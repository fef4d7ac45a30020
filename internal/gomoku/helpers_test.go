package gomoku

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/require"
)

// boardWith places mark on every given cell of an empty board.
func boardWith(t *testing.T, size int, marks map[entity.Mark][]entity.Cell) entity.Board {
	t.Helper()

	board := entity.NewBoard(size)
	for mark, cells := range marks {
		for _, cell := range cells {
			var err error
			board, err = board.Place(cell.Row, cell.Col, mark)
			require.NoError(t, err)
		}
	}

	return board
}

// transform copies every mark of board to the cell returned by fn.
func transform(t *testing.T, board entity.Board, fn func(row, col, size int) (int, int)) entity.Board {
	t.Helper()

	size := board.Size()
	out := entity.NewBoard(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			mark := board.At(row, col)
			if mark.IsEmpty() {
				continue
			}
			r, c := fn(row, col, size)

			var err error
			out, err = out.Place(r, c, mark)
			require.NoError(t, err)
		}
	}

	return out
}

func rotate(t *testing.T, board entity.Board) entity.Board {
	t.Helper()
	return transform(t, board, func(row, col, size int) (int, int) { return col, size - 1 - row })
}

func mirror(t *testing.T, board entity.Board) entity.Board {
	t.Helper()
	return transform(t, board, func(row, col, size int) (int, int) { return row, size - 1 - col })
}

func row(r int, cols ...int) []entity.Cell {
	cells := make([]entity.Cell, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, entity.Cell{Row: r, Col: c})
	}
	return cells
}

// playAll plays every cell in order and requires each move to be accepted.
func playAll(t *testing.T, session *Session, cells ...entity.Cell) {
	t.Helper()

	for _, cell := range cells {
		require.True(t, session.Play(cell.Row, cell.Col), "move (%d, %d) rejected", cell.Row, cell.Col)
	}
}
