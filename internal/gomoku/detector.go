package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// WinLength is the number of equal marks in a row that wins the game.
const WinLength = 5

// Line is a window of WinLength contiguous cells.
type Line [WinLength]entity.Cell

// directions are scanned in this order: horizontal, vertical, diagonal ↘, diagonal ↙.
var directions = [...]struct{ dRow, dCol int }{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// DetectWinner returns the mark of the first winning window, or entity.Empty
// when nobody has five in a row.
func DetectWinner(board entity.Board) entity.Mark {
	line, ok := WinningLine(board)
	if !ok {
		return entity.Empty
	}
	return board.At(line[0].Row, line[0].Col)
}

// WinningLine enumerates every window per direction, rows before columns, and
// returns the first one holding WinLength equal non-empty marks.
func WinningLine(board entity.Board) (Line, bool) {
	size := board.Size()
	if size < WinLength {
		return Line{}, false
	}

	for _, dir := range directions {
		rowFrom, rowTo := startRange(dir.dRow, size)
		colFrom, colTo := startRange(dir.dCol, size)

		for row := rowFrom; row < rowTo; row++ {
			for col := colFrom; col < colTo; col++ {
				if line, ok := windowAt(board, row, col, dir.dRow, dir.dCol); ok {
					return line, true
				}
			}
		}
	}

	return Line{}, false
}

// startRange returns the half-open range of start indexes along one axis so
// that the whole window stays on the board.
func startRange(step, size int) (int, int) {
	switch step {
	case 0:
		return 0, size
	case 1:
		return 0, size - WinLength + 1
	default:
		return WinLength - 1, size
	}
}

func windowAt(board entity.Board, row, col, dRow, dCol int) (Line, bool) {
	mark := board.At(row, col)
	if mark.IsEmpty() {
		return Line{}, false
	}

	var line Line
	for k := range line {
		r, c := row+k*dRow, col+k*dCol
		if board.At(r, c) != mark {
			return Line{}, false
		}
		line[k] = entity.Cell{Row: r, Col: c}
	}

	return line, true
}
