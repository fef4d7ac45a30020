package apperror

import "errors"

var (
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrMoveOutOfRange   = errors.New("move is out of history range")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrCorruptedHistory = errors.New("history is corrupted")
	ErrSessionNotFound  = errors.New("session not found")
)
