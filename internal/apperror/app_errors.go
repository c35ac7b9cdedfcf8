package apperror

import "errors"

var (
	ErrInvalidMark      = errors.New("invalid mark")
	ErrInvalidDimension = errors.New("invalid board dimension")
	ErrOutOfRange       = errors.New("coordinates out of range")
	ErrCellOccupied     = errors.New("cell is already occupied")

	ErrInvalidRunLength = errors.New("invalid run length")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNoAvailableMoves = errors.New("no available moves")

	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
)
