package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tateti/internal/apperror"
	"github.com/rocketscienceinc/tateti/internal/entity"
)

// MakeTurn places mark at (x, y) and moves the game on: a run finishes it with
// a winner, a full board finishes it as a tie, otherwise the next player moves.
func MakeTurn(game *entity.Game, mark entity.Mark, x, y int) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(game, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if err := game.Grid.Place(x, y, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Moves = append(game.Moves, entity.Move{Mark: mark, Coordinate: entity.Coordinate{X: x, Y: y}})
	updateGameStatus(game, mark)

	return nil
}

// validateMove - checks that mark belongs to the game and holds the turn.
func validateMove(game *entity.Game, mark entity.Mark) error {
	if game.PlayerByMark(mark) == nil {
		return fmt.Errorf("%w: %q does not play this game", apperror.ErrInvalidMark, mark.String())
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, mark entity.Mark) {
	switch {
	case game.Grid.HasRun(mark, game.RunLength):
		game.Winner = mark
		game.Status = entity.StatusFinished
		game.Turn = entity.Mark{}
	case game.Grid.IsFullBoard():
		game.Winner = entity.Mark{}
		game.Status = entity.StatusFinished
		game.Turn = entity.Mark{}
	default:
		game.Turn = game.NextMark(mark)
	}
}
