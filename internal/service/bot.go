package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tateti/internal/apperror"
	"github.com/rocketscienceinc/tateti/internal/entity"
	"github.com/rocketscienceinc/tateti/internal/tictactoe"
)

var ErrBotNotFound = errors.New("bot player not found")

// MoveChooser picks a cell for own on grid. *agent.Agent is one.
type MoveChooser interface {
	ChooseMove(grid *entity.Grid, own, opponent entity.Mark, runLength int) (entity.Coordinate, error)
}

// RandomChooser plays any empty cell.
type RandomChooser struct {
	rnd *rand.Rand
}

// NewRandomChooser uses rnd when given, the package source otherwise.
func NewRandomChooser(rnd *rand.Rand) *RandomChooser {
	return &RandomChooser{rnd: rnd}
}

func (that *RandomChooser) ChooseMove(grid *entity.Grid, _, _ entity.Mark, _ int) (entity.Coordinate, error) {
	availableCells := grid.AvailableMoves()
	if len(availableCells) == 0 {
		return entity.Coordinate{}, apperror.ErrNoAvailableMoves
	}

	if that.rnd != nil {
		return availableCells[that.rnd.Intn(len(availableCells))], nil
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}

type BotService interface {
	ChooseMove(game *entity.Game, player *entity.Player) (entity.Coordinate, error)
	MakeTurn(game *entity.Game, player *entity.Player) error
}

type botService struct {
	chooser MoveChooser
}

func NewBotService(chooser MoveChooser) BotService {
	return &botService{
		chooser: chooser,
	}
}

// ChooseMove asks the chooser for player's move, taking the player who moves
// next as the opponent.
func (that *botService) ChooseMove(game *entity.Game, player *entity.Player) (entity.Coordinate, error) {
	if player == nil || !player.IsBot() {
		return entity.Coordinate{}, ErrBotNotFound
	}

	opponent := game.NextMark(player.Mark)

	move, err := that.chooser.ChooseMove(game.Grid, player.Mark, opponent, game.RunLength)
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	return move, nil
}

func (that *botService) MakeTurn(game *entity.Game, player *entity.Player) error {
	move, err := that.ChooseMove(game, player)
	if err != nil {
		return err
	}

	if err = tictactoe.MakeTurn(game, player.Mark, move.X, move.Y); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
