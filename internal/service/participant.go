package service

import (
	"context"

	"github.com/rocketscienceinc/tateti/internal/entity"
)

// MoveSource supplies a human's moves. rejected is the error that turned down
// the previous attempt in the same turn, nil on the first attempt.
type MoveSource interface {
	NextMove(ctx context.Context, game *entity.Game, rejected error) (entity.Coordinate, error)
}

type MoveSourceFunc func(ctx context.Context, game *entity.Game, rejected error) (entity.Coordinate, error)

func (that MoveSourceFunc) NextMove(ctx context.Context, game *entity.Game, rejected error) (entity.Coordinate, error) {
	return that(ctx, game, rejected)
}

// Participant is a seat at the table, human or bot.
type Participant interface {
	Player() *entity.Player
	IsHuman() bool
	SelectMove(ctx context.Context, game *entity.Game, rejected error) (entity.Coordinate, error)
}

type humanParticipant struct {
	player *entity.Player
	source MoveSource
}

func NewHumanParticipant(player *entity.Player, source MoveSource) Participant {
	return &humanParticipant{
		player: player,
		source: source,
	}
}

func (that *humanParticipant) Player() *entity.Player {
	return that.player
}

func (that *humanParticipant) IsHuman() bool {
	return true
}

func (that *humanParticipant) SelectMove(ctx context.Context, game *entity.Game, rejected error) (entity.Coordinate, error) {
	return that.source.NextMove(ctx, game, rejected)
}

type botParticipant struct {
	player *entity.Player
	bot    BotService
}

func NewBotParticipant(player *entity.Player, chooser MoveChooser) Participant {
	return &botParticipant{
		player: player,
		bot:    NewBotService(chooser),
	}
}

func (that *botParticipant) Player() *entity.Player {
	return that.player
}

func (that *botParticipant) IsHuman() bool {
	return false
}

// SelectMove ignores rejected: a bot is never asked twice in one turn.
func (that *botParticipant) SelectMove(_ context.Context, game *entity.Game, _ error) (entity.Coordinate, error) {
	return that.bot.ChooseMove(game, that.player)
}
