package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tateti/internal/apperror"
	"github.com/rocketscienceinc/tateti/internal/entity"
	"github.com/rocketscienceinc/tateti/internal/service"
	"github.com/rocketscienceinc/tateti/internal/tictactoe"
)

var ErrInvalidArena = errors.New("invalid arena options")

type matchRepoDep interface {
	CreateOrUpdate(ctx context.Context, match *entity.MatchResult) error
}

type GameManager struct {
	logger    *slog.Logger
	matchRepo matchRepoDep
}

// NewGameManager builds a manager; matchRepo may be nil, in which case
// results are only returned.
func NewGameManager(logger *slog.Logger, matchRepo matchRepoDep) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		matchRepo: matchRepo,
	}
}

// Play runs game to the end. A waiting game is started with its first player.
// A human whose move is out of range or on a taken cell is asked again with the
// rejection; any other failure ends the match with an error.
func (that *GameManager) Play(ctx context.Context, game *entity.Game, participants ...service.Participant) (*entity.MatchResult, error) {
	log := that.logger.With("method", "Play", "game_id", game.ID)

	seats := make(map[entity.Mark]service.Participant, len(participants))
	for _, participant := range participants {
		seats[participant.Player().Mark] = participant
	}

	for _, player := range game.Players {
		if _, ok := seats[player.Mark]; !ok {
			return nil, fmt.Errorf("%w: nobody plays %q", apperror.ErrNotEnoughPlayers, player.Mark.String())
		}
	}

	if game.IsWaiting() {
		if err := game.Start(0); err != nil {
			return nil, fmt.Errorf("failed to start game: %w", err)
		}
	}

	startedAt := time.Now()

	for !game.IsFinished() {
		if err := that.playTurn(ctx, game, seats[game.Turn]); err != nil {
			return nil, err
		}
	}

	result := entity.NewMatchResult(game, startedAt, time.Now())
	log.Info("match finished",
		"winner", result.Winner.String(),
		"draw", result.Draw,
		"moves", len(result.Moves),
	)

	if that.matchRepo != nil {
		if err := that.matchRepo.CreateOrUpdate(ctx, result); err != nil {
			return result, fmt.Errorf("failed to save match: %w", err)
		}
	}

	return result, nil
}

func (that *GameManager) playTurn(ctx context.Context, game *entity.Game, participant service.Participant) error {
	log := that.logger.With("method", "playTurn", "game_id", game.ID)
	player := participant.Player()

	var rejected error
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("match %s interrupted: %w", game.ID, err)
		}

		move, err := participant.SelectMove(ctx, game, rejected)
		if err != nil {
			return fmt.Errorf("player %s failed to select a move: %w", player.ID, err)
		}

		err = tictactoe.MakeTurn(game, player.Mark, move.X, move.Y)
		if err == nil {
			log.Debug("turn made", "player", player.ID, "move", move.String())

			return nil
		}

		if participant.IsHuman() && isRetryable(err) {
			log.Debug("move rejected", "player", player.ID, "move", move.String(), "error", err)
			rejected = err

			continue
		}

		return fmt.Errorf("player %s failed to make turn: %w", player.ID, err)
	}
}

func isRetryable(err error) bool {
	return errors.Is(err, apperror.ErrOutOfRange) || errors.Is(err, apperror.ErrCellOccupied)
}

type ArenaOptions struct {
	Rows, Cols, RunLength int

	Matches int

	AgentMark    entity.Mark
	OpponentMark entity.Mark

	Agent        service.MoveChooser
	Opponent     service.MoveChooser
	OpponentName string
}

type ArenaSummary struct {
	Matches      int
	AgentWins    int
	OpponentWins int
	Draws        int
	Results      []*entity.MatchResult
}

// RunArena plays opts.Matches bot matches, the agent moving first in the even
// ones and the opponent in the odd ones.
func (that *GameManager) RunArena(ctx context.Context, opts ArenaOptions) (*ArenaSummary, error) {
	log := that.logger.With("method", "RunArena")

	if opts.Matches < 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrInvalidArena, opts.Matches)
	}

	if opts.Agent == nil || opts.Opponent == nil {
		return nil, fmt.Errorf("%w: both choosers are required", ErrInvalidArena)
	}

	summary := &ArenaSummary{
		Results: make([]*entity.MatchResult, 0, opts.Matches),
	}

	for i := 0; i < opts.Matches; i++ {
		agentPlayer := entity.NewBotPlayer("agent", "Minimax", opts.AgentMark)
		opponentPlayer := entity.NewBotPlayer("opponent", opts.OpponentName, opts.OpponentMark)

		game, err := entity.NewGame(uuid.NewString(), opts.Rows, opts.Cols, opts.RunLength, agentPlayer, opponentPlayer)
		if err != nil {
			return summary, fmt.Errorf("failed to create game: %w", err)
		}

		if err = game.Start(i % 2); err != nil {
			return summary, fmt.Errorf("failed to start game: %w", err)
		}

		result, err := that.Play(ctx, game,
			service.NewBotParticipant(agentPlayer, opts.Agent),
			service.NewBotParticipant(opponentPlayer, opts.Opponent),
		)
		if err != nil {
			return summary, fmt.Errorf("match %d: %w", i+1, err)
		}

		summary.Matches++
		summary.Results = append(summary.Results, result)

		switch {
		case result.Draw:
			summary.Draws++
		case result.Winner == opts.AgentMark:
			summary.AgentWins++
		default:
			summary.OpponentWins++
		}
	}

	log.Info("arena finished",
		"matches", summary.Matches,
		"agent_wins", summary.AgentWins,
		"opponent_wins", summary.OpponentWins,
		"draws", summary.Draws,
	)

	return summary, nil
}
