package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tateti/internal/agent"
	"github.com/rocketscienceinc/tateti/internal/config"
	"github.com/rocketscienceinc/tateti/internal/repository"
	"github.com/rocketscienceinc/tateti/internal/repository/storage"
	"github.com/rocketscienceinc/tateti/internal/service"
	"github.com/rocketscienceinc/tateti/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the arena described by conf.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var matchRepo repository.MatchRepository
	if conf.Redis.Enabled {
		redisStorage, err := connectRedis(ctx, conf.Redis)
		if err != nil {
			return err
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage.Connection)
	}

	opts, err := arenaOptions(logger, conf)
	if err != nil {
		return err
	}

	gameManager := usecase.NewGameManager(logger, matchRepo)

	log.Info("Starting arena",
		"board", fmt.Sprintf("%dx%d", conf.Board.Rows, conf.Board.Cols),
		"run_length", conf.Board.RunLength,
		"matches", conf.Arena.Matches,
		"opponent", conf.Arena.Opponent,
	)

	summary, err := gameManager.RunArena(ctx, opts)
	if errors.Is(err, context.Canceled) {
		log.Info("Application context canceled, shutting down")

		return nil
	}

	if err != nil {
		return fmt.Errorf("arena failed: %w", err)
	}

	log.Info("Arena summary",
		"matches", summary.Matches,
		"agent_wins", summary.AgentWins,
		"opponent_wins", summary.OpponentWins,
		"draws", summary.Draws,
	)

	return nil
}

func connectRedis(ctx context.Context, conf config.Redis) (*storage.RedisStorage, error) {
	if conf.Host == "" || conf.Port == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.GetRedisAddr())
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return redisStorage, nil
}

func arenaOptions(logger *slog.Logger, conf *config.Config) (usecase.ArenaOptions, error) {
	agentMark, opponentMark, err := conf.Marks.Parse()
	if err != nil {
		return usecase.ArenaOptions{}, fmt.Errorf("invalid marks: %w", err)
	}

	seed := conf.Arena.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed)) //nolint: gosec // game randomness only

	agentLogger := logger.With("component", "agent")

	opts := usecase.ArenaOptions{
		Rows:         conf.Board.Rows,
		Cols:         conf.Board.Cols,
		RunLength:    conf.Board.RunLength,
		Matches:      conf.Arena.Matches,
		AgentMark:    agentMark,
		OpponentMark: opponentMark,
		Agent:        agent.New(agent.WithRand(rnd), agent.WithLogger(agentLogger)),
	}

	switch conf.Arena.Opponent {
	case config.OpponentRandom:
		opts.Opponent = service.NewRandomChooser(rnd)
		opts.OpponentName = "Random"
	default:
		opts.Opponent = agent.New(agent.WithRand(rnd), agent.WithLogger(agentLogger))
		opts.OpponentName = "Minimax"
	}

	return opts, nil
}
