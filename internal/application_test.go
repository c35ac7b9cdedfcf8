package application

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tateti/internal/config"
	"github.com/rocketscienceinc/tateti/internal/entity"
	"github.com/rocketscienceinc/tateti/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(opponent string) *config.Config {
	return &config.Config{
		LogLevel: "info",
		Board:    config.Board{Rows: 3, Cols: 3, RunLength: 3},
		Marks:    config.Marks{Agent: "X", Opponent: "O"},
		Arena:    config.Arena{Matches: 2, Opponent: opponent, Seed: 11},
	}
}

func TestArenaOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Random opponent", func(t *testing.T) {
		opts, err := arenaOptions(logger, newTestConfig(config.OpponentRandom))
		require.NoError(t, err)

		assert.IsType(t, &service.RandomChooser{}, opts.Opponent)
		assert.Equal(t, "Random", opts.OpponentName)
		assert.Equal(t, entity.MustMark("X"), opts.AgentMark)
		assert.Equal(t, entity.MustMark("O"), opts.OpponentMark)
		assert.Equal(t, 2, opts.Matches)
	})

	t.Run("Minimax opponent", func(t *testing.T) {
		opts, err := arenaOptions(logger, newTestConfig(config.OpponentMinimax))
		require.NoError(t, err)

		assert.Equal(t, "Minimax", opts.OpponentName)
		assert.NotNil(t, opts.Agent)
	})
}

func TestRunApp(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Runs the arena without storage", func(t *testing.T) {
		assert.NoError(t, RunApp(logger, newTestConfig(config.OpponentRandom)))
	})

	t.Run("Error on an empty redis address", func(t *testing.T) {
		conf := newTestConfig(config.OpponentMinimax)
		conf.Redis = config.Redis{Enabled: true}

		assert.ErrorIs(t, RunApp(logger, conf), ErrAddrNotFound)
	})
}
