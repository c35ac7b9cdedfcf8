package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tateti/internal/entity"
)

const (
	OpponentMinimax = "minimax"
	OpponentRandom  = "random"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Board    Board  `yaml:"board"`
	Marks    Marks  `yaml:"marks"`
	Arena    Arena  `yaml:"arena"`
	Redis    Redis  `yaml:"redis"`
}

type Board struct {
	Rows      int `yaml:"rows" env:"BOARD_ROWS" env-default:"3"`
	Cols      int `yaml:"cols" env:"BOARD_COLS" env-default:"3"`
	RunLength int `yaml:"run-length" env:"BOARD_RUN_LENGTH" env-default:"3"`
}

type Marks struct {
	Agent    string `yaml:"agent" env:"MARKS_AGENT" env-default:"X"`
	Opponent string `yaml:"opponent" env:"MARKS_OPPONENT" env-default:"O"`
}

type Arena struct {
	Matches  int    `yaml:"matches" env:"ARENA_MATCHES" env-default:"1"`
	Opponent string `yaml:"opponent" env:"ARENA_OPPONENT" env-default:"minimax"`
	// 0 seeds from the clock
	Seed int64 `yaml:"seed" env:"ARENA_SEED" env-default:"0"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads path and the environment. A missing file is not an error: the
// environment and defaults are used instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	if that.Board.Rows <= 0 || that.Board.Cols <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, that.Board.Rows, that.Board.Cols)
	}

	if that.Board.RunLength <= 0 || that.Board.RunLength > max(that.Board.Rows, that.Board.Cols) {
		return fmt.Errorf("%w: run length %d on %dx%d", ErrInvalidConfig, that.Board.RunLength, that.Board.Rows, that.Board.Cols)
	}

	agentMark, opponentMark, err := that.Marks.Parse()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if agentMark == opponentMark {
		return fmt.Errorf("%w: both sides use %q", ErrInvalidConfig, agentMark.String())
	}

	switch that.Arena.Opponent {
	case OpponentMinimax, OpponentRandom:
	default:
		return fmt.Errorf("%w: unknown opponent %q", ErrInvalidConfig, that.Arena.Opponent)
	}

	if that.Arena.Matches < 1 {
		return fmt.Errorf("%w: %d matches", ErrInvalidConfig, that.Arena.Matches)
	}

	return nil
}

func (that *Marks) Parse() (entity.Mark, entity.Mark, error) {
	agentMark, err := entity.NewMark(that.Agent)
	if err != nil {
		return entity.Mark{}, entity.Mark{}, fmt.Errorf("agent mark: %w", err)
	}

	opponentMark, err := entity.NewMark(that.Opponent)
	if err != nil {
		return entity.Mark{}, entity.Mark{}, fmt.Errorf("opponent mark: %w", err)
	}

	return agentMark, opponentMark, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
