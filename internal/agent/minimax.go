// Package agent picks moves for an N-in-a-row game with a depth-limited
// minimax search and alpha-beta pruning.
package agent

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/rocketscienceinc/tateti/internal/apperror"
	"github.com/rocketscienceinc/tateti/internal/entity"
)

const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0

	minDepthLimit  = 3
	depthLimitBase = 8

	// boards up to this size in both dimensions are searched to the end
	exhaustiveDimension = 3
)

const (
	reasonOpening = "opening"
	reasonWin     = "win"
	reasonBlock   = "block"
	reasonSearch  = "search"
)

type Option func(*Agent)

// WithRand sets the source used for the opening move. A *rand.Rand is not
// safe for concurrent use, so neither is an Agent built with one.
func WithRand(rnd *rand.Rand) Option {
	return func(that *Agent) {
		that.rnd = rnd
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(that *Agent) {
		that.logger = logger
	}
}

// Agent keeps no game state between calls to ChooseMove.
type Agent struct {
	rnd    *rand.Rand
	logger *slog.Logger
}

func New(opts ...Option) *Agent {
	agent := &Agent{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(agent)
	}

	return agent
}

// DepthLimit is max(3, 8 - (rows+cols)/2).
func DepthLimit(grid *entity.Grid) int {
	return max(minDepthLimit, depthLimitBase-grid.AverageDimension())
}

// ChooseMove returns the empty cell that maximizes own's guaranteed outcome.
// The grid is never modified; the search runs on a clone.
func (that *Agent) ChooseMove(grid *entity.Grid, own, opponent entity.Mark, runLength int) (entity.Coordinate, error) {
	moves := grid.AvailableMoves()
	if len(moves) == 0 {
		return entity.Coordinate{}, apperror.ErrNoAvailableMoves
	}

	if grid.IsEmptyBoard() {
		move := moves[that.intn(len(moves))]
		that.logger.Debug("move chosen", "reason", reasonOpening, "move", move.String())

		return move, nil
	}

	s := newSearch(grid, own, opponent, runLength)

	if move, reason, ok := s.immediateMove(); ok {
		that.logger.Debug("move chosen", "reason", reason, "move", move.String())

		return move, nil
	}

	move, value := s.bestMove()
	that.logger.Debug("move chosen",
		"reason", reasonSearch,
		"move", move.String(),
		"value", value,
		"nodes", s.nodes,
		"depth_limit", s.depthLimit,
		"limited", s.limited,
	)

	return move, nil
}

func (that *Agent) intn(n int) int {
	if that.rnd != nil {
		return that.rnd.Intn(n)
	}

	return rand.Intn(n) //nolint: gosec // opening variety only
}

// search is the scratch state of one ChooseMove call. Its grid is a private
// clone; every simulated placement is undone before the call that made it returns.
type search struct {
	grid       *entity.Grid
	own        entity.Mark
	opponent   entity.Mark
	runLength  int
	depthLimit int
	limited    bool
	nodes      int
}

func newSearch(grid *entity.Grid, own, opponent entity.Mark, runLength int) *search {
	return &search{
		grid:       grid.Clone(),
		own:        own,
		opponent:   opponent,
		runLength:  runLength,
		depthLimit: DepthLimit(grid),
		limited:    grid.Rows() > exhaustiveDimension || grid.Cols() > exhaustiveDimension,
	}
}

func (that *search) place(move entity.Coordinate, mark entity.Mark) {
	if err := that.grid.Place(move.X, move.Y, mark); err != nil {
		panic(fmt.Sprintf("agent: simulated move %s: %v", move, err))
	}
}

func (that *search) undo(move entity.Coordinate) {
	that.grid.Clear(move.X, move.Y)
}

// immediateMove scans the moves in board order for a winning move first and
// then for a cell the opponent would win on next turn.
func (that *search) immediateMove() (entity.Coordinate, string, bool) {
	moves := that.grid.AvailableMoves()

	for _, move := range moves {
		that.place(move, that.own)
		won := that.grid.HasRun(that.own, that.runLength)
		that.undo(move)

		if won {
			return move, reasonWin, true
		}
	}

	for _, move := range moves {
		that.place(move, that.opponent)
		threat := that.grid.HasRun(that.opponent, that.runLength)
		that.undo(move)

		if threat {
			return move, reasonBlock, true
		}
	}

	return entity.Coordinate{}, "", false
}

// bestMove evaluates every root move independently; the first move reaching
// the highest value wins ties.
func (that *search) bestMove() (entity.Coordinate, int) {
	var best entity.Coordinate
	bestValue := math.MinInt

	for _, move := range that.grid.AvailableMoves() {
		that.place(move, that.own)
		value := that.minimax(false, math.MinInt, math.MaxInt, 0)
		that.undo(move)

		if value > bestValue {
			best, bestValue = move, value
		}
	}

	return best, bestValue
}

func (that *search) minimax(maximizing bool, alpha, beta, depth int) int {
	that.nodes++

	switch {
	case that.grid.HasRun(that.own, that.runLength):
		return scoreWin
	case that.grid.HasRun(that.opponent, that.runLength):
		return scoreLoss
	case that.grid.IsFullBoard():
		return scoreDraw
	case that.limited && depth >= that.depthLimit:
		return scoreDraw
	}

	if maximizing {
		best := math.MinInt
		for _, move := range that.grid.AvailableMoves() {
			that.place(move, that.own)
			value := that.minimax(false, alpha, beta, depth+1)
			that.undo(move)

			best = max(best, value)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}

		return best
	}

	best := math.MaxInt
	for _, move := range that.grid.AvailableMoves() {
		that.place(move, that.opponent)
		value := that.minimax(true, alpha, beta, depth+1)
		that.undo(move)

		best = min(best, value)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}

	return best
}
