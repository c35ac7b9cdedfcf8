package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tateti/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

// Move is one applied turn.
type Move struct {
	Mark       Mark       `json:"mark"`
	Coordinate Coordinate `json:"coordinate"`
}

type Game struct {
	ID        string
	Grid      *Grid
	RunLength int
	Status    string
	Winner    Mark
	Turn      Mark
	Players   []*Player
	Moves     []Move
}

// NewGame sets up a waiting game on an empty rows x cols grid.
func NewGame(id string, rows, cols, runLength int, players ...*Player) (*Game, error) {
	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	if runLength <= 0 || (runLength > rows && runLength > cols) {
		return nil, fmt.Errorf("%w: %d on %dx%d", apperror.ErrInvalidRunLength, runLength, rows, cols)
	}

	if len(players) < 2 {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrNotEnoughPlayers, len(players))
	}

	seen := make(map[Mark]struct{}, len(players))
	for _, player := range players {
		if player.Mark.IsEmpty() {
			return nil, fmt.Errorf("%w: player %s has no mark", apperror.ErrInvalidMark, player.ID)
		}

		if _, ok := seen[player.Mark]; ok {
			return nil, fmt.Errorf("%w: mark %s is used twice", apperror.ErrInvalidMark, player.Mark)
		}
		seen[player.Mark] = struct{}{}
	}

	return &Game{
		ID:        id,
		Grid:      grid,
		RunLength: runLength,
		Status:    StatusWaiting,
		Players:   players,
	}, nil
}

// Start hands the first turn to Players[first] and puts the game in play.
func (that *Game) Start(first int) error {
	if first < 0 || first >= len(that.Players) {
		return fmt.Errorf("%w: starting player %d of %d", apperror.ErrOutOfRange, first, len(that.Players))
	}

	that.Status = StatusOngoing
	that.Turn = that.Players[first].Mark

	return nil
}

// Reset empties the board and returns the game to the waiting state.
func (that *Game) Reset() {
	that.Grid.Rebuild()
	that.Status = StatusWaiting
	that.Winner = Mark{}
	that.Turn = Mark{}
	that.Moves = nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsTie() bool {
	return that.IsFinished() && that.Winner.IsEmpty()
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

// PlayerByMark returns the player holding mark, or nil.
func (that *Game) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

// NextMark is the mark that plays after mark, wrapping around the player list.
func (that *Game) NextMark(mark Mark) Mark {
	for i, player := range that.Players {
		if player.Mark == mark {
			return that.Players[(i+1)%len(that.Players)].Mark
		}
	}

	return that.Players[0].Mark
}

// MatchResult is the record kept for a finished game.
type MatchResult struct {
	ID         string    `json:"id"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	RunLength  int       `json:"run_length"`
	Players    []*Player `json:"players"`
	Winner     Mark      `json:"winner"`
	Draw       bool      `json:"draw"`
	Moves      []Move    `json:"moves"`
	FinalBoard []string  `json:"final_board"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewMatchResult(game *Game, startedAt, finishedAt time.Time) *MatchResult {
	return &MatchResult{
		ID:         game.ID,
		Rows:       game.Grid.Rows(),
		Cols:       game.Grid.Cols(),
		RunLength:  game.RunLength,
		Players:    game.Players,
		Winner:     game.Winner,
		Draw:       game.IsTie(),
		Moves:      game.Moves,
		FinalBoard: game.Grid.Snapshot(),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
}
