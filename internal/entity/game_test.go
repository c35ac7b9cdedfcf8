package entity

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tateti/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayers() []*Player {
	return []*Player{
		NewHumanPlayer("p1", "Player", markX),
		NewBotPlayer("p2", "AI", markO),
	}
}

func TestNewGame(t *testing.T) {
	t.Run("Creates a waiting game on an empty grid", func(t *testing.T) {
		// When: a 4x5 game with run length 4 is created
		game, err := NewGame("123", 4, 5, 4, newTestPlayers()...)
		require.NoError(t, err)

		// Then: it waits for a start with no winner and no turn
		assert.Equal(t, "123", game.ID)
		assert.True(t, game.IsWaiting())
		assert.True(t, game.Grid.IsEmptyBoard())
		assert.Equal(t, 4, game.Grid.Rows())
		assert.Equal(t, 5, game.Grid.Cols())
		assert.True(t, game.Winner.IsEmpty())
		assert.True(t, game.Turn.IsEmpty())
	})

	t.Run("Error on invalid dimensions", func(t *testing.T) {
		_, err := NewGame("123", 0, 3, 3, newTestPlayers()...)

		assert.ErrorIs(t, err, apperror.ErrInvalidDimension)
	})

	t.Run("Error on invalid run length", func(t *testing.T) {
		_, err := NewGame("123", 3, 3, 4, newTestPlayers()...)
		require.ErrorIs(t, err, apperror.ErrInvalidRunLength)

		_, err = NewGame("123", 3, 3, 0, newTestPlayers()...)
		require.ErrorIs(t, err, apperror.ErrInvalidRunLength)
	})

	t.Run("Run length may fit only one dimension", func(t *testing.T) {
		_, err := NewGame("123", 2, 6, 5, newTestPlayers()...)

		assert.NoError(t, err)
	})

	t.Run("Error on a single player", func(t *testing.T) {
		_, err := NewGame("123", 3, 3, 3, NewHumanPlayer("p1", "Player", markX))

		assert.ErrorIs(t, err, apperror.ErrNotEnoughPlayers)
	})

	t.Run("Error on duplicated or missing marks", func(t *testing.T) {
		_, err := NewGame("123", 3, 3, 3, NewHumanPlayer("p1", "A", markX), NewBotPlayer("p2", "B", markX))
		require.ErrorIs(t, err, apperror.ErrInvalidMark)

		_, err = NewGame("123", 3, 3, 3, NewHumanPlayer("p1", "A", markX), &Player{ID: "p2"})
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.True(t, game.IsFinished())
		assert.True(t, game.IsTie())
	})

	t.Run("IsTie is false when somebody won", func(t *testing.T) {
		game := &Game{Status: StatusFinished, Winner: markO}

		assert.False(t, game.IsTie())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.True(t, game.IsOngoing())
		assert.False(t, game.IsTie())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})
}

func TestGame_StartAndTurns(t *testing.T) {
	t.Run("Start gives the turn to the chosen player", func(t *testing.T) {
		// Given: a waiting game
		game, err := NewGame("123", 3, 3, 3, newTestPlayers()...)
		require.NoError(t, err)

		// When: the second player starts
		require.NoError(t, game.Start(1))

		// Then: the game is ongoing with O to move
		assert.True(t, game.IsOngoing())
		assert.Equal(t, markO, game.Turn)
	})

	t.Run("Start with an unknown player index fails", func(t *testing.T) {
		game, err := NewGame("123", 3, 3, 3, newTestPlayers()...)
		require.NoError(t, err)

		assert.ErrorIs(t, game.Start(2), apperror.ErrOutOfRange)
		assert.True(t, game.IsWaiting())
	})

	t.Run("NextMark wraps around any number of players", func(t *testing.T) {
		markHash := MustMark("#")
		players := append(newTestPlayers(), NewBotPlayer("p3", "AI 2", markHash))
		game, err := NewGame("123", 4, 4, 3, players...)
		require.NoError(t, err)

		assert.Equal(t, markO, game.NextMark(markX))
		assert.Equal(t, markHash, game.NextMark(markO))
		assert.Equal(t, markX, game.NextMark(markHash))
		assert.Equal(t, players[2], game.PlayerByMark(markHash))
		assert.Nil(t, game.PlayerByMark(MustMark("Z")))
	})
}

func TestGame_Reset(t *testing.T) {
	// Given: a finished game
	game, err := NewGame("123", 3, 3, 3, newTestPlayers()...)
	require.NoError(t, err)
	require.NoError(t, game.Grid.Place(1, 1, markX))
	game.Status = StatusFinished
	game.Winner = markX
	game.Moves = []Move{{Mark: markX, Coordinate: Coordinate{1, 1}}}

	// When: it is reset
	game.Reset()

	// Then: it is waiting again on an empty board
	assert.True(t, game.IsWaiting())
	assert.True(t, game.Grid.IsEmptyBoard())
	assert.True(t, game.Winner.IsEmpty())
	assert.Empty(t, game.Moves)
}

func TestNewMatchResult(t *testing.T) {
	game, err := NewGame("123", 2, 3, 2, newTestPlayers()...)
	require.NoError(t, err)
	require.NoError(t, game.Grid.Place(1, 1, markX))
	game.Status = StatusFinished
	game.Winner = markX
	game.Moves = []Move{{Mark: markX, Coordinate: Coordinate{1, 1}}}

	started := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(time.Second)

	result := NewMatchResult(game, started, finished)

	assert.Equal(t, "123", result.ID)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 3, result.Cols)
	assert.Equal(t, 2, result.RunLength)
	assert.Equal(t, markX, result.Winner)
	assert.False(t, result.Draw)
	assert.Equal(t, []string{"X..", "..."}, result.FinalBoard)
	assert.Equal(t, finished, result.FinishedAt)
}
