package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tateti/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMark(t *testing.T) {
	t.Run("Accepts a single printable character", func(t *testing.T) {
		// When: building marks from one-character symbols
		x, err := NewMark("X")
		require.NoError(t, err)

		hash, err := NewMark("#")
		require.NoError(t, err)

		// Then: the symbol is kept as is
		assert.Equal(t, 'X', x.Symbol())
		assert.Equal(t, "#", hash.String())
		assert.False(t, x.IsEmpty())
	})

	t.Run("Accepts a multi-byte rune", func(t *testing.T) {
		mark, err := NewMark("Ñ")

		require.NoError(t, err)
		assert.Equal(t, 'Ñ', mark.Symbol())
	})

	t.Run("Rejects invalid symbols", func(t *testing.T) {
		for _, symbol := range []string{"", " ", "\t", "XO", "\x00"} {
			// When: building a mark from an invalid symbol
			_, err := NewMark(symbol)

			// Then: ErrInvalidMark is returned
			assert.ErrorIs(t, err, apperror.ErrInvalidMark, "symbol %q", symbol)
		}
	})
}

func TestMark_Equality(t *testing.T) {
	x := MustMark("X")
	o := MustMark("O")

	t.Run("Marks with the same symbol are equal", func(t *testing.T) {
		assert.True(t, x.Equal(MustMark("X")))
		assert.Equal(t, x, MustMark("X"))
		assert.False(t, x.Equal(o))
	})

	t.Run("Comparison with the empty mark is always false", func(t *testing.T) {
		assert.False(t, x.Equal(Mark{}))
		assert.False(t, Mark{}.Equal(x))
		assert.False(t, Mark{}.Equal(Mark{}))
		assert.False(t, x.Less(Mark{}))
		assert.False(t, Mark{}.Less(x))
	})

	t.Run("Marks are ordered by symbol", func(t *testing.T) {
		assert.True(t, o.Less(x))
		assert.False(t, x.Less(o))
		assert.Equal(t, 1, x.Compare(o))
		assert.Equal(t, 0, x.Compare(MustMark("X")))
	})
}

func TestMark_JSON(t *testing.T) {
	t.Run("Mark is encoded as its symbol", func(t *testing.T) {
		// Given: a player holding a mark
		player := NewBotPlayer("1", "AI", MustMark("#"))

		// When: encoding and decoding it
		data, err := json.Marshal(player)
		require.NoError(t, err)

		var decoded Player
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: the mark survives as a one-character string
		assert.Contains(t, string(data), `"mark":"#"`)
		assert.Equal(t, player.Mark, decoded.Mark)
	})

	t.Run("Empty mark is encoded as an empty string", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Winner Mark `json:"winner"`
		}{})
		require.NoError(t, err)

		assert.JSONEq(t, `{"winner":""}`, string(data))
	})
}
