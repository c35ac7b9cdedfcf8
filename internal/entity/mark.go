package entity

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/rocketscienceinc/tateti/internal/apperror"
)

// Mark is the symbol a side puts on the grid. The zero value is the empty mark.
type Mark struct {
	symbol rune
}

// NewMark builds a Mark from a single printable, non-blank character.
func NewMark(symbol string) (Mark, error) {
	if utf8.RuneCountInString(symbol) != 1 {
		return Mark{}, fmt.Errorf("%w: %q must be exactly one character", apperror.ErrInvalidMark, symbol)
	}

	r, _ := utf8.DecodeRuneInString(symbol)
	if r == utf8.RuneError || unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return Mark{}, fmt.Errorf("%w: %q is blank or not printable", apperror.ErrInvalidMark, symbol)
	}

	return Mark{symbol: r}, nil
}

// MustMark is NewMark for constants known to be valid.
func MustMark(symbol string) Mark {
	mark, err := NewMark(symbol)
	if err != nil {
		panic(err)
	}

	return mark
}

func (that Mark) Symbol() rune {
	return that.symbol
}

func (that Mark) IsEmpty() bool {
	return that.symbol == 0
}

// Equal reports whether both marks hold the same symbol. The empty mark is never equal to anything.
func (that Mark) Equal(other Mark) bool {
	if that.IsEmpty() || other.IsEmpty() {
		return false
	}

	return that.symbol == other.symbol
}

// Compare orders marks by symbol; the empty mark sorts first.
func (that Mark) Compare(other Mark) int {
	switch {
	case that.symbol < other.symbol:
		return -1
	case that.symbol > other.symbol:
		return 1
	default:
		return 0
	}
}

// Less is false whenever either side is the empty mark.
func (that Mark) Less(other Mark) bool {
	if that.IsEmpty() || other.IsEmpty() {
		return false
	}

	return that.Compare(other) < 0
}

func (that Mark) String() string {
	if that.IsEmpty() {
		return ""
	}

	return string(that.symbol)
}

func (that Mark) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = Mark{}
		return nil
	}

	mark, err := NewMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}
