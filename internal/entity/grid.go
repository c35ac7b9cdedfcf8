package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tateti/internal/apperror"
)

const emptyCellSymbol = "."

// Coordinate is a 1-based cell position: X is the column, Y is the row.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}

// runDirections are the (dx, dy) steps checked for a run: horizontal,
// vertical, down-right and down-left.
var runDirections = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{-1, 1},
}

// Grid is a rows x cols board stored row-major. Cells hold the empty Mark until played.
type Grid struct {
	rows, cols int
	cells      []Mark
}

func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidDimension, rows, cols)
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Mark, rows*cols),
	}, nil
}

func (that *Grid) Rows() int { return that.rows }
func (that *Grid) Cols() int { return that.cols }

// AverageDimension is (rows + cols) / 2, rounded down.
func (that *Grid) AverageDimension() int {
	return (that.rows + that.cols) / 2
}

// Rebuild empties every cell, keeping the dimensions.
func (that *Grid) Rebuild() {
	clear(that.cells)
}

func (that *Grid) IsValidCoordinate(x, y int) bool {
	return x >= 1 && x <= that.cols && y >= 1 && y <= that.rows
}

func (that *Grid) idx(x, y int) int {
	return (y-1)*that.cols + (x - 1)
}

// Place writes mark into (x, y). On error the grid is left untouched.
func (that *Grid) Place(x, y int, mark Mark) error {
	if mark.IsEmpty() {
		return fmt.Errorf("%w: cannot place the empty mark", apperror.ErrInvalidMark)
	}

	if !that.IsValidCoordinate(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", apperror.ErrOutOfRange, x, y, that.cols, that.rows)
	}

	i := that.idx(x, y)
	if !that.cells[i].IsEmpty() {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrCellOccupied, x, y)
	}

	that.cells[i] = mark

	return nil
}

// Clear empties (x, y) whatever it holds. It is meant for undoing simulated
// moves, so an out-of-range coordinate is a bug and panics.
func (that *Grid) Clear(x, y int) {
	if !that.IsValidCoordinate(x, y) {
		panic(fmt.Sprintf("grid: clear out of range (%d,%d) on %dx%d", x, y, that.cols, that.rows))
	}

	that.cells[that.idx(x, y)] = Mark{}
}

// Read returns the mark at (x, y); an empty cell yields the empty Mark.
func (that *Grid) Read(x, y int) (Mark, error) {
	if !that.IsValidCoordinate(x, y) {
		return Mark{}, fmt.Errorf("%w: (%d,%d) on %dx%d", apperror.ErrOutOfRange, x, y, that.cols, that.rows)
	}

	return that.cells[that.idx(x, y)], nil
}

func (that *Grid) IsEmptyBoard() bool {
	for _, cell := range that.cells {
		if !cell.IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Grid) IsFullBoard() bool {
	for _, cell := range that.cells {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// AvailableMoves lists the empty cells row by row, left to right.
// The search agent relies on this order for tie-breaking.
func (that *Grid) AvailableMoves() []Coordinate {
	moves := make([]Coordinate, 0, len(that.cells))
	for i, cell := range that.cells {
		if cell.IsEmpty() {
			moves = append(moves, Coordinate{X: i%that.cols + 1, Y: i/that.cols + 1})
		}
	}

	return moves
}

// HasRun reports whether runLength consecutive cells in a row, column or
// diagonal all hold mark. It does not allocate.
func (that *Grid) HasRun(mark Mark, runLength int) bool {
	if mark.IsEmpty() || runLength <= 0 {
		return false
	}

	for _, dir := range runDirections {
		if that.hasRunInDirection(mark, runLength, dir[0], dir[1]) {
			return true
		}
	}

	return false
}

// hasRunInDirection slides a window of runLength cells from every start
// position whose window stays on the board.
func (that *Grid) hasRunInDirection(mark Mark, runLength, dx, dy int) bool {
	span := runLength - 1

	for y := 0; y+dy*span < that.rows; y++ {
		for x := 0; x < that.cols; x++ {
			endX := x + dx*span
			if endX < 0 || endX >= that.cols {
				continue
			}

			found := true
			for i := 0; i < runLength; i++ {
				if that.cells[(y+dy*i)*that.cols+x+dx*i] != mark {
					found = false
					break
				}
			}

			if found {
				return true
			}
		}
	}

	return false
}

// Clone returns a deep copy that shares no storage with the receiver.
func (that *Grid) Clone() *Grid {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)

	return &Grid{
		rows:  that.rows,
		cols:  that.cols,
		cells: cells,
	}
}

// Snapshot renders each row as a string, empty cells as ".".
func (that *Grid) Snapshot() []string {
	lines := make([]string, 0, that.rows)

	var sb strings.Builder
	for y := 0; y < that.rows; y++ {
		sb.Reset()
		for x := 0; x < that.cols; x++ {
			cell := that.cells[y*that.cols+x]
			if cell.IsEmpty() {
				sb.WriteString(emptyCellSymbol)
				continue
			}
			sb.WriteRune(cell.Symbol())
		}
		lines = append(lines, sb.String())
	}

	return lines
}
