package level

import (
	"errors"
	"fmt"
	"math"
)

// Grid geometry in world units
const (
	Columns = 7

	// XOrigin is the world x of the left edge of column 0
	XOrigin = 95.0
	// CellWidth is the world width of one column
	CellWidth = 0x2E
	// XSpan is the largest in-track offset from XOrigin
	XSpan = 322.0

	// GroundHeight is the resting y of the craft on a ground tile
	GroundHeight = 0x2800 / 128.0
)

var (
	ErrNoColumns     = errors.New("level has no columns")
	ErrColumnCount   = errors.New("level column count mismatch")
	ErrRaggedColumns = errors.New("level columns differ in length")
)

// Level is the static, read-only description of one road
// Safe for concurrent readers; nothing mutates it after construction
type Level struct {
	Name    string
	Gravity int
	Fuel    int
	Oxygen  int
	Palette Palette

	// cells is column-major: cells[column][row]
	cells [][]Cell
}

// New validates the grid shape and builds a level
func New(name string, gravity, fuel, oxygen int, palette Palette, cells [][]Cell) (*Level, error) {
	if len(cells) == 0 {
		return nil, ErrNoColumns
	}
	if len(cells) != Columns {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(cells), Columns)
	}
	length := len(cells[0])
	for i, col := range cells {
		if len(col) != length {
			return nil, fmt.Errorf("%w: column %d has %d rows, column 0 has %d", ErrRaggedColumns, i, len(col), length)
		}
	}

	return &Level{
		Name:    name,
		Gravity: gravity,
		Fuel:    fuel,
		Oxygen:  oxygen,
		Palette: palette,
		cells:   cells,
	}, nil
}

// GetCell maps a world position to its cell
// Positions off the track return the empty cell; falling off the road is routine
func (l *Level) GetCell(x, y, z float64) Cell {
	cx := x - XOrigin
	if cx > XSpan || cx < 0 {
		return Cell{}
	}

	row := math.Floor(math.Floor(z*8.0) / 8)
	col := int(math.Floor(cx / CellWidth))

	if row < 0 || col >= len(l.cells) || row >= float64(len(l.cells[col])) {
		return Cell{}
	}
	return l.cells[col][int(row)]
}

// CellAt returns the cell at grid coordinates, empty when out of range
func (l *Level) CellAt(col, row int) Cell {
	if col < 0 || col >= len(l.cells) || row < 0 || row >= len(l.cells[col]) {
		return Cell{}
	}
	return l.cells[col][row]
}

// Width returns the number of columns
func (l *Level) Width() int {
	return len(l.cells)
}

// Length returns the number of rows
func (l *Level) Length() int {
	return len(l.cells[0])
}

// GravityAcceleration returns the per-frame y-velocity change, FP16 and negative
func (l *Level) GravityAcceleration() float64 {
	g := float64(l.Gravity)
	return -math.Floor(g*0x1680/0x190) / 0x80
}
