package tile

import (
	"errors"
	"fmt"
	"math"

	"github.com/vova616/phys2d"
	"github.com/vova616/phys2d/vect"
)

var ErrOutOfRange = errors.New("cell out of range")

// Map is a grid of square cells. Row 0 is the top row.
type Map struct {
	Cols, Rows int
	Size       vect.Float
	// Top left corner of the grid.
	Origin vect.Vect

	cells []Cell
}

func NewMap(cols, rows int, size vect.Float, origin vect.Vect) *Map {
	m := &Map{
		Cols:   cols,
		Rows:   rows,
		Size:   size,
		Origin: origin,
		cells:  make([]Cell, cols*rows),
	}
	half := size / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			m.cells[row*cols+col] = Cell{
				Pos: vect.Vect{
					X: origin.X + vect.Float(col)*size + half,
					Y: origin.Y + vect.Float(row)*size + half,
				},
				XW: half,
				YW: half,
			}
		}
	}
	return m
}

// FromIDs builds a map from rows of tile ids. Short rows are padded with
// empty cells.
func FromIDs(ids [][]int, size vect.Float) (*Map, error) {
	cols := 0
	for _, row := range ids {
		if len(row) > cols {
			cols = len(row)
		}
	}

	m := NewMap(cols, len(ids), size, vect.Vector_Zero)
	for r, row := range ids {
		for c, id := range row {
			if err := m.Set(c, r, id); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Map) inRange(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.Cols && row < m.Rows
}

func (m *Map) Set(col, row, id int) error {
	if !m.inRange(col, row) {
		return fmt.Errorf("set (%d, %d): %w", col, row, ErrOutOfRange)
	}
	return m.cells[row*m.Cols+col].SetID(id)
}

// At returns the cell at (col, row), or nil outside the grid.
func (m *Map) At(col, row int) *Cell {
	if !m.inRange(col, row) {
		return nil
	}
	return &m.cells[row*m.Cols+col]
}

// CellAt returns the column and row containing p.
func (m *Map) CellAt(p vect.Vect) (col, row int) {
	col = int(math.Floor(float64((p.X - m.Origin.X) / m.Size)))
	row = int(math.Floor(float64((p.Y - m.Origin.Y) / m.Size)))
	return
}

func (m *Map) Bounds() phys2d.AABB {
	return phys2d.AABB{
		Lower: m.Origin,
		Upper: vect.Vect{
			X: m.Origin.X + vect.Float(m.Cols)*m.Size,
			Y: m.Origin.Y + vect.Float(m.Rows)*m.Size,
		},
	}
}

// Query calls fn for every solid cell overlapping bb, row by row.
func (m *Map) Query(bb phys2d.AABB, fn func(*Cell)) {
	c0, r0 := m.CellAt(bb.Lower)
	c1, r1 := m.CellAt(bb.Upper)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, m.Cols-1), min(r1, m.Rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if cell := &m.cells[row*m.Cols+col]; !cell.IsEmpty() {
				fn(cell)
			}
		}
	}
}
