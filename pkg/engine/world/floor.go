package world

import (
	"fmt"
)

// Floor is one storey of the building: a fixed rows x cols grid of cell types.
// A new floor is solid Wall.
type Floor struct {
	cells []CellType
	rows  int
	cols  int
}

// NewFloor creates a floor filled with Wall
func NewFloor(rows, cols int) *Floor {
	if rows <= 0 || cols <= 0 {
		panic("Floor dimensions must be positive")
	}
	return &Floor{
		cells: make([]CellType, rows*cols),
		rows:  rows,
		cols:  cols,
	}
}

// FloorFromRows builds a floor from row-major cell data. All rows must have the same length.
func FloorFromRows(data [][]CellType) (*Floor, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("floor has no cells")
	}
	f := NewFloor(len(data), len(data[0]))
	for row, line := range data {
		if len(line) != f.cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", row, len(line), f.cols)
		}
		for col, t := range line {
			if !t.IsValid() {
				return nil, fmt.Errorf("cell %d,%d: invalid cell type %d", row, col, t)
			}
			f.cells[row*f.cols+col] = t
		}
	}
	return f, nil
}

// Rows returns the number of rows in the floor
func (f *Floor) Rows() int {
	return f.rows
}

// Cols returns the number of columns in the floor
func (f *Floor) Cols() int {
	return f.cols
}

// Area returns the total number of cells, border included
func (f *Floor) Area() int {
	return f.rows * f.cols
}

// InBounds checks if a row/col position is within the floor
func (f *Floor) InBounds(row, col int) bool {
	return row >= 0 && row < f.rows && col >= 0 && col < f.cols
}

// IsInterior checks if a position is inside the one-cell perimeter
func (f *Floor) IsInterior(row, col int) bool {
	return row >= 1 && row < f.rows-1 && col >= 1 && col < f.cols-1
}

// Get returns the cell type at row/col. Out-of-bounds positions read as Wall.
func (f *Floor) Get(row, col int) CellType {
	if !f.InBounds(row, col) {
		return Wall
	}
	return f.cells[row*f.cols+col]
}

// At returns the cell type at p
func (f *Floor) At(p Position) CellType {
	return f.Get(p.Row, p.Col)
}

// Set writes the cell type at row/col. Returns false if out of bounds.
func (f *Floor) Set(row, col int, t CellType) bool {
	if !f.InBounds(row, col) {
		return false
	}
	f.cells[row*f.cols+col] = t
	return true
}

// Fill paints every in-bounds cell of r with t
func (f *Floor) Fill(r Rectangle, t CellType) {
	r.Cells(func(row, col int) {
		f.Set(row, col, t)
	})
}

// Neighbor returns the cell type one step from row/col in dir
func (f *Floor) Neighbor(row, col int, dir Direction) CellType {
	dr, dc := dir.Delta()
	return f.Get(row+dr, col+dc)
}

// IsBordered reports whether the outer ring of the floor is entirely Wall
func (f *Floor) IsBordered() bool {
	for col := 0; col < f.cols; col++ {
		if f.Get(0, col) != Wall || f.Get(f.rows-1, col) != Wall {
			return false
		}
	}
	for row := 0; row < f.rows; row++ {
		if f.Get(row, 0) != Wall || f.Get(row, f.cols-1) != Wall {
			return false
		}
	}
	return true
}

// Count returns how many cells hold t
func (f *Floor) Count(t CellType) int {
	n := 0
	for _, c := range f.cells {
		if c == t {
			n++
		}
	}
	return n
}

// ForEachCell iterates over all cells in row-major order
func (f *Floor) ForEachCell(fn func(row, col int, t CellType)) {
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			fn(row, col, f.cells[row*f.cols+col])
		}
	}
}

// Clone returns an independent copy of the floor
func (f *Floor) Clone() *Floor {
	c := &Floor{
		cells: make([]CellType, len(f.cells)),
		rows:  f.rows,
		cols:  f.cols,
	}
	copy(c.cells, f.cells)
	return c
}

// Equal reports whether both floors have the same size and cells
func (f *Floor) Equal(o *Floor) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.rows != o.rows || f.cols != o.cols {
		return false
	}
	for i := range f.cells {
		if f.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// RowData returns a row-major copy of the cells, indexed [row][col]
func (f *Floor) RowData() [][]CellType {
	out := make([][]CellType, f.rows)
	for row := range out {
		out[row] = make([]CellType, f.cols)
		copy(out[row], f.cells[row*f.cols:(row+1)*f.cols])
	}
	return out
}
