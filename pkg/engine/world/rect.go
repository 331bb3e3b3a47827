package world

import (
	"errors"
	"fmt"
)

// ErrInvalidRectangle is returned when a rectangle would have a non-positive side
var ErrInvalidRectangle = errors.New("invalid rectangle")

// Rectangle is an axis-aligned block of cells. Left/Top is the top-left cell;
// Width and Height are always positive.
type Rectangle struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// NewRectangle returns a rectangle, rejecting non-positive sizes
func NewRectangle(left, top, width, height int) (Rectangle, error) {
	r := Rectangle{Left: left, Top: top, Width: width, Height: height}
	if !r.Valid() {
		return Rectangle{}, fmt.Errorf("%w: %dx%d at (%d,%d)", ErrInvalidRectangle, width, height, left, top)
	}
	return r, nil
}

// Valid returns true if both sides are positive
func (r Rectangle) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Area returns the number of cells covered
func (r Rectangle) Area() int {
	return r.Width * r.Height
}

// Right returns the column just past the right edge
func (r Rectangle) Right() int {
	return r.Left + r.Width
}

// Bottom returns the row just past the bottom edge
func (r Rectangle) Bottom() int {
	return r.Top + r.Height
}

// LongSide returns the larger of width and height
func (r Rectangle) LongSide() int {
	if r.Width > r.Height {
		return r.Width
	}
	return r.Height
}

// Contains reports whether the cell at row/col lies inside the rectangle
func (r Rectangle) Contains(row, col int) bool {
	return col >= r.Left && col < r.Right() && row >= r.Top && row < r.Bottom()
}

// Overlaps reports whether the two rectangles share at least one cell
func (r Rectangle) Overlaps(o Rectangle) bool {
	return r.Left < o.Right() && o.Left < r.Right() && r.Top < o.Bottom() && o.Top < r.Bottom()
}

// Cells calls fn for every cell inside the rectangle, row by row
func (r Rectangle) Cells(fn func(row, col int)) {
	for row := r.Top; row < r.Bottom(); row++ {
		for col := r.Left; col < r.Right(); col++ {
			fn(row, col)
		}
	}
}

// String returns the rectangle as left,top widthxheight
func (r Rectangle) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.Left, r.Top, r.Width, r.Height)
}
