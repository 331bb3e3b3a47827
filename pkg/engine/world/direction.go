package world

import "fmt"

// Direction is one of the four grid moves on a floor
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the row and column offsets for this direction
func (d Direction) Delta() (rowDelta, colDelta int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Position addresses a cell on a floor
type Position struct {
	Row int `yaml:"row" json:"row"`
	Col int `yaml:"col" json:"col"`
}

// Step returns the position one move away in dir
func (p Position) Step(dir Direction) Position {
	dr, dc := dir.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// String returns the position as row,col
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}
