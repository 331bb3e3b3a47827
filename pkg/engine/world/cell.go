// Package world provides the grid primitives shared by every stage of office generation:
// cell types, rectangles, positions, directions and the per-floor cell grid.
package world

import (
	"fmt"
)

// CellType is the closed set of values a floor cell can hold.
type CellType uint8

// Cell type constants. UpStair and DownStair are reserved; nothing places them yet.
const (
	Wall CellType = iota
	Hall
	Room
	UpStair
	DownStair
	Elevator
	Background
	Start
	Goal
)

var cellTypeNames = [...]string{
	Wall:       "WALL",
	Hall:       "HALL",
	Room:       "ROOM",
	UpStair:    "UPSTAIR",
	DownStair:  "DOWNSTAIR",
	Elevator:   "ELEVATOR",
	Background: "BACKGROUND",
	Start:      "START",
	Goal:       "GOAL",
}

// AllCellTypes returns every cell type in declaration order
func AllCellTypes() []CellType {
	return []CellType{Wall, Hall, Room, UpStair, DownStair, Elevator, Background, Start, Goal}
}

// String returns the upper-case name of the cell type
func (t CellType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("CellType(%d)", uint8(t))
	}
	return cellTypeNames[t]
}

// IsValid returns true if t is one of the declared cell types
func (t CellType) IsValid() bool {
	return t <= Goal
}

// Traversable returns true for cells an agent can stand on
func (t CellType) Traversable() bool {
	switch t {
	case Room, Hall, Elevator, Start, Goal:
		return true
	default:
		return false
	}
}

// ParseCellType returns the cell type with the given upper-case name
func ParseCellType(name string) (CellType, error) {
	for i, n := range cellTypeNames {
		if n == name {
			return CellType(i), nil
		}
	}
	return Wall, fmt.Errorf("unknown cell type %q", name)
}
