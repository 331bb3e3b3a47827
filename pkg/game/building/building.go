// Package building holds the generated office: the per-floor layouts plus the hallway
// and room records the generator kept, and the queries downstream consumers run on it.
package building

import (
	"fmt"

	"officeworld/pkg/engine/graph"
	"officeworld/pkg/engine/world"
)

// NoFloor marks an unset start or goal floor
const NoFloor = -1

// OfficeBuilding is the generated building. Layout[f] is floor f, Halls[f] and Rooms[f]
// are the hallway and connected-room rectangles on it.
type OfficeBuilding struct {
	Layout []*world.Floor
	Halls  [][]world.Rectangle
	Rooms  [][]world.Rectangle

	StartFloor    int
	GoalFloor     int
	ContainsStart bool
	ContainsGoal  bool
}

// New returns an empty building with no start or goal floor
func New() *OfficeBuilding {
	return &OfficeBuilding{
		StartFloor: NoFloor,
		GoalFloor:  NoFloor,
	}
}

// NumFloors returns the number of floors
func (b *OfficeBuilding) NumFloors() int {
	return len(b.Layout)
}

// FloorSize returns rows and columns of a floor, or 0,0 for an empty building
func (b *OfficeBuilding) FloorSize() (rows, cols int) {
	if len(b.Layout) == 0 || b.Layout[0] == nil {
		return 0, 0
	}
	return b.Layout[0].Rows(), b.Layout[0].Cols()
}

// AddFloor appends a floor with its hallway and room records
func (b *OfficeBuilding) AddFloor(f *world.Floor, halls, rooms []world.Rectangle) {
	b.Layout = append(b.Layout, f)
	b.Halls = append(b.Halls, halls)
	b.Rooms = append(b.Rooms, rooms)
}

// STG builds the state-transition graph over every floor
func (b *OfficeBuilding) STG() *graph.STG {
	return graph.Build(b.Layout...)
}

// StartCells returns every Start cell in the building, floor by floor
func (b *OfficeBuilding) StartCells() []graph.Node {
	return b.cellsOfType(world.Start)
}

// GoalCells returns every Goal cell in the building, floor by floor
func (b *OfficeBuilding) GoalCells() []graph.Node {
	return b.cellsOfType(world.Goal)
}

func (b *OfficeBuilding) cellsOfType(t world.CellType) []graph.Node {
	var out []graph.Node
	for i, f := range b.Layout {
		f.ForEachCell(func(row, col int, c world.CellType) {
			if c == t {
				out = append(out, graph.Node{Floor: i, Row: row, Col: col})
			}
		})
	}
	return out
}

// Validate checks the structural invariants: equal floor sizes, wall borders, one record
// list per floor, and rooms that overlap neither each other nor hallways
func (b *OfficeBuilding) Validate() error {
	if len(b.Layout) == 0 {
		return fmt.Errorf("building has no floors")
	}
	if len(b.Halls) != len(b.Layout) || len(b.Rooms) != len(b.Layout) {
		return fmt.Errorf("building has %d floors but %d hall lists and %d room lists", len(b.Layout), len(b.Halls), len(b.Rooms))
	}
	rows, cols := b.FloorSize()
	for i, f := range b.Layout {
		if f == nil {
			return fmt.Errorf("floor %d is missing", i)
		}
		if f.Rows() != rows || f.Cols() != cols {
			return fmt.Errorf("floor %d is %dx%d, want %dx%d", i, f.Rows(), f.Cols(), rows, cols)
		}
		if !f.IsBordered() {
			return fmt.Errorf("floor %d is not bordered by wall", i)
		}
		rooms := b.Rooms[i]
		for a := range rooms {
			for c := a + 1; c < len(rooms); c++ {
				if rooms[a].Overlaps(rooms[c]) {
					return fmt.Errorf("floor %d: room %v overlaps room %v", i, rooms[a], rooms[c])
				}
			}
			for _, h := range b.Halls[i] {
				if rooms[a].Overlaps(h) {
					return fmt.Errorf("floor %d: room %v overlaps hall %v", i, rooms[a], h)
				}
			}
		}
	}
	if b.StartFloor < NoFloor || b.StartFloor >= len(b.Layout) {
		return fmt.Errorf("start floor %d out of range", b.StartFloor)
	}
	if b.GoalFloor < NoFloor || b.GoalFloor >= len(b.Layout) {
		return fmt.Errorf("goal floor %d out of range", b.GoalFloor)
	}
	return nil
}
