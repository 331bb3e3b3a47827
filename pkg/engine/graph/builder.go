package graph

import (
	"officeworld/pkg/engine/world"
)

// Build creates the STG for a stack of floors. Floor i sits directly below floor i+1.
//
// Every traversable cell is a node. A node links to each traversable 4-neighbour on its
// floor, an Elevator links to the same row/col one floor up and one floor down when that
// cell exists and is traversable, and a node next to any Wall gets a self-loop: bumping
// into a wall leaves the agent where it was.
func Build(floors ...*world.Floor) *STG {
	g := newSTG()

	for i, f := range floors {
		if f == nil {
			continue
		}
		f.ForEachCell(func(row, col int, t world.CellType) {
			if t.Traversable() {
				g.addNode(Node{Floor: i, Row: row, Col: col})
			}
		})
	}

	for i, f := range floors {
		if f == nil {
			continue
		}
		f.ForEachCell(func(row, col int, t world.CellType) {
			if !t.Traversable() {
				return
			}
			here := Node{Floor: i, Row: row, Col: col}
			blocked := false
			for _, dir := range world.AllDirections() {
				next := f.Neighbor(row, col, dir)
				if next.Traversable() {
					dr, dc := dir.Delta()
					g.addEdge(here, Node{Floor: i, Row: row + dr, Col: col + dc})
				} else if next == world.Wall {
					blocked = true
				}
			}
			if t == world.Elevator {
				for _, j := range []int{i + 1, i - 1} {
					if j < 0 || j >= len(floors) || floors[j] == nil {
						continue
					}
					if floors[j].Get(row, col).Traversable() {
						g.addEdge(here, Node{Floor: j, Row: row, Col: col})
					}
				}
			}
			if blocked {
				g.addEdge(here, here)
			}
		})
	}

	return g
}

// BuildFloor creates the STG of a single floor, as used when judging one candidate floor
func BuildFloor(f *world.Floor) *STG {
	return Build(f)
}
