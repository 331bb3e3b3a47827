package generator

import (
	"math/rand"

	"officeworld/pkg/engine/world"
)

// FloorPlan is one candidate floor after the hallway, room and door phases
type FloorPlan struct {
	Floor    *world.Floor
	Halls    []world.Rectangle
	Rooms    []world.Rectangle
	Doors    []world.Position
	HallRate float64
}

// GenerateFloor runs the three phases on a fresh grid. On ErrUnconnectableLayout the
// partial plan is returned alongside the error so callers can inspect it.
func GenerateFloor(cfg Config, rng *rand.Rand) (*FloorPlan, error) {
	p := PartitionFloor(cfg, rng)
	rooms := SplitRooms(cfg, rng, p.Floor, p.Chunks)
	doors, err := ConnectRooms(rng, p.Floor, rooms, p.Halls)

	plan := &FloorPlan{
		Floor:    p.Floor,
		Halls:    p.Halls,
		Rooms:    doors.Rooms,
		Doors:    doors.Cells,
		HallRate: p.HallRate,
	}
	return plan, err
}
