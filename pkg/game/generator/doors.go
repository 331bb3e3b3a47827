package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"officeworld/pkg/engine/world"
)

// ErrUnconnectableLayout is returned when some rooms can never reach the hallway network
var ErrUnconnectableLayout = errors.New("unconnectable layout")

// Doors is the outcome of the door phase
type Doors struct {
	// Rooms lists every room in the order it was connected
	Rooms []world.Rectangle
	// Cells lists the opened door cells, parallel to Rooms
	Cells []world.Position
}

// ringCell is a wall cell just outside a room edge; out points away from the room
type ringCell struct {
	pos world.Position
	out world.Direction
}

type doorConnector struct {
	floor     *world.Floor
	rng       *rand.Rand
	rooms     []world.Rectangle
	halls     []world.Rectangle
	connected []bool
	doors     mapset.Set[world.Position]
	result    *Doors
}

// ConnectRooms opens exactly one door per room. A room first looks for a wall cell on
// its boundary with a hallway directly behind it; failing that, one with an already
// connected room or a hallway behind it. Rooms that find neither wait at the back of the
// queue for their neighbours. When a whole pass over the waiting rooms connects nothing,
// no later pass can either, and ErrUnconnectableLayout is returned.
func ConnectRooms(rng *rand.Rand, floor *world.Floor, rooms, halls []world.Rectangle) (*Doors, error) {
	d := &doorConnector{
		floor:     floor,
		rng:       rng,
		rooms:     rooms,
		halls:     halls,
		connected: make([]bool, len(rooms)),
		doors:     mapset.New[world.Position](),
		result:    &Doors{},
	}

	waiting := queue.New[int]()
	for i := range rooms {
		waiting.Enqueue(i)
	}
	remaining := len(rooms)
	misses := 0

	for !waiting.Empty() {
		i := waiting.Dequeue()
		if d.connect(i) {
			remaining--
			misses = 0
			continue
		}
		waiting.Enqueue(i)
		misses++
		if misses >= remaining {
			return d.result, fmt.Errorf("%w: %d of %d rooms have no route to a hallway", ErrUnconnectableLayout, remaining, len(rooms))
		}
	}

	return d.result, nil
}

// boundary returns the shuffled wall cells around room i, corners excluded
func (d *doorConnector) boundary(i int) []ringCell {
	r := d.rooms[i]
	var ring []ringCell
	add := func(row, col int, out world.Direction) {
		if d.floor.IsInterior(row, col) && d.floor.Get(row, col) == world.Wall {
			ring = append(ring, ringCell{pos: world.Position{Row: row, Col: col}, out: out})
		}
	}
	for col := r.Left; col < r.Right(); col++ {
		add(r.Top-1, col, world.North)
		add(r.Bottom(), col, world.South)
	}
	for row := r.Top; row < r.Bottom(); row++ {
		add(row, r.Left-1, world.West)
		add(row, r.Right(), world.East)
	}
	d.rng.Shuffle(len(ring), func(a, b int) {
		ring[a], ring[b] = ring[b], ring[a]
	})
	return ring
}

func (d *doorConnector) connect(i int) bool {
	ring := d.boundary(i)

	for _, c := range ring {
		if d.floor.Neighbor(c.pos.Row, c.pos.Col, c.out) == world.Hall {
			d.open(i, c.pos)
			return true
		}
	}

	for _, c := range ring {
		behind := c.pos.Step(c.out)
		if d.floor.At(behind) == world.Room && d.reachesNetwork(behind) {
			d.open(i, c.pos)
			return true
		}
	}

	return false
}

// reachesNetwork reports whether the non-wall cell at p belongs to a connected room,
// a door of one, or a hallway
func (d *doorConnector) reachesNetwork(p world.Position) bool {
	for j, r := range d.rooms {
		if r.Contains(p.Row, p.Col) {
			return d.connected[j]
		}
	}
	if d.doors.Has(p) {
		return true
	}
	for _, h := range d.halls {
		if h.Contains(p.Row, p.Col) {
			return true
		}
	}
	return false
}

func (d *doorConnector) open(i int, p world.Position) {
	d.floor.Set(p.Row, p.Col, world.Room)
	d.connected[i] = true
	d.doors.Put(p)
	d.result.Rooms = append(d.result.Rooms, d.rooms[i])
	d.result.Cells = append(d.result.Cells, p)
}
