package generator

import (
	"fmt"
	"math/rand"

	"officeworld/pkg/engine/world"
)

// Partition is one floor after the hallway phase
type Partition struct {
	Floor *world.Floor
	Halls []world.Rectangle
	// Chunks holds every leftover region, still-splittable ones first, then terminal ones
	Chunks []world.Rectangle
	// HallRate is the hallway area as a fraction of the whole floor
	HallRate float64
}

// PartitionFloor carves hallways into an empty floor. The largest chunk is always cut
// next, across its longer side, until the hallway area reaches cfg.MaxHallRate or no
// chunk is big enough. One smoothing pass then closes single-cell gaps between hallways.
func PartitionFloor(cfg Config, rng *rand.Rand) *Partition {
	floor := world.NewFloor(cfg.FloorHeight, cfg.FloorWidth)
	queue := newChunkQueue(cfg.interior())
	total := float64(floor.Area())

	p := &Partition{Floor: floor}
	var terminal []world.Rectangle

	for {
		c, ok := queue.pop()
		if !ok {
			break
		}
		floor.Fill(c, world.Wall)

		if p.HallRate >= cfg.MaxHallRate {
			terminal = append(terminal, c)
			floor.Fill(c, world.Room)
			break
		}

		if !cfg.canCarveHall(c) {
			terminal = append(terminal, c)
			floor.Fill(c, world.Room)
			continue
		}

		hall, parts := carveHall(cfg, rng, c)
		p.Halls = append(p.Halls, hall)
		p.HallRate += float64(hall.Area()) / total
		for _, part := range parts {
			queue.push(part)
			floor.Fill(part, world.Room)
		}
		floor.Fill(hall, world.Hall)
	}

	p.Chunks = append(queue.drain(), terminal...)
	smoothHalls(floor)
	return p
}

// carveHall cuts a hallway across the longer side of c. Each remainder is separated
// from the hallway by one wall line and keeps at least MinRoomLength cells.
func carveHall(cfg Config, rng *rand.Rand, c world.Rectangle) (world.Rectangle, [2]world.Rectangle) {
	w := cfg.HallWidth
	span := c.Height
	vertical := c.Width > c.Height
	if vertical {
		span = c.Width
	}

	cut := randBetween(rng, cfg.MinRoomLength+1, span-cfg.MinRoomLength-w-2)
	rest := span - cut - w - 1

	if vertical {
		return world.Rectangle{Left: c.Left + cut, Top: c.Top, Width: w, Height: c.Height},
			[2]world.Rectangle{
				{Left: c.Left, Top: c.Top, Width: cut - 1, Height: c.Height},
				{Left: c.Left + cut + w + 1, Top: c.Top, Width: rest, Height: c.Height},
			}
	}
	return world.Rectangle{Left: c.Left, Top: c.Top + cut, Width: c.Width, Height: w},
		[2]world.Rectangle{
			{Left: c.Left, Top: c.Top, Width: c.Width, Height: cut - 1},
			{Left: c.Left, Top: c.Top + cut + w + 1, Width: c.Width, Height: rest},
		}
}

// smoothHalls turns an interior cell into Hall when both horizontal or both vertical
// neighbours are Hall. Runs once, in place, row by row.
func smoothHalls(f *world.Floor) {
	for row := 1; row < f.Rows()-1; row++ {
		for col := 1; col < f.Cols()-1; col++ {
			if f.Get(row, col-1) == world.Hall && f.Get(row, col+1) == world.Hall {
				f.Set(row, col, world.Hall)
			} else if f.Get(row-1, col) == world.Hall && f.Get(row+1, col) == world.Hall {
				f.Set(row, col, world.Hall)
			}
		}
	}
}

// randBetween returns a uniform integer in [lo, hi]. Validate guarantees every caller
// a non-empty range, so an inverted one panics.
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("randBetween: empty range [%d, %d]", lo, hi))
	}
	return lo + rng.Intn(hi-lo+1)
}
