package generator

import (
	"math/rand"

	"officeworld/pkg/engine/world"
)

type splitAxis int

const (
	splitVertical splitAxis = iota
	splitHorizontal
)

// SplitRooms subdivides the leftover chunks of a partitioned floor into final rooms.
// The largest chunk is split next along a randomly chosen valid axis, leaving a one-cell
// wall between the halves; a chunk too small on both axes becomes a room.
func SplitRooms(cfg Config, rng *rand.Rand, floor *world.Floor, chunks []world.Rectangle) []world.Rectangle {
	queue := newChunkQueue(chunks...)
	var rooms []world.Rectangle

	for {
		c, ok := queue.pop()
		if !ok {
			break
		}
		floor.Fill(c, world.Wall)

		axes := validSplitAxes(cfg, c)
		if len(axes) == 0 {
			rooms = append(rooms, c)
			floor.Fill(c, world.Room)
			continue
		}

		for _, part := range splitRoom(cfg, rng, c, axes[rng.Intn(len(axes))]) {
			queue.push(part)
			floor.Fill(part, world.Room)
		}

		if cfg.DebugRepaint {
			for _, r := range append(queue.pending(), rooms...) {
				floor.Fill(r, world.Room)
			}
		}
	}

	return rooms
}

func validSplitAxes(cfg Config, c world.Rectangle) []splitAxis {
	var axes []splitAxis
	if c.Width >= 2*cfg.MinRoomLength+1 {
		axes = append(axes, splitVertical)
	}
	if c.Height >= 2*cfg.MinRoomLength+1 {
		axes = append(axes, splitHorizontal)
	}
	return axes
}

// splitRoom cuts c in two. The first part is [MinRoomLength-1, len-MinRoomLength-2] long,
// the second takes what is left after the wall line.
func splitRoom(cfg Config, rng *rand.Rand, c world.Rectangle, axis splitAxis) [2]world.Rectangle {
	if axis == splitVertical {
		cut := randBetween(rng, cfg.MinRoomLength-1, c.Width-cfg.MinRoomLength-2)
		return [2]world.Rectangle{
			{Left: c.Left, Top: c.Top, Width: cut, Height: c.Height},
			{Left: c.Left + cut + 1, Top: c.Top, Width: c.Width - cut - 1, Height: c.Height},
		}
	}
	cut := randBetween(rng, cfg.MinRoomLength-1, c.Height-cfg.MinRoomLength-2)
	return [2]world.Rectangle{
		{Left: c.Left, Top: c.Top, Width: c.Width, Height: cut},
		{Left: c.Left, Top: c.Top + cut + 1, Width: c.Width, Height: c.Height - cut - 1},
	}
}
