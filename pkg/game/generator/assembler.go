package generator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"officeworld/pkg/engine/graph"
	"officeworld/pkg/engine/world"
	"officeworld/pkg/game/building"
)

// ErrAttemptsExhausted is returned when a floor is still rejected after MaxAttempts tries
var ErrAttemptsExhausted = errors.New("floor generation attempts exhausted")

// RejectCause says why a candidate floor was thrown away
type RejectCause int

const (
	// RejectElevator means the elevator cell did not land on a hallway
	RejectElevator RejectCause = iota
	// RejectDisconnected means the floor's STG was not weakly connected
	RejectDisconnected
	// RejectUnconnectable means some room could not get a door
	RejectUnconnectable
)

// String returns a short name for the cause
func (c RejectCause) String() string {
	switch c {
	case RejectElevator:
		return "elevator"
	case RejectDisconnected:
		return "disconnected"
	case RejectUnconnectable:
		return "unconnectable"
	default:
		return "unknown"
	}
}

// FloorStats counts the work done for one floor index
type FloorStats struct {
	Attempts      int
	ElevatorMiss  int
	Disconnected  int
	Unconnectable int
	HallRate      float64
}

// Rejected returns the number of discarded candidates
func (s FloorStats) Rejected() int {
	return s.ElevatorMiss + s.Disconnected + s.Unconnectable
}

func (s *FloorStats) reject(c RejectCause) {
	switch c {
	case RejectElevator:
		s.ElevatorMiss++
	case RejectDisconnected:
		s.Disconnected++
	case RejectUnconnectable:
		s.Unconnectable++
	}
}

// Stats describes one Generate call
type Stats struct {
	RunID  string
	Floors []FloorStats
}

// TotalAttempts sums the candidate floors generated across all floors
func (s Stats) TotalAttempts() int {
	n := 0
	for _, f := range s.Floors {
		n += f.Attempts
	}
	return n
}

// Generate builds every floor in order, regenerating each one from an empty grid until
// it is acceptable, then carves elevators and the start and goal rooms.
func (g *Generator) Generate() (*building.OfficeBuilding, error) {
	g.stats = Stats{RunID: uuid.NewString()}
	log := g.log.With("run", g.stats.RunID)
	log.Info("Generating building", "floors", g.cfg.NumFloors, "width", g.cfg.FloorWidth, "height", g.cfg.FloorHeight)

	b := building.New()
	for i := 0; i < g.cfg.NumFloors; i++ {
		plan, stats, err := g.acceptFloor(i)
		g.stats.Floors = append(g.stats.Floors, stats)
		if err != nil {
			log.Error("Floor generation failed", "floor", i, "error", err)
			return nil, err
		}
		if g.cfg.Elevator != nil {
			plan.Floor.Set(g.cfg.Elevator.Row, g.cfg.Elevator.Col, world.Elevator)
		}
		b.AddFloor(plan.Floor, plan.Halls, plan.Rooms)
		log.Info("Floor accepted", "floor", i, "attempts", stats.Attempts, "rooms", len(plan.Rooms),
			"halls", len(plan.Halls), "hall_rate", plan.HallRate)
	}

	if g.cfg.PlaceStart {
		f, err := g.placeRegion(b, g.cfg.StartFloor, world.Start)
		if err != nil {
			return nil, err
		}
		b.StartFloor = f
		b.ContainsStart = true
	}
	if g.cfg.PlaceGoal {
		f, err := g.placeRegion(b, g.cfg.GoalFloor, world.Goal)
		if err != nil {
			return nil, err
		}
		b.GoalFloor = f
		b.ContainsGoal = true
	}

	log.Info("Building generated", "attempts", g.stats.TotalAttempts(), "start_floor", b.StartFloor, "goal_floor", b.GoalFloor)
	return b, nil
}

// acceptFloor is the rejection-sampling loop for one floor index
func (g *Generator) acceptFloor(index int) (*FloorPlan, FloorStats, error) {
	var stats FloorStats

	for stats.Attempts < g.cfg.MaxAttempts {
		stats.Attempts++

		plan, cause, ok := g.tryFloor()
		if ok {
			stats.HallRate = plan.HallRate
			return plan, stats, nil
		}
		stats.reject(cause)
		g.log.Debug("Floor rejected", "floor", index, "attempt", stats.Attempts, "cause", cause)
	}

	return nil, stats, fmt.Errorf("%w: floor %d after %d attempts (elevator %d, disconnected %d, unconnectable %d)",
		ErrAttemptsExhausted, index, stats.Attempts, stats.ElevatorMiss, stats.Disconnected, stats.Unconnectable)
}

// tryFloor generates one candidate and judges it
func (g *Generator) tryFloor() (*FloorPlan, RejectCause, bool) {
	plan, err := GenerateFloor(g.cfg, g.rng)
	if err != nil {
		return nil, RejectUnconnectable, false
	}
	if e := g.cfg.Elevator; e != nil && plan.Floor.Get(e.Row, e.Col) != world.Hall {
		return nil, RejectElevator, false
	}
	if stg := graph.BuildFloor(plan.Floor); !stg.WeaklyConnected() {
		g.log.Debug("Floor graph split", "components", stg.Components(), "nodes", stg.NumNodes())
		return nil, RejectDisconnected, false
	}
	return plan, 0, true
}

// placeRegion paints one connected room of the chosen floor with t. floor -1 picks a
// floor at random. Start and goal may share a room; the later one wins the cells.
func (g *Generator) placeRegion(b *building.OfficeBuilding, floor int, t world.CellType) (int, error) {
	if floor == building.NoFloor {
		floor = g.rng.Intn(b.NumFloors())
	}
	rooms := b.Rooms[floor]
	if len(rooms) == 0 {
		return building.NoFloor, fmt.Errorf("place %v: floor %d has no rooms", t, floor)
	}
	room := rooms[g.rng.Intn(len(rooms))]
	b.Layout[floor].Fill(room, t)
	return floor, nil
}
