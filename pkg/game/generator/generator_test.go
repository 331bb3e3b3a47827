package generator

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"officeworld/pkg/engine/graph"
	"officeworld/pkg/engine/world"
	"officeworld/pkg/game/building"
)

// smallOffice is the 20x16 office used across these tests
func smallOffice() Config {
	cfg := DefaultConfig()
	cfg.FloorWidth = 20
	cfg.FloorHeight = 16
	cfg.HallWidth = 2
	cfg.MinRoomArea = 20
	cfg.MinRoomLength = 3
	cfg.MaxHallRate = 0.15
	cfg.MaxAttempts = 5000
	return cfg
}

func mustGenerate(t *testing.T, cfg Config, seed int64) (*building.OfficeBuilding, *Generator) {
	t.Helper()
	g, err := New(cfg, WithSeed(seed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return b, g
}

func TestGenerate_SmallOfficeIsConnected(t *testing.T) {
	b, g := mustGenerate(t, smallOffice(), 42)

	if b.NumFloors() != 1 {
		t.Fatalf("NumFloors = %d, want 1", b.NumFloors())
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !b.STG().WeaklyConnected() {
		t.Error("building STG is not weakly connected")
	}
	if len(b.Rooms[0]) == 0 {
		t.Error("expected at least one connected room")
	}
	if g.Stats().RunID == "" {
		t.Error("expected a run id")
	}
	if got := g.Stats().TotalAttempts(); got < 1 {
		t.Errorf("TotalAttempts = %d, want at least 1", got)
	}
}

func TestGenerate_SameSeedSameBuilding(t *testing.T) {
	cfg := smallOffice()
	cfg.NumFloors = 2
	a, _ := mustGenerate(t, cfg, 7)
	b, _ := mustGenerate(t, cfg, 7)

	for i := range a.Layout {
		if !a.Layout[i].Equal(b.Layout[i]) {
			t.Errorf("floor %d differs between runs with the same seed", i)
		}
		if len(a.Rooms[i]) != len(b.Rooms[i]) {
			t.Fatalf("floor %d: %d rooms vs %d rooms", i, len(a.Rooms[i]), len(b.Rooms[i]))
		}
		for j := range a.Rooms[i] {
			if a.Rooms[i][j] != b.Rooms[i][j] {
				t.Errorf("floor %d room %d: %v vs %v", i, j, a.Rooms[i][j], b.Rooms[i][j])
			}
		}
	}
	if a.StartFloor != b.StartFloor || a.GoalFloor != b.GoalFloor {
		t.Errorf("start/goal floors differ: %d/%d vs %d/%d", a.StartFloor, a.GoalFloor, b.StartFloor, b.GoalFloor)
	}
}

func TestGenerate_ElevatorLinksAllFloors(t *testing.T) {
	cfg := smallOffice()
	cfg.NumFloors = 3
	cfg.Elevator = &world.Position{Row: 5, Col: 5}
	b, _ := mustGenerate(t, cfg, 3)

	for i, f := range b.Layout {
		if got := f.Get(5, 5); got != world.Elevator {
			t.Errorf("floor %d: cell (5,5) = %v, want ELEVATOR", i, got)
		}
	}

	stg := b.STG()
	if !stg.Reachable(graph.Node{Floor: 0, Row: 5, Col: 5}, graph.Node{Floor: 2, Row: 5, Col: 5}) {
		t.Error("floor 2 elevator not reachable from floor 0")
	}
	if !stg.WeaklyConnected() {
		t.Error("building STG is not weakly connected")
	}
}

func TestGenerate_PlacesStartAndGoal(t *testing.T) {
	cfg := smallOffice()
	cfg.NumFloors = 2
	cfg.StartFloor = 0
	cfg.GoalFloor = 1
	b, _ := mustGenerate(t, cfg, 11)

	if !b.ContainsStart || !b.ContainsGoal {
		t.Fatalf("ContainsStart=%v ContainsGoal=%v, want both true", b.ContainsStart, b.ContainsGoal)
	}
	if b.StartFloor != 0 || b.GoalFloor != 1 {
		t.Errorf("StartFloor=%d GoalFloor=%d, want 0 and 1", b.StartFloor, b.GoalFloor)
	}
	for _, n := range b.StartCells() {
		if n.Floor != 0 {
			t.Errorf("start cell %v not on floor 0", n)
		}
	}
	for _, n := range b.GoalCells() {
		if n.Floor != 1 {
			t.Errorf("goal cell %v not on floor 1", n)
		}
	}
	if len(b.StartCells()) == 0 || len(b.GoalCells()) == 0 {
		t.Error("expected start and goal cells")
	}
}

func TestGenerate_WithoutStartOrGoal(t *testing.T) {
	cfg := smallOffice()
	cfg.PlaceStart = false
	cfg.PlaceGoal = false
	b, _ := mustGenerate(t, cfg, 5)

	if b.ContainsStart || b.ContainsGoal {
		t.Error("expected no start or goal")
	}
	if b.StartFloor != building.NoFloor || b.GoalFloor != building.NoFloor {
		t.Errorf("StartFloor=%d GoalFloor=%d, want both %d", b.StartFloor, b.GoalFloor, building.NoFloor)
	}
	if n := len(b.StartCells()) + len(b.GoalCells()); n != 0 {
		t.Errorf("found %d start/goal cells, want 0", n)
	}
}

func TestPlaceRegion_StartAndGoalMayShareRoom(t *testing.T) {
	g, err := New(smallOffice(), WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f := world.NewFloor(8, 8)
	room := world.Rectangle{Left: 2, Top: 2, Width: 4, Height: 4}
	f.Fill(room, world.Room)
	b := building.New()
	b.AddFloor(f, nil, []world.Rectangle{room})

	start, err := g.placeRegion(b, building.NoFloor, world.Start)
	if err != nil {
		t.Fatalf("place start: %v", err)
	}
	goal, err := g.placeRegion(b, building.NoFloor, world.Goal)
	if err != nil {
		t.Fatalf("place goal: %v", err)
	}

	if start != 0 || goal != 0 {
		t.Errorf("start floor %d goal floor %d, want 0 and 0", start, goal)
	}
	if got := len(b.GoalCells()); got != room.Area() {
		t.Errorf("goal cells = %d, want %d", got, room.Area())
	}
	if got := len(b.StartCells()); got != 0 {
		t.Errorf("start cells = %d, want 0 after goal overwrote the shared room", got)
	}
}

func TestPlaceRegion_FloorWithoutRooms(t *testing.T) {
	g, err := New(smallOffice(), WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b := building.New()
	b.AddFloor(world.NewFloor(5, 5), nil, nil)

	if _, err := g.placeRegion(b, 0, world.Start); err == nil {
		t.Error("expected an error for a floor without rooms")
	}
}

func TestGenerate_AttemptsExhausted(t *testing.T) {
	cfg := smallOffice()
	cfg.MaxAttempts = 1
	// Validate rejects a corner elevator, so build the generator directly.
	cfg.Elevator = &world.Position{Row: 1, Col: 1}

	g := &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(9)),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	_, err := g.Generate()
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("err = %v, want ErrAttemptsExhausted", err)
	}
	stats := g.Stats()
	if len(stats.Floors) != 1 || stats.Floors[0].Attempts != 1 {
		t.Fatalf("stats = %+v, want one floor with one attempt", stats)
	}
	if stats.Floors[0].Rejected() != 1 {
		t.Errorf("Rejected = %d, want 1", stats.Floors[0].Rejected())
	}
}

func TestGenerateFloor_OneDoorPerRoom(t *testing.T) {
	cfg := smallOffice()
	rng := rand.New(rand.NewSource(21))

	var plan *FloorPlan
	for i := 0; i < 100; i++ {
		p, err := GenerateFloor(cfg, rng)
		if err == nil {
			plan = p
			break
		}
		if !errors.Is(err, ErrUnconnectableLayout) {
			t.Fatalf("GenerateFloor: %v", err)
		}
	}
	if plan == nil {
		t.Fatal("no connectable floor in 100 tries")
	}

	if len(plan.Doors) != len(plan.Rooms) {
		t.Fatalf("%d doors for %d rooms", len(plan.Doors), len(plan.Rooms))
	}
	for i, d := range plan.Doors {
		room := plan.Rooms[i]
		if room.Contains(d.Row, d.Col) {
			t.Errorf("door %v lies inside its room %v", d, room)
		}
		if got := plan.Floor.At(d); got != world.Room {
			t.Errorf("door %v is %v, want ROOM", d, got)
		}
		touches := false
		for _, dir := range world.AllDirections() {
			n := d.Step(dir)
			if room.Contains(n.Row, n.Col) {
				touches = true
			}
		}
		if !touches {
			t.Errorf("door %v does not touch room %v", d, room)
		}
	}
}

func TestGenerateFloor_DoorsLeadToTheNetwork(t *testing.T) {
	cfg := smallOffice()
	rng := rand.New(rand.NewSource(33))

	checked := 0
	for try := 0; try < 200 && checked < 20; try++ {
		plan, err := GenerateFloor(cfg, rng)
		if errors.Is(err, ErrUnconnectableLayout) {
			continue
		}
		if err != nil {
			t.Fatalf("GenerateFloor: %v", err)
		}
		checked++

		for i, d := range plan.Doors {
			room := plan.Rooms[i]
			var behind world.Position
			found := false
			for _, dir := range world.AllDirections() {
				if n := d.Step(dir); room.Contains(n.Row, n.Col) {
					behind = d.Step(dir.Opposite())
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("door %v does not touch room %v", d, room)
			}
			if !reachedBefore(plan, i, behind) {
				t.Errorf("door %v of room %v opens onto %v (%v), not a hall or an earlier room",
					d, room, behind, plan.Floor.At(behind))
			}
		}
	}
	if checked == 0 {
		t.Fatal("no connectable floor generated")
	}
}

// reachedBefore reports whether p is hall or part of a room connected before room i
func reachedBefore(plan *FloorPlan, i int, p world.Position) bool {
	if plan.Floor.At(p) == world.Hall {
		return true
	}
	for _, h := range plan.Halls {
		if h.Contains(p.Row, p.Col) {
			return true
		}
	}
	for j := 0; j < i; j++ {
		if plan.Rooms[j].Contains(p.Row, p.Col) || plan.Doors[j] == p {
			return true
		}
	}
	return false
}

func TestGenerateFloor_CornerBandsNeverHall(t *testing.T) {
	cfg := smallOffice()
	rng := rand.New(rand.NewSource(4))

	for try := 0; try < 50; try++ {
		p := PartitionFloor(cfg, rng)
		for row := 1; row < cfg.FloorHeight-1; row++ {
			for col := 1; col < cfg.FloorWidth-1; col++ {
				pos := world.Position{Row: row, Col: col}
				if cfg.elevatorUnreachable(pos) && p.Floor.At(pos) == world.Hall {
					t.Fatalf("try %d: corner cell %v is hall", try, pos)
				}
			}
		}
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	for _, want := range []string{"num_floors", "hall_width", "max_attempts"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(c *Config) {}, true},
		{"small office", func(c *Config) { *c = smallOffice() }, true},
		{"room length one", func(c *Config) { c.MinRoomLength = 1 }, false},
		{"hall rate zero", func(c *Config) { c.MaxHallRate = 0 }, false},
		{"too small for a hall", func(c *Config) { c.FloorWidth, c.FloorHeight = 8, 8 }, false},
		{"elevator on border", func(c *Config) { c.Elevator = &world.Position{Row: 0, Col: 3} }, false},
		{"elevator inside", func(c *Config) { c.Elevator = &world.Position{Row: 10, Col: 10} }, true},
		{"elevator in corner band", func(c *Config) { c.Elevator = &world.Position{Row: 5, Col: 5} }, false},
		{"elevator in far corner band", func(c *Config) { c.Elevator = &world.Position{Row: 34, Col: 44} }, false},
		{"elevator near one border only", func(c *Config) { c.Elevator = &world.Position{Row: 2, Col: 20} }, true},
		{"start floor out of range", func(c *Config) { c.StartFloor = 1 }, false},
		{"goal floor below unset", func(c *Config) { c.GoalFloor = -2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "office.yaml")
	data := "floor_width: 30\nfloor_height: 20\nnum_floors: 2\nelevator_location:\n  row: 5\n  col: 6\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.FloorWidth != 30 || cfg.FloorHeight != 20 || cfg.NumFloors != 2 {
		t.Errorf("got %dx%d x%d, want 30x20 x2", cfg.FloorWidth, cfg.FloorHeight, cfg.NumFloors)
	}
	if cfg.Elevator == nil || *cfg.Elevator != (world.Position{Row: 5, Col: 6}) {
		t.Errorf("Elevator = %v, want 5,6", cfg.Elevator)
	}
	if cfg.HallWidth != DefaultConfig().HallWidth {
		t.Errorf("HallWidth = %d, want default %d", cfg.HallWidth, DefaultConfig().HallWidth)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "office.yaml")
	if err := os.WriteFile(path, []byte("floor_widht: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}
