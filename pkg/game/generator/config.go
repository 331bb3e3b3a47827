package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"officeworld/pkg/engine/world"
)

// ErrInvalidConfig wraps every configuration problem found by Validate
var ErrInvalidConfig = errors.New("invalid generator config")

// Config holds the per-floor generation parameters and building-level options.
// Floor sizes include the one-cell wall border.
type Config struct {
	FloorWidth    int     `yaml:"floor_width"`
	FloorHeight   int     `yaml:"floor_height"`
	NumFloors     int     `yaml:"num_floors"`
	HallWidth     int     `yaml:"hall_width"`
	MinRoomArea   int     `yaml:"min_room_area"`
	MinRoomLength int     `yaml:"min_room_length"`
	MaxHallRate   float64 `yaml:"max_hall_rate"`

	// Elevator, when set, is carved on every floor and links floors vertically
	Elevator *world.Position `yaml:"elevator_location,omitempty"`

	// StartFloor and GoalFloor pick the floor for the start/goal room; -1 picks at random
	StartFloor int  `yaml:"start_floor"`
	GoalFloor  int  `yaml:"goal_floor"`
	PlaceStart bool `yaml:"place_start"`
	PlaceGoal  bool `yaml:"place_goal"`

	// MaxAttempts bounds how many candidate floors are generated for one floor index
	MaxAttempts int `yaml:"max_attempts"`

	// DebugRepaint repaints every pending and finished chunk after each room split,
	// reproducing the step-by-step picture for visual debugging. Off by default.
	DebugRepaint bool `yaml:"debug_repaint"`
}

// DefaultConfig returns the stock office parameters
func DefaultConfig() Config {
	return Config{
		FloorWidth:    50,
		FloorHeight:   40,
		NumFloors:     1,
		HallWidth:     2,
		MinRoomArea:   50,
		MinRoomLength: 4,
		MaxHallRate:   0.15,
		StartFloor:    -1,
		GoalFloor:     -1,
		PlaceStart:    true,
		PlaceGoal:     true,
		MaxAttempts:   1000,
	}
}

// interior returns the rectangle inside the perimeter wall
func (c Config) interior() world.Rectangle {
	return world.Rectangle{Left: 1, Top: 1, Width: c.FloorWidth - 2, Height: c.FloorHeight - 2}
}

// canCarveHall reports whether a chunk is large enough to take a hallway
func (c Config) canCarveHall(r world.Rectangle) bool {
	return r.LongSide() > 2*(c.MinRoomLength+1)+c.HallWidth && r.Area() > c.MinRoomArea
}

// Validate checks that the parameters can ever produce a floor. All problems are reported.
func (c Config) Validate() error {
	var err error

	if c.FloorWidth < 3 || c.FloorHeight < 3 {
		err = multierr.Append(err, fmt.Errorf("floor must be at least 3x3, got %dx%d", c.FloorWidth, c.FloorHeight))
	}
	if c.NumFloors < 1 {
		err = multierr.Append(err, fmt.Errorf("num_floors must be at least 1, got %d", c.NumFloors))
	}
	if c.HallWidth < 1 {
		err = multierr.Append(err, fmt.Errorf("hall_width must be at least 1, got %d", c.HallWidth))
	}
	if c.MinRoomLength < 2 {
		err = multierr.Append(err, fmt.Errorf("min_room_length must be at least 2, got %d", c.MinRoomLength))
	}
	if c.MinRoomArea < 0 {
		err = multierr.Append(err, fmt.Errorf("min_room_area must not be negative, got %d", c.MinRoomArea))
	}
	if c.MaxHallRate <= 0 || c.MaxHallRate > 1 {
		err = multierr.Append(err, fmt.Errorf("max_hall_rate must be in (0, 1], got %g", c.MaxHallRate))
	}
	if c.MaxAttempts < 1 {
		err = multierr.Append(err, fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts))
	}
	if err == nil && !c.canCarveHall(c.interior()) {
		err = multierr.Append(err, fmt.Errorf(
			"floor interior %v cannot fit a hallway: longest side must exceed %d and area must exceed %d",
			c.interior(), 2*(c.MinRoomLength+1)+c.HallWidth, c.MinRoomArea))
	}
	if c.Elevator != nil {
		p := *c.Elevator
		if p.Row < 1 || p.Row > c.FloorHeight-2 || p.Col < 1 || p.Col > c.FloorWidth-2 {
			err = multierr.Append(err, fmt.Errorf("elevator_location %v is not inside the floor interior", p))
		} else if c.elevatorUnreachable(p) {
			err = multierr.Append(err, fmt.Errorf(
				"elevator_location %v is within %d cells of an interior corner, where no hallway can reach",
				p, c.MinRoomLength+1))
		}
	}
	if c.StartFloor < -1 || c.StartFloor >= c.NumFloors {
		err = multierr.Append(err, fmt.Errorf("start_floor %d out of range [-1, %d)", c.StartFloor, c.NumFloors))
	}
	if c.GoalFloor < -1 || c.GoalFloor >= c.NumFloors {
		err = multierr.Append(err, fmt.Errorf("goal_floor %d out of range [-1, %d)", c.GoalFloor, c.NumFloors))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// elevatorUnreachable reports whether p sits in a corner band that no hallway covers.
// A hall always leaves MinRoomLength+1 cells of room on either side of its cut, so a
// cell close to both a horizontal and a vertical border is never hall.
func (c Config) elevatorUnreachable(p world.Position) bool {
	band := c.MinRoomLength + 1
	nearRow := p.Row <= band || p.Row >= c.FloorHeight-1-band
	nearCol := p.Col <= band || p.Col >= c.FloorWidth-1-band
	return nearRow && nearCol
}
