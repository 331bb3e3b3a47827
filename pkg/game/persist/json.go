// Package persist saves and loads office buildings as tagged JSON. Cells are written as
// {"__enum__":"CellType.WALL"} objects and rectangles as [left, top, width, height].
package persist

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"officeworld/pkg/engine/world"
	"officeworld/pkg/game/building"
)

const (
	documentType = "OfficeBuilding"
	enumPrefix   = "CellType."
)

type document struct {
	Type          string         `json:"__type__"`
	Layout        [][][]cellJSON `json:"layout"`
	Halls         [][][4]int     `json:"halls"`
	Rooms         [][][4]int     `json:"rooms"`
	StartFloor    *int           `json:"start_floor,omitempty"`
	GoalFloor     *int           `json:"goal_floor,omitempty"`
	ContainsStart bool           `json:"contains_start"`
	ContainsGoal  bool           `json:"contains_goal"`
}

type cellJSON world.CellType

type enumJSON struct {
	Enum string `json:"__enum__"`
}

func (c cellJSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(enumJSON{Enum: enumPrefix + world.CellType(c).String()})
}

func (c *cellJSON) UnmarshalJSON(data []byte) error {
	var e enumJSON
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	name, ok := strings.CutPrefix(e.Enum, enumPrefix)
	if !ok {
		return fmt.Errorf("unknown enum %q", e.Enum)
	}
	t, err := world.ParseCellType(name)
	if err != nil {
		return err
	}
	*c = cellJSON(t)
	return nil
}

// Marshal encodes b in the tagged building format
func Marshal(b *building.OfficeBuilding) ([]byte, error) {
	doc := document{
		Type:          documentType,
		Layout:        make([][][]cellJSON, len(b.Layout)),
		Halls:         encodeRects(b.Halls),
		Rooms:         encodeRects(b.Rooms),
		StartFloor:    &b.StartFloor,
		GoalFloor:     &b.GoalFloor,
		ContainsStart: b.ContainsStart,
		ContainsGoal:  b.ContainsGoal,
	}
	for i, f := range b.Layout {
		rows := f.RowData()
		doc.Layout[i] = make([][]cellJSON, len(rows))
		for r, row := range rows {
			doc.Layout[i][r] = make([]cellJSON, len(row))
			for c, t := range row {
				doc.Layout[i][r][c] = cellJSON(t)
			}
		}
	}
	return json.Marshal(doc)
}

// Unmarshal validates data against the building schema and decodes it. Documents without
// start or goal fields load with both floors unset.
func Unmarshal(data []byte) (*building.OfficeBuilding, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode building: %w", err)
	}

	b := building.New()
	if doc.StartFloor != nil {
		b.StartFloor = *doc.StartFloor
	}
	if doc.GoalFloor != nil {
		b.GoalFloor = *doc.GoalFloor
	}
	b.ContainsStart = doc.ContainsStart
	b.ContainsGoal = doc.ContainsGoal

	if len(doc.Halls) != len(doc.Layout) || len(doc.Rooms) != len(doc.Layout) {
		return nil, fmt.Errorf("decode building: %d floors but %d hall lists and %d room lists",
			len(doc.Layout), len(doc.Halls), len(doc.Rooms))
	}
	for i, rows := range doc.Layout {
		cells := make([][]world.CellType, len(rows))
		for r, row := range rows {
			cells[r] = make([]world.CellType, len(row))
			for c, t := range row {
				cells[r][c] = world.CellType(t)
			}
		}
		f, err := world.FloorFromRows(cells)
		if err != nil {
			return nil, fmt.Errorf("decode floor %d: %w", i, err)
		}
		halls, err := decodeRects(doc.Halls[i])
		if err != nil {
			return nil, fmt.Errorf("decode floor %d halls: %w", i, err)
		}
		rooms, err := decodeRects(doc.Rooms[i])
		if err != nil {
			return nil, fmt.Errorf("decode floor %d rooms: %w", i, err)
		}
		b.AddFloor(f, halls, rooms)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("decode building: %w", err)
	}
	return b, nil
}

// Save writes b to path
func Save(path string, b *building.OfficeBuilding) error {
	data, err := Marshal(b)
	if err != nil {
		return fmt.Errorf("encode building: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write building: %w", err)
	}
	return nil
}

// Load reads a building from path
func Load(path string) (*building.OfficeBuilding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read building: %w", err)
	}
	return Unmarshal(data)
}

func encodeRects(floors [][]world.Rectangle) [][][4]int {
	out := make([][][4]int, len(floors))
	for i, rects := range floors {
		out[i] = make([][4]int, len(rects))
		for j, r := range rects {
			out[i][j] = [4]int{r.Left, r.Top, r.Width, r.Height}
		}
	}
	return out
}

func decodeRects(raw [][4]int) ([]world.Rectangle, error) {
	out := make([]world.Rectangle, 0, len(raw))
	for _, v := range raw {
		r, err := world.NewRectangle(v[0], v[1], v[2], v[3])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
