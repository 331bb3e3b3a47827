// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"officeworld/pkg/engine/world"
	"officeworld/pkg/game/building"
)

const mapDumpFilename = "map.txt"

// DumpOptions controls a building dump
type DumpOptions struct {
	// Color wraps each cell symbol in its colour style
	Color bool
	// Seed and RunID are echoed in the metadata section when set
	Seed  int64
	RunID string
}

var cellStyles = map[world.CellType]color.Style{
	world.Wall:     {color.FgGray},
	world.Hall:     {color.FgYellow},
	world.Room:     {color.FgBlue},
	world.Elevator: {color.FgMagenta, color.OpBold},
	world.Start:    {color.FgGreen, color.OpBold},
	world.Goal:     {color.FgRed, color.OpBold},
}

// cellSymbol returns the single-character symbol for a cell type
func cellSymbol(t world.CellType) rune {
	switch t {
	case world.Wall:
		return '#'
	case world.Hall:
		return '.'
	case world.Room:
		return 'r'
	case world.Elevator:
		return 'E'
	case world.Start:
		return 'S'
	case world.Goal:
		return 'G'
	case world.UpStair:
		return '^'
	case world.DownStair:
		return 'v'
	default:
		return ' '
	}
}

// WriteFloor writes one floor, one line per row
func WriteFloor(w io.Writer, f *world.Floor, opts DumpOptions) {
	var line strings.Builder
	for row := 0; row < f.Rows(); row++ {
		line.Reset()
		for col := 0; col < f.Cols(); col++ {
			t := f.Get(row, col)
			sym := string(cellSymbol(t))
			if style, ok := cellStyles[t]; ok && opts.Color {
				sym = style.Sprint(sym)
			}
			line.WriteString(sym)
		}
		fmt.Fprintln(w, line.String())
	}
}

// DumpBuilding writes a full debug dump: metadata, legend, per-floor record counts and
// every floor map. Format is human-readable (sections, key: value).
func DumpBuilding(w io.Writer, b *building.OfficeBuilding, opts DumpOptions) {
	rows, cols := b.FloorSize()
	stg := b.STG()

	// --- Metadata ---
	fmt.Fprintln(w, gotext.Get("=== OFFICE BUILDING DUMP ==="))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, gotext.Get("--- Metadata ---"))
	if opts.RunID != "" {
		fmt.Fprintf(w, "run_id: %s\n", opts.RunID)
	}
	if opts.Seed != 0 {
		fmt.Fprintf(w, "seed: %d\n", opts.Seed)
	}
	fmt.Fprintf(w, "floors: %d\n", b.NumFloors())
	fmt.Fprintf(w, "floor_rows: %d\n", rows)
	fmt.Fprintf(w, "floor_cols: %d\n", cols)
	fmt.Fprintf(w, "coordinate_system: row,col (0-based, row=vertical, col=horizontal)\n")
	fmt.Fprintf(w, "start_floor: %d\n", b.StartFloor)
	fmt.Fprintf(w, "goal_floor: %d\n", b.GoalFloor)
	fmt.Fprintf(w, "stg_nodes: %d\n", stg.NumNodes())
	fmt.Fprintf(w, "stg_edges: %d\n", stg.NumEdges())
	fmt.Fprintf(w, "weakly_connected: %v\n", stg.WeaklyConnected())
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, gotext.Get("--- Legend (cell symbols) ---"))
	fmt.Fprintln(w, "# = wall  . = hall  r = room  E = elevator  S = start  G = goal  ^ = up stair  v = down stair")
	fmt.Fprintln(w, "")

	for i, f := range b.Layout {
		fmt.Fprintln(w, gotext.Get("--- Floor %d ---", i))
		fmt.Fprintf(w, "halls: %d\n", len(b.Halls[i]))
		fmt.Fprintf(w, "rooms: %d\n", len(b.Rooms[i]))
		fmt.Fprintf(w, "elevator_cells: %d\n", f.Count(world.Elevator))
		WriteFloor(w, f, opts)
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, gotext.Get("=== END DUMP ==="))
}

// DumpBuildingToFile writes the debug dump to map.txt in the working directory and
// returns its absolute path. Colour is never written to the file.
func DumpBuildingToFile(b *building.OfficeBuilding, opts DumpOptions) (string, error) {
	if b.NumFloors() == 0 {
		return "", fmt.Errorf("no floors")
	}

	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	opts.Color = false
	DumpBuilding(f, b, opts)

	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
