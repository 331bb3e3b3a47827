package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"officeworld/pkg/engine/world"
	"officeworld/pkg/game/building"
)

var cellClasses = map[world.CellType]string{
	world.Wall:       "wall",
	world.Hall:       "hall",
	world.Room:       "room",
	world.UpStair:    "stair",
	world.DownStair:  "stair",
	world.Elevator:   "elevator",
	world.Background: "void",
	world.Start:      "start",
	world.Goal:       "goal",
}

// SaveScreenshotHTML saves every floor of the building as a coloured HTML page named
// after the current time, and returns the file name
func SaveScreenshotHTML(b *building.OfficeBuilding, title string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("office-%s.html", timestamp)

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteHTML(f, b, title); err != nil {
		return filename, err
	}
	return filename, nil
}

// WriteHTML renders the building as a standalone HTML page, one map block per floor
func WriteHTML(w io.Writer, b *building.OfficeBuilding, title string) error {
	var page strings.Builder

	page.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>` + html.EscapeString(title) + `</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .floor-name {
            color: #888;
            margin-top: 20px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 10px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.0;
            font-size: 14px;
        }
        .wall { color: #444; background-color: #444; }
        .hall { color: #d4c27a; background-color: #d4c27a; }
        .room { color: #eee; background-color: #eee; }
        .elevator { color: #fff; background-color: #4444ff; font-weight: bold; }
        .start { color: #000; background-color: #00cc00; font-weight: bold; }
        .goal { color: #000; background-color: #ff4444; font-weight: bold; }
        .stair { color: #00ffff; }
        .void { color: #1a1a2e; }
        .summary { margin-top: 20px; color: #888; }
    </style>
</head>
<body>
`)

	page.WriteString(fmt.Sprintf(`    <div class="header">%s</div>`+"\n", html.EscapeString(title)))

	for i, f := range b.Layout {
		page.WriteString(fmt.Sprintf(`    <div class="floor-name">%s</div>`+"\n",
			html.EscapeString(gotext.Get("Floor %d: %d rooms, %d halls", i, len(b.Rooms[i]), len(b.Halls[i])))))
		page.WriteString(`    <div class="map-container">` + "\n")

		for row := 0; row < f.Rows(); row++ {
			page.WriteString(`        <div class="map-row">`)
			for col := 0; col < f.Cols(); col++ {
				t := f.Get(row, col)
				page.WriteString(fmt.Sprintf(`<span class="%s">%c</span>`, cellClasses[t], cellSymbol(t)))
			}
			page.WriteString("</div>\n")
		}

		page.WriteString(`    </div>` + "\n")
	}

	page.WriteString(fmt.Sprintf(`    <div class="summary">start_floor: %d goal_floor: %d</div>`+"\n", b.StartFloor, b.GoalFloor))
	page.WriteString(`</body>
</html>
`)

	_, err := io.WriteString(w, page.String())
	return err
}
