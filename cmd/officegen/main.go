package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/lmittmann/tint"

	"officeworld/pkg/engine/terminal"
	"officeworld/pkg/engine/world"
	"officeworld/pkg/game/building"
	"officeworld/pkg/game/devtools"
	"officeworld/pkg/game/generator"
	"officeworld/pkg/game/persist"
)

type options struct {
	configPath string
	seed       int64
	floors     int
	width      int
	height     int
	elevator   *world.Position
	in         string
	out        string
	dumpFile   bool
	html       bool
	colorMode  string
	verbose    bool
	localeDir  string
	lang       string
}

func parseFlags() *options {
	o := &options{}
	flag.StringVar(&o.configPath, "config", "", "YAML generator config (defaults are used when empty)")
	flag.Int64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.IntVar(&o.floors, "floors", 0, "number of floors (overrides config)")
	flag.IntVar(&o.width, "width", 0, "floor width including walls (overrides config)")
	flag.IntVar(&o.height, "height", 0, "floor height including walls (overrides config)")
	flag.Func("elevator", "elevator cell as row,col (overrides config)", func(s string) error {
		p, err := parsePosition(s)
		if err != nil {
			return err
		}
		o.elevator = &p
		return nil
	})
	flag.StringVar(&o.in, "in", "", "load a saved building and dump it instead of generating")
	flag.StringVar(&o.out, "out", "", "save the generated building as JSON")
	flag.BoolVar(&o.dumpFile, "dump-file", false, "also write the dump to map.txt")
	flag.BoolVar(&o.html, "html", false, "also save the building as an HTML page")
	flag.StringVar(&o.colorMode, "color", "auto", "colour the map: auto, always or never")
	flag.BoolVar(&o.verbose, "verbose", false, "log every rejected floor")
	flag.StringVar(&o.localeDir, "locale", "", "gettext locale directory")
	flag.StringVar(&o.lang, "lang", "en_GB", "locale language")
	flag.Parse()
	return o
}

func parsePosition(s string) (world.Position, error) {
	row, col, ok := strings.Cut(s, ",")
	if !ok {
		return world.Position{}, fmt.Errorf("want row,col, got %q", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(row))
	if err != nil {
		return world.Position{}, fmt.Errorf("row: %w", err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(col))
	if err != nil {
		return world.Position{}, fmt.Errorf("col: %w", err)
	}
	return world.Position{Row: r, Col: c}, nil
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return terminal.IsInteractive()
	}
}

func newLogger(o *options, colored bool) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !colored,
	}))
}

func loadConfig(o *options) (generator.Config, error) {
	cfg := generator.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = generator.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.floors > 0 {
		cfg.NumFloors = o.floors
	}
	if o.width > 0 {
		cfg.FloorWidth = o.width
	}
	if o.height > 0 {
		cfg.FloorHeight = o.height
	}
	if o.elevator != nil {
		cfg.Elevator = o.elevator
	}
	return cfg, nil
}

func printStats(stats generator.Stats) {
	fmt.Println(gotext.Get("--- Generation ---"))
	fmt.Printf("run_id: %s\n", stats.RunID)
	for i, f := range stats.Floors {
		fmt.Printf("floor %d: attempts: %d elevator_miss: %d disconnected: %d unconnectable: %d hall_rate: %.3f\n",
			i, f.Attempts, f.ElevatorMiss, f.Disconnected, f.Unconnectable, f.HallRate)
	}
}

func dump(b *building.OfficeBuilding, opts devtools.DumpOptions, o *options, log *slog.Logger) {
	if _, cols := b.FloorSize(); !terminal.FitsWidth(cols) {
		log.Warn("Floor is wider than the terminal", "cols", cols)
	}
	devtools.DumpBuilding(os.Stdout, b, opts)
	if o.dumpFile {
		path, err := devtools.DumpBuildingToFile(b, opts)
		if err != nil {
			log.Error("Map dump failed", "error", err)
		} else {
			log.Info("Map dumped", "path", path)
		}
	}
	if o.html {
		path, err := devtools.SaveScreenshotHTML(b, gotext.Get("Office building"))
		if err != nil {
			log.Error("HTML snapshot failed", "error", err)
		} else {
			log.Info("HTML snapshot saved", "path", path)
		}
	}
}

func run(o *options) error {
	colored := useColor(o.colorMode)
	color.Enable = colored
	log := newLogger(o, colored)

	if o.localeDir != "" {
		gotext.Configure(o.localeDir, o.lang, "default")
	}

	if o.in != "" {
		b, err := persist.Load(o.in)
		if err != nil {
			return err
		}
		log.Info("Building loaded", "path", o.in, "floors", b.NumFloors())
		dump(b, devtools.DumpOptions{Color: colored}, o, log)
		return nil
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen, err := generator.New(cfg, generator.WithSeed(seed), generator.WithLog(log))
	if err != nil {
		return err
	}

	log.Info("Generator ready", "name", gen.Name(), "seed", seed)
	b, err := gen.Generate()
	if err != nil {
		printStats(gen.Stats())
		return err
	}

	dump(b, devtools.DumpOptions{Color: colored, Seed: seed, RunID: gen.Stats().RunID}, o, log)
	printStats(gen.Stats())

	if o.out != "" {
		if err := persist.Save(o.out, b); err != nil {
			return err
		}
		log.Info("Building saved", "path", o.out)
	}
	return nil
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
