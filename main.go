// Command plexus animates a swarm of particles bouncing in a box, linking
// every pair that drifts closer than a threshold distance.
//
// Usage:
//
//	plexus [flags] [config_file]
//
// The optional argument is a TOML (or .yaml/.yml) config file; keys left
// out keep their defaults. With no output path set, the swarm runs in an
// interactive window. With an output path, it runs headless for the
// configured number of steps and writes one JSON object per frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/plexus-go/internal/config"
	"github.com/olivierh59500/plexus-go/internal/record"
)

const usage = `Usage: plexus [flags] [config_file]

The optional argument is the path to a TOML or YAML config file.
Without an output path, the swarm runs in an interactive window.

Flags:
`

func main() {
	debug := flag.Bool("debug", false, "log debug messages")
	quiet := flag.Bool("q", false, "only log errors")
	watch := flag.Bool("watch", false, "reload the config file when it changes (window only)")
	out := flag.String("out", "", "record frames to this JSON lines file instead of opening a window (- for stdout)")
	steps := flag.Int("steps", 0, "number of ticks to record")
	seed := flag.Uint64("seed", 0, "random seed (0 seeds from the clock)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromFlags(*debug, *quiet),
	})))

	var path string
	conf := config.Default()
	var err error
	switch flag.NArg() {
	case 0:
	case 1:
		path = flag.Arg(0)
		conf, err = config.Load(path)
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)", flag.NArg())
	}
	if err != nil {
		fatal(err)
	}

	// flags given explicitly override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			conf.Output = *out
		case "steps":
			conf.Steps = *steps
		case "seed":
			conf.Seed = *seed
		}
	})
	if conf.Seed == 0 {
		conf.Seed = clockSeed()
	}
	if err := conf.Check(); err != nil {
		fatal(err)
	}
	slog.Info("starting", "seed", conf.Seed, "particles", conf.ParticleCount, "min_distance", conf.MinDistance)

	if conf.Output == "" {
		err = runViewer(conf, path, *watch)
	} else {
		err = runHeadless(conf)
	}
	if err != nil {
		fatal(err)
	}
}

// levelFromFlags returns the log level for the debug and quiet flags.
func levelFromFlags(debug, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// fatal logs err and exits with a non-zero status.
func fatal(err error) {
	slog.Error(err.Error())
	os.Exit(1)
}

func runViewer(conf *config.Config, path string, watch bool) error {
	v, err := NewViewer(conf)
	if err != nil {
		return err
	}

	if watch && path != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if v.reload, err = config.Watch(ctx, path); err != nil {
			return err
		}
		slog.Info("watching config", "path", path)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(conf.Width, conf.Height)
	ebiten.SetWindowTitle("plexus")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(conf.TPS)

	// Run the game loop
	return ebiten.RunGame(v)
}

func runHeadless(conf *config.Config) error {
	sim, err := conf.NewSimulator()
	if err != nil {
		return err
	}
	sum, err := record.ToFile(conf.Output, sim, conf.Steps)
	if err != nil {
		return fmt.Errorf("recording %s: %w", conf.Output, err)
	}
	slog.Info("recorded", "output", conf.Output, "summary", sum)
	return nil
}
