// Command rigsim drives scripted line-art vehicles through the two-context frame pipeline
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/rigsim/audio"
	"github.com/lixenwraith/rigsim/config"
	"github.com/lixenwraith/rigsim/core"
	"github.com/lixenwraith/rigsim/engine"
	"github.com/lixenwraith/rigsim/gfx"
	"github.com/lixenwraith/rigsim/input"
	"github.com/lixenwraith/rigsim/logic"
	"github.com/lixenwraith/rigsim/physics"
	"github.com/lixenwraith/rigsim/render"
	"github.com/lixenwraith/rigsim/scenario"
	"github.com/lixenwraith/rigsim/script"
	"github.com/lixenwraith/rigsim/script/lua"
	"github.com/lixenwraith/rigsim/service"
	"github.com/lixenwraith/rigsim/status"
	"github.com/lixenwraith/rigsim/terminal"
)

// Headless runs without an exit key, so they are bounded by default
const headlessFrames = 300

//go:embed drive.lua
var driveScript string

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	scriptPath = flag.String("script", "", "path to a Lua script, overrides the config")
	debug      = flag.Bool("debug", false, "write logs to the configured log file")
	headless   = flag.Bool("headless", false, "run without a terminal using the recording renderer")
	frames     = flag.Uint64("frames", 0, "stop after this many frames, 0 uses the config")
	cpuProfile = flag.Bool("profile", false, "write a CPU profile to the working directory")
	levelFlag  logLevelFlag
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level: DEBUG, INFO, WARN, ERROR")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rigsim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if levelFlag.set {
		level = levelFlag.value
	}
	var fallback io.Writer = io.Discard
	if cfg.Render.Headless {
		fallback = os.Stderr
	}
	if closer := setupLogging(cfg.Log, *debug, level, fallback); closer != nil {
		defer closer.Close()
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	sc, err := loadScript(cfg.Script.Path)
	if err != nil {
		return err
	}

	reg := status.NewRegistry()
	events := gfx.NewEvents()
	hub := service.NewHub()
	defer hub.StopAll()

	var (
		device   input.Device
		renderer gfx.Renderer
		recorder *render.Recorder
		svc      *terminal.Service
	)
	if cfg.Render.Headless {
		recorder = render.NewRecorder()
		recorder.Keep = 1
		renderer = recorder
	} else {
		svc = terminal.NewService(nil, terminal.NewKeyDevice(cfg.Render.KeyHold))
		if err := hub.Register(svc); err != nil {
			return err
		}
		if cfg.Audio.Enabled {
			cues := audio.NewCues(cfg.Audio.Volume)
			if err := hub.Register(cues); err != nil {
				return err
			}
			cues.Attach(events)
		}
	}
	if err := hub.InitAll(); err != nil {
		return err
	}
	if svc != nil {
		device = svc.Device()
		renderer = render.NewTerminal(svc.Screen(), reg)
	}

	lc := logic.New(
		logic.WithScript(sc),
		logic.WithDevice(device),
		logic.WithSolver(physics.NewIntegrator()),
		logic.WithCatalog(scenario.DefaultCatalog()),
	)
	defer lc.Close()
	if _, err := scenario.Spawn(lc, cfg.Scenario); err != nil {
		return err
	}
	gc := gfx.New(renderer, gfx.WithEvents(events), gfx.WithStatus(reg))

	sim := engine.New(lc, gc,
		engine.WithFrameLimit(cfg.Frame.TargetFPS),
		engine.WithStallBudget(cfg.Frame.StallBudget),
		engine.WithMaxFrames(cfg.Frame.MaxFrames),
		engine.WithStatus(reg),
		engine.WithRestore(func() {
			if err := hub.StopAll(); err != nil {
				slog.Error("service stop", "error", err)
			}
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := hub.StartAll(); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	if svc != nil {
		g.Go(func() error {
			select {
			case <-svc.Interrupted():
				slog.Info("interrupt received")
				cancel()
			case <-ctx.Done():
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()
		return sim.Run(ctx)
	})
	err = g.Wait()

	if recorder != nil {
		fmt.Printf("frames rendered: %d, meshes created: %d, destroyed: %d\n",
			recorder.Rendered, recorder.Created, recorder.Destroyed)
		for _, line := range reg.Dump() {
			fmt.Println(line)
		}
	}
	return err
}

// loadConfig reads the config file when given and applies command line overrides
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *scriptPath != "" {
		cfg.Script.Path = *scriptPath
	}
	if *headless {
		cfg.Render.Headless = true
	}
	if *frames > 0 {
		cfg.Frame.MaxFrames = *frames
	}
	if cfg.Render.Headless && cfg.Frame.MaxFrames == 0 {
		cfg.Frame.MaxFrames = headlessFrames
	}
	return cfg, nil
}

func loadScript(path string) (script.Script, error) {
	if path == "" {
		return lua.Load("drive.lua", driveScript)
	}
	return lua.LoadFile(path)
}
