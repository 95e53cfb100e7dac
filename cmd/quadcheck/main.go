package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"quadcheck/internal/logger"
	"quadcheck/pkg/config"
	"quadcheck/pkg/display"
	"quadcheck/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

const (
	exitOK = iota
	exitFailure
	exitUsage
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	envPath := flag.String("env", ".env", "Path to a .env file with QUADCHECK_* / S3_* variables")
	surface := flag.String("surface", "", "Surface to render: sphere, cylinder, cone, tapered_cylinder or all")
	out := flag.String("out", "", "Output image path (.png, .bmp, .tiff)")
	width := flag.Int("width", 0, "Image width in pixels")
	height := flag.Int("height", 0, "Image height in pixels")
	falloff := flag.String("falloff", "", "Distance falloff: linear or power")
	policy := flag.String("policy", "", "Root policy: nearest or near-only")
	ascii := flag.Bool("ascii", false, "Print an ASCII preview")
	view := flag.Bool("view", false, "Show the frame in a window")
	upload := flag.Bool("upload", false, "Upload the image to S3")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this path and exit")
	flag.Parse()

	boot := logger.NewLogger("info")

	if err := config.LoadEnvFile(*envPath); err != nil {
		boot.Errorf("Failed to load %s: %v", *envPath, err)
		return exitUsage
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			boot.Errorf("Failed to load configuration: %v", err)
			return exitUsage
		}
		boot.Debugf("%s not found, using defaults", *configPath)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		boot.Errorf("Bad environment override: %v", err)
		return exitUsage
	}

	// only flags given on the command line override file and environment
	all := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "surface":
			if strings.EqualFold(*surface, "all") {
				all = true
			} else {
				cfg.Surface.Kind = *surface
			}
		case "out":
			cfg.Output.Path = *out
		case "width":
			cfg.Render.Width = *width
		case "height":
			cfg.Render.Height = *height
		case "falloff":
			cfg.Shading.Falloff = *falloff
		case "policy":
			cfg.Render.RootPolicy = *policy
		case "ascii":
			cfg.Display.ASCII = *ascii
		case "view":
			cfg.Display.Window = *view
		case "upload":
			cfg.Upload.Enabled = *upload
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	log := logger.NewLogger(cfg.Log.Level)
	if cfg.Log.File != "" {
		if log, err = logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File); err != nil {
			boot.Errorf("Failed to open log file: %v", err)
			return exitUsage
		}
	}
	defer log.Close()

	if *writeConfig != "" {
		if err := config.SaveConfig(cfg, *writeConfig); err != nil {
			log.Errorf("Failed to write configuration: %v", err)
			return exitFailure
		}
		log.Infof("Configuration written to %s", *writeConfig)
		return exitOK
	}

	e, err := engine.NewEngine(cfg, log)
	if err != nil {
		log.Errorf("Failed to initialize engine: %v", err)
		return exitUsage
	}
	defer e.Close()

	if cfg.Display.Window {
		viewer, err := display.NewViewer(cfg.Display.Title, cfg.Render.Width, cfg.Render.Height)
		if err != nil {
			log.Errorf("Failed to open window: %v", err)
			return exitFailure
		}
		e.AddRenderer(viewer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if all {
		results, err := e.RunAll(ctx)
		if err != nil {
			log.Errorf("Render failed: %v", err)
			return exitFailure
		}
		log.Infof("Rendered %d surfaces", len(results))
		return exitOK
	}

	res, err := e.Run(ctx)
	if err != nil {
		log.Errorf("Render failed: %v", err)
		return exitFailure
	}
	if res.Path != "" {
		fmt.Println(res.Path)
	}
	return exitOK
}
