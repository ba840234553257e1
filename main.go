// ABOUTME: Entry point for drawerview application
// ABOUTME: Handles command-line parsing, profiling, and routing to TUI or replay modes

// Package main provides the entry point for drawerview, a draggable
// multi-position drawer hosted in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"golang.org/x/sync/errgroup"

	"drawerview/config"
	"drawerview/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	configFlag := flag.String("config", "", "config file (default: ./drawerview.toml or ~/.config/drawerview/config.toml)")
	playlistPath := flag.String("playlist", "", "M3U/M3U8 playlist whose tracks fill the drawer (default: sample rows)")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	replay := flag.String("replay", "", "run a YAML gesture script headlessly and print a trace")
	positions := flag.String("positions", "", "comma separated enabled positions, e.g. open,collapsed")
	flag.Parse()

	if args := flag.Args(); len(args) > 1 || (len(args) == 1 && *playlistPath != "") {
		fmt.Println("Usage: drawerview [flags] [playlist.m3u8]")
		fmt.Println("Example: drawerview -positions open,partially_open,collapsed ~/Music/mix.m3u8")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	} else if len(args) == 1 {
		*playlistPath = args[0]
	}

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	if *debug {
		if err := SetupDebugLog(debugLogFile); err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Config error: %v", err)

		return 1
	}

	if *positions != "" {
		cfg.Positions = splitPositions(*positions)
	}

	if _, err := cfg.ToDrawer(); err != nil {
		log.Printf("Config error: %v", err)

		return 1
	}

	if *replay != "" {
		if err := RunReplay(*replay, cfg, os.Stdout); err != nil {
			log.Printf("Replay error: %v", err)

			return 1
		}

		return 0
	}

	items, err := LoadContent(*playlistPath)
	if err != nil {
		log.Printf("Content error: %v", err)

		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runTUI(ctx, configPath, cfg, tui.Dependencies{Items: items}); err != nil {
		log.Printf("TUI error: %v", err)

		return 1
	}

	return 0
}

// runTUI runs the terminal host alongside the config file watcher. The
// watcher stops when the TUI exits.
func runTUI(ctx context.Context, configPath string, cfg config.DrawerConfig, deps tui.Dependencies) error {
	g, gctx := errgroup.WithContext(ctx)
	tuiCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	deps.ConfigProvider = config.NewSharedConfig(cfg)
	deps.Logger = debugLogger{}

	watcher, err := config.NewWatcher(configPath, debugf)
	if err != nil {
		debugf("[WATCHER] Config watching disabled: %v", err)
	} else {
		changes := make(chan struct{}, 1)
		deps.ConfigChanges = changes

		g.Go(func() error {
			return watcher.Run(tuiCtx, changes)
		})
	}

	g.Go(func() error {
		defer cancel()
		return tui.Run(tuiCtx, tui.Options{ConfigPath: configPath}, deps)
	})

	return g.Wait()
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
