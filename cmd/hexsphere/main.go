// hexsphere exports the H3 grid as chunked glTF meshes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/hexsphere/internal/config"
	"github.com/Faultbox/hexsphere/internal/hexgrid"
	"github.com/Faultbox/hexsphere/internal/logger"
	"github.com/Faultbox/hexsphere/internal/world"
	"github.com/Faultbox/hexsphere/pkg/gltf"
	"github.com/Faultbox/hexsphere/pkg/sphere"
)

func main() {
	config.ParseFlags()
	args := config.Args()

	command := "generate"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "generate", "gen":
		os.Exit(cmdGenerate())
	case "info":
		cmdInfo(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hexsphere - export the H3 grid as chunked glTF meshes

Usage:
  hexsphere [flags] <command> [args]

Commands:
  generate                 Build and export every chunk (default)
  info <file.gltf>...      Show vertex/triangle counts of exported chunks
  config [path]            Write the effective config as YAML (stdout if no path)

Flags:
  -config <file>     Config file (default ./hexsphere.yaml or user config dir)
  -chunk-res <n>     Chunk resolution, 0-15
  -world-res <n>     World resolution, chunk-res..15
  -out <dir>         Output folder
  -prefix <name>     File name prefix
  -seed <n>          Color seed
  -workers <n>       Chunks built in parallel
  -fail-fast         Stop at the first failed chunk
  -debug             Debug logging

Examples:
  hexsphere -world-res 2 -prefix earth
  hexsphere -chunk-res 1 -world-res 4 -workers 8 generate
  hexsphere info output/earth-chunk1.gltf`)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdGenerate() int {
	cfg := loadConfig()
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		return 2
	}

	g := cfg.Generator
	// Validate already rejected unknown names.
	colorMode, _ := sphere.ParseColorMode(g.ColorMode)
	shading, _ := sphere.ParseShading(g.Shading)
	up, _ := sphere.ParseUpAxis(g.UpAxis)

	logger.Info("Starting export",
		zap.Int("world_res", g.WorldResolution),
		zap.Int("chunk_res", g.ChunkResolution),
		zap.String("out", cfg.Output.Dir),
		zap.String("prefix", cfg.Output.Prefix),
		zap.Uint64("seed", g.Seed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := world.NewGenerator(hexgrid.NewWalker(hexgrid.H3{}), world.Options{
		ChunkRes:  g.ChunkResolution,
		WorldRes:  g.WorldResolution,
		OutputDir: cfg.Output.Dir,
		Prefix:    cfg.Output.Prefix,
		Seed:      g.Seed,
		ColorMode: colorMode,
		Shading:   shading,
		Up:        up,
		Radius:    g.Radius,
		Workers:   g.Workers,
		FailFast:  g.FailFast,
		Generator: "hexsphere",
		Logger:    logger.Log,
	})

	stats, err := gen.Run(ctx)

	var cfgErr *hexgrid.ConfigError
	if errors.As(err, &cfgErr) {
		logger.Error("Invalid configuration", zap.Error(err))
		return 2
	}

	logger.Info("Processing completed",
		zap.Int("chunks", stats.Chunks),
		zap.Int("exported", stats.Exported),
		zap.Ints("failed", stats.Failed),
		zap.Int("cells", stats.Totals.Cells),
		zap.Int("pentagons", stats.Totals.Pentagons),
		zap.Int("hexagons", stats.Totals.Hexagons),
		zap.Int("vertices", stats.Totals.Vertices),
		zap.Int("triangles", stats.Totals.Triangles),
	)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			logger.Error("Export incomplete", zap.Error(e))
		}
		return 1
	}
	return 0
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hexsphere info <file.gltf>...")
		os.Exit(1)
	}

	cfg := loadConfig()
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	failed := 0
	for _, path := range args {
		m, doc, err := gltf.Load(path)
		if err != nil {
			logger.Sugar.Errorw("Cannot read chunk", "file", path, "error", err)
			failed++
			continue
		}

		fmt.Printf("File:      %s\n", path)
		fmt.Printf("Buffer:    %s (%d bytes)\n", doc.Buffers[0].URI, doc.Buffers[0].ByteLength)
		if len(doc.Nodes) > 0 && doc.Nodes[0].Name != "" {
			fmt.Printf("Cell:      %s\n", doc.Nodes[0].Name)
		}
		fmt.Printf("Vertices:  %d\n", len(m.Vertices))
		fmt.Printf("Triangles: %d\n", len(m.Triangles))
		fmt.Printf("Bounds:    %v .. %v\n", m.Bounds.Min, m.Bounds.Max)
		fmt.Println()
	}
	if failed > 0 {
		logger.Sugar.Errorf("%d of %d files could not be read", failed, len(args))
		logger.Sync()
		os.Exit(1)
	}
}

func cmdConfig(args []string) {
	cfg := loadConfig()

	if len(args) == 0 {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	path := args[0]
	if err := cfg.SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	abs, _ := filepath.Abs(path)
	fmt.Printf("Wrote %s\n", abs)
}
