// mocinfo is a CLI utility for inspecting Live2D Cubism .moc3 assets.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/live2d/internal/config"
	"github.com/Faultbox/live2d/internal/logger"
	"github.com/Faultbox/live2d/pkg/cubism"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "version":
		cmdVersion(cfg)
	case "info":
		cmdInfo(cfg, args)
	case "params":
		cmdParams(cfg, args)
	case "parts":
		cmdParts(cfg, args)
	case "drawables":
		cmdDrawables(cfg, args)
	case "init-config":
		cmdInitConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mocinfo - Live2D Cubism moc3 inspection utility

Usage:
  mocinfo [options] <command> [arguments]

Commands:
  version                 Show engine and newest supported moc versions
  info <file.moc3>        Validate a moc and show canvas and element counts
  params <file.moc3>      List parameters with ranges and defaults
  parts <file.moc3>       List parts with their parent hierarchy
  drawables <file.moc3>   List drawables with flags and mesh sizes
  init-config [path]      Write the current config to path (default: user config dir)

Options:
  -config <path>   Config file to use
  -lib <path>      Cubism Core shared library to load
  -json            Emit reports as JSON
  -verbose         Include per-element detail in listings
  -debug           Enable debug logging

Examples:
  mocinfo version
  mocinfo -lib ./libLive2DCubismCore.so info hiyori.moc3
  mocinfo -json params hiyori.moc3`)
}

// openCore loads the engine and wires its diagnostics into the logger.
func openCore(cfg *config.Config) *cubism.Core {
	c, err := cubism.Open(cfg.Core.LibraryPath)
	if err != nil {
		logger.Error("failed to load Cubism Core",
			zap.String("path", cfg.Core.LibraryPath), zap.Error(err))
		os.Exit(1)
	}
	if cfg.Core.ForwardLogs {
		c.SetLogHandler(logger.CoreSink())
	}
	return c
}

// openModel goes all the way from a .moc3 path to a live model instance.
func openModel(cfg *config.Config, path string) (*cubism.Moc, *cubism.Model) {
	c := openCore(cfg)

	moc, err := c.NewMocFromFile(path)
	if err != nil {
		logger.Error("failed to load moc", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}

	model, err := moc.NewModel()
	if err != nil {
		logger.Error("failed to instantiate model", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
	return moc, model
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("failed to encode report", zap.Error(err))
		os.Exit(1)
	}
}

func cmdVersion(cfg *config.Config) {
	c := openCore(cfg)

	if cfg.Output.Format == "json" {
		emitJSON(map[string]string{
			"core_version":       c.Version().String(),
			"latest_moc_version": c.LatestMocVersion().String(),
		})
		return
	}
	fmt.Printf("Core version:       %s\n", c.Version())
	fmt.Printf("Latest moc version: %s\n", c.LatestMocVersion())
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mocinfo info <file.moc3>")
		os.Exit(1)
	}

	moc, model := openModel(cfg, args[0])
	canvas := model.ReadCanvasInfo()

	if cfg.Output.Format == "json" {
		emitJSON(map[string]any{
			"file":            args[0],
			"moc_version":     moc.Version().String(),
			"size_bytes":      moc.Size(),
			"parameters":      model.ParameterCount(),
			"parts":           model.PartCount(),
			"drawables":       model.DrawableCount(),
			"canvas_width":    canvas.SizeInPixels.X,
			"canvas_height":   canvas.SizeInPixels.Y,
			"origin_x":        canvas.OriginInPixels.X,
			"origin_y":        canvas.OriginInPixels.Y,
			"pixels_per_unit": canvas.PixelsPerUnit,
		})
		return
	}

	fmt.Printf("File:        %s\n", args[0])
	fmt.Printf("Moc version: %s\n", moc.Version())
	fmt.Printf("Size:        %d bytes\n", moc.Size())
	fmt.Printf("Parameters:  %d\n", model.ParameterCount())
	fmt.Printf("Parts:       %d\n", model.PartCount())
	fmt.Printf("Drawables:   %d\n", model.DrawableCount())
	fmt.Printf("Canvas:      %.0fx%.0f px, origin (%.0f, %.0f), %.1f px/unit\n",
		canvas.SizeInPixels.X, canvas.SizeInPixels.Y,
		canvas.OriginInPixels.X, canvas.OriginInPixels.Y,
		canvas.PixelsPerUnit)
}

func cmdParams(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mocinfo params <file.moc3>")
		os.Exit(1)
	}

	_, model := openModel(cfg, args[0])

	params, err := model.StaticParameters().Collect()
	if err != nil {
		logger.Error("failed to read parameters", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Output.Format == "json" {
		emitJSON(params)
		return
	}

	for _, p := range params {
		fmt.Printf("%-4d %-40s [%g, %g] default %g\n",
			p.Index, p.ID, p.MinValue, p.MaxValue, p.DefaultValue)
		if cfg.Output.Verbose && len(p.KeyValues) > 0 {
			fmt.Printf("     keys: %v\n", p.KeyValues)
		}
	}
	fmt.Fprintf(os.Stderr, "\n(%d parameters)\n", len(params))
}

func cmdParts(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mocinfo parts <file.moc3>")
		os.Exit(1)
	}

	_, model := openModel(cfg, args[0])

	parts, err := model.StaticParts().Collect()
	if err != nil {
		logger.Error("failed to read parts", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Output.Format == "json" {
		emitJSON(parts)
		return
	}

	ids := model.PartIDs()
	for _, p := range parts {
		parent := "-"
		if i, ok := p.Parent.Index(); ok {
			parent = ids[i]
		}
		fmt.Printf("%-4d %-40s parent %s\n", p.Index, p.ID, parent)
	}
	fmt.Fprintf(os.Stderr, "\n(%d parts)\n", len(parts))
}

func cmdDrawables(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mocinfo drawables <file.moc3>")
		os.Exit(1)
	}

	_, model := openModel(cfg, args[0])

	draws, err := model.StaticDrawables().Collect()
	if err != nil {
		logger.Error("failed to read drawables", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Output.Format == "json" {
		emitJSON(draws)
		return
	}

	for _, d := range draws {
		fmt.Printf("%-4d %-40s tex %-3d %4d verts %4d tris  %s\n",
			d.Index, d.ID, d.TextureIndex,
			len(d.VertexUVs), len(d.Indices)/3, d.ConstantFlags)
		if cfg.Output.Verbose && len(d.Masks) > 0 {
			fmt.Printf("     masks: %v\n", d.Masks)
		}
	}
	fmt.Fprintf(os.Stderr, "\n(%d drawables)\n", len(draws))
}

func cmdInitConfig(cfg *config.Config, args []string) {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", args[0])
		return
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s/config.yaml\n", config.ConfigDir())
}
