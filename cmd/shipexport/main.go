// shipexport converts ship scene snapshots into engine connection
// descriptors and packed animation files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Faultbox/x3ships/internal/config"
	"github.com/Faultbox/x3ships/internal/exporter"
	"github.com/Faultbox/x3ships/internal/logger"
	"github.com/Faultbox/x3ships/pkg/formats"
	"github.com/Faultbox/x3ships/pkg/scene"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "export":
		cmdExport(args)
	case "inspect", "info":
		cmdInspect(args)
	case "dump":
		cmdDump(args)
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
	fmt.Println(`shipexport - ship connection and animation exporter

Usage:
  shipexport [flags] <command> [options]

Commands:
  export <scene.yaml>     Write connections.xml, <project>.xml and <PROJECT>_DATA.ani
  inspect [-v] <file.ani> Show the animations of a packed animation file
  dump <scene.yaml>       Print the assembled animation records
  config [path]           Write the current settings as a config file

Flags:
  -config <path>          Config file (default: x3ships.yaml next to the scene,
                          in the working directory, or in the user config dir)
  -out <dir>              Output directory (default: project directory)
  -fps <n>                Override the scene frame rate
  -ext <name>             Extension name used in asset paths
  -log <path>             Log file, relative to the project directory
  -debug                  Enable debug logging

Examples:
  shipexport export my_ship.yaml
  shipexport -out ./build export my_ship.yaml
  shipexport inspect -v MY_SHIP_DATA.ani`)
}

// loadConfig loads settings, preferring an x3ships.yaml in dir.
func loadConfig(dir string) *config.Config {
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func loadScene(path string) *scene.Scene {
	scn, err := scene.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return scn
}

func cmdExport(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shipexport export <scene.yaml>")
		os.Exit(1)
	}

	cfg := loadConfig(filepath.Dir(args[0]))
	scn := loadScene(args[0])

	// The log file lives next to the project unless an absolute path is given.
	logFile := cfg.Logging.LogFile
	if logFile != "" && !filepath.IsAbs(logFile) {
		if dir := scn.BaseDir(); dir != "" {
			logFile = filepath.Join(dir, logFile)
		} else {
			logFile = ""
		}
	}
	if err := logger.Init(cfg.Logging.Level, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("exporting ship",
		zap.String("scene", args[0]),
		zap.String("project", scn.ProjectName()),
		zap.String("class", scn.Class))
	logger.Debug("config loaded",
		zap.String("extension", cfg.Export.ExtensionName),
		zap.String("output_dir", cfg.Export.OutputDir),
		zap.Float64("fps_override", cfg.Export.FPSOverride),
		zap.Bool("validate_parents", cfg.Export.ValidateParents))

	res, err := exporter.New(cfg, logger.Named("export")).Run(scn)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		logger.Close()
		os.Exit(1)
	}

	if res.Connections == 0 {
		logger.Warn("no visible objects in the connections or parts collections",
			zap.String("connections", cfg.Export.ConnectionsCollection),
			zap.String("parts", cfg.Export.PartsCollection))
	}

	logger.Info("export finished",
		zap.Int("connections", res.Connections),
		zap.Int("animations", res.Animations),
		zap.Int("keyframes", res.Keyframes),
		zap.Int("hidden", res.Skipped))
	logger.Sugar.Infof("wrote %d files to %s", len(res.Files), filepath.Dir(res.Files[0]))
	for _, f := range res.Files {
		fmt.Println(f)
	}
}

func cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Print every keyframe")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shipexport inspect [-v] <file.ani>")
		os.Exit(1)
	}

	ani, err := formats.ParseANIFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File:       %s\n", fs.Arg(0))
	fmt.Printf("Version:    %d\n", ani.Header.Version)
	fmt.Printf("Animations: %d\n", ani.Header.Count)
	fmt.Printf("Keyframes:  %d\n", ani.GetTotalKeyframeCount())
	fmt.Printf("Size:       %d bytes\n", ani.Size())
	fmt.Println()

	for i, a := range ani.Animations {
		fmt.Printf("  [%d] %-24s %-32s %7.3fs  loc %-4d rot %d\n",
			i, a.Name, a.Subname, a.Duration, len(a.LocationKeys), len(a.RotationKeys))
		if !*verbose {
			continue
		}
		printKeys("loc", a.LocationKeys)
		printKeys("rot", a.RotationKeys)
	}
}

func printKeys(channel string, keys []formats.ANIKeyframe) {
	for _, k := range keys {
		fmt.Printf("        %s t=%7.3f  (%g, %g, %g)  %v/%v/%v\n",
			channel, k.Time, k.Value[0], k.Value[1], k.Value[2],
			k.Interpolation[0], k.Interpolation[1], k.Interpolation[2])
	}
}

func cmdDump(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: shipexport dump <scene.yaml>")
		os.Exit(1)
	}

	cfg := loadConfig(filepath.Dir(args[0]))
	scn := loadScene(args[0])

	exp, err := exporter.New(cfg, nil).Collect(scn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dumper := spew.NewDefaultConfig()
	dumper.DisableCapacities = true
	dumper.DisablePointerAddresses = true
	fmt.Printf("Project: %s  fps: %g  connections: %d\n", exp.Project, exp.FPS, exp.Objects)
	fmt.Println(dumper.Sdump(exp.Records))
}

func cmdConfig(args []string) {
	cfg := loadConfig("")

	var (
		path string
		err  error
	)
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		path, err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Config written to %s\n", path)
}
