package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	apppkg "github.com/mv-lab/cineview/internal/app"
	"github.com/mv-lab/cineview/internal/config"
	"github.com/mv-lab/cineview/internal/study"
	"github.com/mv-lab/cineview/internal/volume"
)

func printHelp() {
	fmt.Print(`cineview - Terminal CT series viewer

USAGE:
    cineview [OPTIONS] [SERIES_DIR]

SERIES_DIR is a directory of PNG/JPEG slice images ordered by filename,
optionally with a study.yaml sidecar. Without it a synthetic phantom
series is shown.

OPTIONS:
    -h, --help       Show this help message and exit
    -config PATH     Config file (default ~/.config/cineview/config.yaml)
`)
}

func main() {
	// UTF-8 fallback so the half-block image panel renders everywhere.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	configPath := flag.String("config", config.DefaultPath(), "config file path")
	help := flag.Bool("h", false, "show help")
	helpLong := flag.Bool("help", false, "show help")
	flag.Usage = printHelp
	flag.Parse()

	if *help || *helpLong {
		printHelp()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var vol *volume.Volume
	var st *study.Study
	if dir := flag.Arg(0); dir != "" {
		vol, err = volume.LoadDir(dir, cfg.Series.HUMin, cfg.Series.HUMax)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading series from %s: %v\n", dir, err)
			os.Exit(1)
		}
		st, err = study.Load(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading study metadata: %v\n", err)
			os.Exit(1)
		}
	} else {
		vol = volume.Phantom(256, 256, 60)
		st = study.Default()
	}

	app, err := apppkg.NewApplication(vol, st, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
}
