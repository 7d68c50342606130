package config

import (
	"flag"
	"fmt"
	"strconv"
)

// DaemonConfig holds the daemon's fixed positional arguments.
type DaemonConfig struct {
	Device string
	Width  int
	Height int
}

// ParseDaemonArgs parses the daemon's three positional arguments: device
// identifier, requested width, requested height.
func ParseDaemonArgs(args []string) (*DaemonConfig, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("usage: fbcast <device> <width> <height>")
	}
	w, err := strconv.Atoi(args[1])
	if err != nil || w <= 0 {
		return nil, fmt.Errorf("invalid width %q", args[1])
	}
	h, err := strconv.Atoi(args[2])
	if err != nil || h <= 0 {
		return nil, fmt.Errorf("invalid height %q", args[2])
	}
	return &DaemonConfig{Device: args[0], Width: w, Height: h}, nil
}

// ViewerConfig holds configuration for the viewer binary.
type ViewerConfig struct {
	Daemon    string
	Device    string
	Width     int
	Height    int
	Format    string
	FPS       int
	Threshold int
	Dither    bool
}

// ParseViewerFlags parses flags for the viewer binary.
func ParseViewerFlags() *ViewerConfig {
	cfg := &ViewerConfig{}
	flag.StringVar(&cfg.Daemon, "daemon", "fbcast", "Path to the fbcast daemon binary")
	flag.StringVar(&cfg.Device, "device", "test", "Capture device (\"test\" or display index)")
	flag.IntVar(&cfg.Width, "width", 640, "Requested capture width")
	flag.IntVar(&cfg.Height, "height", 480, "Requested capture height")
	flag.StringVar(&cfg.Format, "format", "rgb565", "Snapshot format (rgb24|rgb565|mono|mono-rotated)")
	flag.IntVar(&cfg.FPS, "fps", 10, "Snapshot request rate")
	flag.IntVar(&cfg.Threshold, "threshold", 25, "Monochrome threshold (0-255)")
	flag.BoolVar(&cfg.Dither, "dither", false, "Enable dithering for monochrome formats")
	flag.Parse()
	return cfg
}
