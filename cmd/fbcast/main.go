package main

import (
	"log"
	"os"

	"fbcast.app/fbcast/internal/capture"
	"fbcast.app/fbcast/internal/config"
	"fbcast.app/fbcast/internal/daemon"
)

func main() {
	// stdout is the data channel; diagnostics go to stderr.
	cfg, err := config.ParseDaemonArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	backend, err := capture.Open(cfg.Device, cfg.Width, cfg.Height)
	if err != nil {
		log.Fatalf("capture init: %v", err)
	}

	sess, err := daemon.New(backend, os.Stdout)
	if err != nil {
		backend.Close()
		log.Fatalf("session init: %v", err)
	}

	info := backend.Info()
	log.Printf("fbcast starting")
	log.Printf("  Backend:  %s", info.Name)
	log.Printf("  Display:  %d (%dx%d)", info.DisplayID, info.DisplayWidth, info.DisplayHeight)
	log.Printf("  Capture:  %dx%d, stride %d", info.Width, info.Height, info.Stride)

	err = sess.Run(os.Stdin)
	if cerr := sess.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("session: %v", err)
	}
}
