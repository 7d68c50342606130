package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"time"

	"fbcast.app/fbcast/internal/config"
	"fbcast.app/fbcast/internal/decode"
	"fbcast.app/fbcast/internal/display"
	"fbcast.app/fbcast/internal/protocol"
)

func main() {
	cfg := config.ParseViewerFlags()

	format, err := protocol.ParseFormat(cfg.Format)
	if err != nil {
		log.Fatal(err)
	}

	child := exec.Command(cfg.Daemon, cfg.Device, strconv.Itoa(cfg.Width), strconv.Itoa(cfg.Height))
	child.Stderr = os.Stderr
	stdin, err := child.StdinPipe()
	if err != nil {
		log.Fatalf("daemon stdin: %v", err)
	}
	stdout, err := child.StdoutPipe()
	if err != nil {
		log.Fatalf("daemon stdout: %v", err)
	}
	if err := child.Start(); err != nil {
		log.Fatalf("start daemon: %v", err)
	}

	payload, err := readFrame(stdout)
	if err != nil {
		log.Fatalf("read capability frame: %v", err)
	}
	cap, err := protocol.ParseCapability(payload)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("fbcast-view connected")
	log.Printf("  Backend:  %s", cap.BackendName)
	log.Printf("  Display:  %d (%dx%d)", cap.DisplayID, cap.DisplayWidth, cap.DisplayHeight)
	log.Printf("  Capture:  %dx%d, %v", cap.CaptureWidth, cap.CaptureHeight, format)

	dec, err := decode.ForFormat(format, int(cap.CaptureWidth), int(cap.CaptureHeight))
	if err != nil {
		log.Fatal(err)
	}

	if _, err := stdin.Write(protocol.Command(protocol.CmdSetThreshold, byte(cfg.Threshold))); err != nil {
		log.Fatalf("configure daemon: %v", err)
	}
	var dither byte
	if cfg.Dither {
		dither = 1
	}
	if _, err := stdin.Write(protocol.Command(protocol.CmdSetDithering, dither)); err != nil {
		log.Fatalf("configure daemon: %v", err)
	}

	disp := display.NewEbitenDisplay(fmt.Sprintf("fbcast %s (%s)", cap.BackendName, format))

	// Request snapshots at the configured rate. The daemon serves at most
	// one at a time; a request landing during an encode just overwrites the
	// pending one.
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(max(cfg.FPS, 1)))
		defer ticker.Stop()
		snapshot := protocol.Command(protocol.SnapshotCode(format))
		for range ticker.C {
			if _, err := stdin.Write(snapshot); err != nil {
				log.Printf("request snapshot: %v", err)
				return
			}
		}
	}()

	go func() {
		for {
			payload, err := readFrame(stdout)
			if err != nil {
				log.Printf("read frame: %v", err)
				os.Exit(1)
			}
			img, err := dec.Decode(payload)
			if err != nil {
				log.Printf("decode frame: %v", err)
				continue
			}
			disp.SetFrame(img)
		}
	}()

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	if err := disp.Run(); err != nil {
		log.Fatalf("display: %v", err)
	}

	// Closing the command channel is the daemon's normal shutdown signal.
	stdin.Close()
	child.Wait()
}

func readFrame(r io.Reader) ([]byte, error) {
	var prefix [protocol.PrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	payload := make([]byte, binary.BigEndian.Uint32(prefix[:]))
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
