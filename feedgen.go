package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// runFeed implements "watchline feed": a synthetic telemetry generator for
// bench setups without a controller attached. Pipe it into a pty (socat)
// and point WATCHLINE_SERIAL_DEVICE at the other end.
func runFeed(args []string) {
	fs := flag.NewFlagSet("feed", flag.ExitOnError)
	format := fs.String("format", "json", "frame format: json or event")
	interval := fs.Duration("interval", time.Second, "delay between frames")
	spike := fs.Float64("spike", 0.05, "probability of an alerting spike per frame")
	fs.Parse(args)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			return
		case <-ticker.C:
			if *format == "event" {
				emitEvent(*spike)
			} else {
				emitJSON(*spike)
			}
		}
	}
}

func emitJSON(spike float64) {
	gas := 80 + rand.Float64()*60
	sound := 200 + rand.Float64()*100
	water := 50 + rand.Float64()*40
	temp := 20 + rand.Float64()*6
	hum := 45 + rand.Float64()*15
	motion := 0
	vibration := 0

	if rand.Float64() < spike {
		switch rand.Intn(4) {
		case 0:
			gas = 320 + rand.Float64()*200
		case 1:
			sound = 520 + rand.Float64()*300
		case 2:
			motion = 1
		case 3:
			vibration = 1
		}
	}

	// Every so often the humidity sensor drops out, like the real DHT.
	humField := fmt.Sprintf("%.0f", hum)
	if rand.Intn(20) == 0 {
		humField = "nan"
	}

	fmt.Printf("{\"gas\": %.0f, \"sound\": %.0f, \"water\": %.0f, \"vibration\": %d, \"temp\": %.1f, \"humidity\": %s, \"motion\": %d}\n",
		gas, sound, water, vibration, temp, humField, motion)
}

func emitEvent(spike float64) {
	// The event wire only speaks when something is already triggering.
	if rand.Float64() >= spike {
		return
	}
	gas := 320 + rand.Float64()*200
	fmt.Printf("EVT;motion=1;gas=%.0f\n", gas)
}
