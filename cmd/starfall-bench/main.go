package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/plus3/starfall/config"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The wall-clock time the benchmark should run for.")
	frames := flag.Int64("frames", 0, "Stop after this many frames (0 runs until -duration).")
	seed := flag.Uint64("seed", 1, "Seed for the spawn randomness.")
	configPath := flag.String("config", "", "Optional TOML file overriding the default tuning.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Running soak benchmark for %s (seed %d)...", *duration, *seed)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	report := Run(ctx, cfg, Options{
		Seed:           *seed,
		MaxFrames:      *frames,
		GCPauseMetrics: *gcPauseMetrics,
	})
	log.Println("Benchmark finished.")

	fmt.Println("\n\n--- Starfall Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
