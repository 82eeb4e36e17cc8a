package main

import (
	"flag"
	"fmt"
	"os"

	"scoutviz/cmd/mockgen/engine"
)

func main() {
	outDir := flag.String("out", "./.cache/fixtures", "Output directory for payload files")
	count := flag.Int("count", 40, "Points per scatter and heatmap payload")
	seed := flag.Uint64("seed", 7, "Random seed")
	flag.Parse()

	fmt.Printf("Generating fixtures (Count: %d, Seed: %d) to %s...\n", *count, *seed, *outDir)

	fixtures, err := engine.Generate(engine.GeneratorConfig{Count: *count, Seed: *seed})
	if err != nil {
		fmt.Printf("Failed to generate fixtures: %v\n", err)
		os.Exit(1)
	}
	if err := engine.Save(*outDir, fixtures); err != nil {
		fmt.Printf("Failed to save fixtures: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
