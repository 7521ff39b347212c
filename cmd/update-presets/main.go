package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"consumption-solver/internal/preset"
)

// Seeds or refreshes the presets file: built-in calibrations overlaid
// with any presets already in the file, so local edits survive.
func main() {
	var (
		outputPath = flag.String("output", "", "Output file path (default: ./data/presets.json)")
		seedFile   = flag.String("seed", "", "Path to existing presets file to use as seed")
	)
	flag.Parse()

	if *outputPath == "" {
		*outputPath = preset.DefaultPath()
	}
	seedPath := *seedFile
	if seedPath == "" {
		seedPath = *outputPath
	}

	list := preset.Builtin()
	if existing, err := preset.LoadPresets(seedPath); err == nil {
		fmt.Printf("Loaded %d existing presets from %s\n", len(existing.Presets), seedPath)
		list = preset.Merge(list, existing)
	}

	list.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := preset.SavePresets(list, *outputPath); err != nil {
		log.Fatalf("Failed to save presets: %v", err)
	}

	fmt.Printf("Saved %d presets to %s\n", len(list.Presets), *outputPath)
}
