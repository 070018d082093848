//go:build ignore

// generate_testdata.go creates sample technique datasets for manual testing
// and benchmarking.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//   testdata/generated/techniques-small.csv   (30 techniques)
//   testdata/generated/techniques-medium.csv  (150 techniques)
//   testdata/generated/techniques-large.csv   (600 techniques)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/techweave/pkg/testutil"
)

var datasets = []struct {
	name string
	size int
}{
	{"small", 30},
	{"medium", 150},
	{"large", 600},
}

func main() {
	outputDir := "testdata/generated"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%d techniques)...\n", ds.name, ds.size)

		cfg := testutil.DefaultConfig()
		cfg.Seed = int64(ds.size) // reproducible per-size
		techniques := testutil.New(cfg).Techniques(ds.size)

		path := filepath.Join(outputDir, fmt.Sprintf("techniques-%s.csv", ds.name))
		if err := testutil.WriteCSV(path, techniques); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("  wrote %s\n", path)
	}
}
