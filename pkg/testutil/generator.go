// Package testutil generates deterministic technique datasets for tests and
// benchmarks. All generators are seeded, so fixture content is reproducible.
package testutil

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// GeneratorConfig controls technique generation.
type GeneratorConfig struct {
	Seed        int64    // Random seed for determinism (0 = 42)
	NamePrefix  string   // Prefix for technique names (default: "Technique")
	TypeMix     []string // Type distribution (nil = a small default set)
	TagMix      []string // Order-tag distribution, "" entries leave tags empty
	LinkDensity float64  // Probability per node of one relation to an earlier node
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42,
		NamePrefix:  "Technique",
		TypeMix:     []string{"energiser", "retro", "game"},
		TagMix:      []string{"week 1", "week 2", "done", ""},
		LinkDensity: 0.3,
	}
}

// Generator creates technique fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.NamePrefix == "" {
		cfg.NamePrefix = "Technique"
	}
	if len(cfg.TypeMix) == 0 {
		cfg.TypeMix = []string{"energiser", "retro", "game"}
	}
	if len(cfg.TagMix) == 0 {
		cfg.TagMix = []string{""}
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Techniques produces n techniques with mixed types, tags and a sprinkle of
// relations back to earlier nodes, so the derived graph has real links.
func (g *Generator) Techniques(n int) []model.Technique {
	out := make([]model.Technique, 0, n)
	for i := 0; i < n; i++ {
		t := model.Technique{
			Name:        fmt.Sprintf("%s %03d", g.cfg.NamePrefix, i+1),
			Type:        g.cfg.TypeMix[g.rng.Intn(len(g.cfg.TypeMix))],
			OrderTag:    g.cfg.TagMix[g.rng.Intn(len(g.cfg.TagMix))],
			Scale:       1 + float64(g.rng.Intn(3)),
			Color:       g.color(i),
			BaseColor:   g.color(i),
			PrettyColor: g.color(i + 7),
		}
		if i > 0 && g.rng.Float64() < g.cfg.LinkDensity {
			other := g.rng.Intn(i)
			t.Related = []string{out[other].Name}
		}
		out = append(out, t)
	}
	return out
}

func (g *Generator) color(i int) string {
	palette := []string{"#e64980", "#5c7cfa", "#69b3a2", "#fab005", "#845ef7"}
	return palette[i%len(palette)]
}

// WriteCSV writes techniques as a dataset file the ingestion layer can load.
func WriteCSV(path string, techniques []model.Technique) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"name", "type", "order_tag", "matrix_tag", "scale", "color", "pretty_color", "description", "automation", "automation_config", "video_url", "related"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, t := range techniques {
		rec := []string{
			t.Name, t.Type, t.OrderTag, t.MatrixTag,
			fmt.Sprintf("%g", t.Scale),
			t.BaseColor, t.PrettyColor,
			t.Description, t.Automation, t.AutomationConfig, t.VideoURL,
			strings.Join(t.Related, ","),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
