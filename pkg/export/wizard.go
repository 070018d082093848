package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/techweave/pkg/view"
)

// WizardConfig holds the answers collected by the snapshot wizard.
type WizardConfig struct {
	Format string
	Dir    string
	Title  string
}

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// RunWizard collects snapshot options interactively and renders the frame.
// Defaults come from the caller (config file values); the chosen output path
// is returned on success.
func RunWizard(frame view.Frame, width, height int, defaults WizardConfig) (string, error) {
	cfg := defaults
	if cfg.Format == "" {
		cfg.Format = "svg"
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Snapshot format").
				Options(
					huh.NewOption("SVG (vector, glyphs included)", "svg"),
					huh.NewOption("PNG (raster)", "png"),
				).
				Value(&cfg.Format),
			huh.NewInput().
				Title("Output directory").
				Value(&cfg.Dir),
			huh.NewInput().
				Title("Title (optional)").
				Value(&cfg.Title),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("techniques-%s.%s", time.Now().Format("20060102-150405"), strings.ToLower(cfg.Format))
	path := filepath.Join(cfg.Dir, name)

	err := SaveSnapshot(SnapshotOptions{
		Path:   path,
		Format: cfg.Format,
		Title:  cfg.Title,
		Frame:  frame,
		Width:  width,
		Height: height,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
