package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/techweave/internal/datasource"
	"github.com/vanderheijden86/techweave/pkg/config"
	"github.com/vanderheijden86/techweave/pkg/debug"
	"github.com/vanderheijden86/techweave/pkg/export"
	"github.com/vanderheijden86/techweave/pkg/layout"
	"github.com/vanderheijden86/techweave/pkg/model"
	"github.com/vanderheijden86/techweave/pkg/ui"
	"github.com/vanderheijden86/techweave/pkg/version"
	"github.com/vanderheijden86/techweave/pkg/view"
	"github.com/vanderheijden86/techweave/pkg/watcher"
)

// Snapshot canvas size for the non-interactive export path.
const (
	exportWidth  = 1280
	exportHeight = 800
)

func main() {
	dataFlag := flag.String("data", "", "Path to a techniques dataset (csv, json or sqlite)")
	dirFlag := flag.String("dir", "", "Directory to search for datasets (default: TW_DATA_DIR, then cwd)")
	exportFlag := flag.Bool("export", false, "Run the snapshot wizard instead of the TUI")
	noWatchFlag := flag.Bool("no-watch", false, "Disable live reload when the dataset changes on disk")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	// CPU profiling support
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: tw [options]")
		fmt.Println("\nAn interactive map of facilitation techniques.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("tw %s\n", version.Version)
		os.Exit(0)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		debug.Log("config: %v", cfgErr)
		cfg = config.DefaultConfig()
	}

	dataPath := *dataFlag
	if dataPath == "" {
		dataPath = cfg.DataPath
	}

	source, err := datasource.Resolve(dataPath, *dirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating dataset: %v\n", err)
		fmt.Fprintln(os.Stderr, "Place a techniques.csv, techniques.json or techniques.db next to tw, or pass --data.")
		os.Exit(1)
	}

	graph, err := datasource.LoadGraph(source.Path, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset %s: %v\n", source.Path, err)
		os.Exit(1)
	}
	if len(graph.Nodes) == 0 {
		fmt.Printf("Dataset %s holds no techniques.\n", source.Path)
		os.Exit(0)
	}

	if *exportFlag {
		path, err := export.RunWizard(settledFrame(graph), exportWidth, exportHeight, export.WizardConfig{
			Format: cfg.Export.Format,
			Dir:    cfg.Export.Dir,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s\n", path)
		os.Exit(0)
	}

	var w *watcher.Watcher
	if cfg.WatchEnabled() && !*noWatchFlag {
		w, err = watcher.New(source.Path, watcher.WithOnError(func(err error) {
			debug.Log("watcher: %v", err)
		}))
		if err != nil {
			debug.Log("watcher setup: %v", err)
		} else if err := w.Start(); err != nil {
			debug.Log("watcher start: %v", err)
			w = nil
		} else {
			defer w.Stop()
		}
	}

	m := ui.New(ui.Options{
		Config:      cfg,
		Graph:       graph,
		DatasetPath: source.Path,
		DatasetDir:  *dirFlag,
		Watcher:     w,
	})

	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running techweave: %v\n", err)
		os.Exit(1)
	}
}

// settledFrame runs the simulation to rest off-screen so the snapshot shows a
// laid-out map rather than the initial spiral.
func settledFrame(g *model.Graph) view.Frame {
	e := view.NewEngine(g, layout.Viewport{Width: exportWidth, Height: exportHeight})
	for i := 0; i < 300 && !e.Sim().Settled(); i++ {
		e.Sim().Step()
	}
	return e.Frame()
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set TW_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("TW_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
