// Package datasource discovers, validates and loads the techniques dataset.
// A dataset is a single table of technique rows stored as CSV, JSON or a
// SQLite database; discovery selects the freshest valid source when several
// formats coexist in one directory.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SourceType identifies the dataset format.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database (techniques.db)
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeCSV is a CSV table (techniques.csv)
	SourceTypeCSV SourceType = "csv"
	// SourceTypeJSON is a JSON array (techniques.json)
	SourceTypeJSON SourceType = "json"
)

// Priority values per source type (higher = more authoritative when mtimes
// are equal). SQLite reflects edits made through tooling; CSV is the common
// hand-edited form.
const (
	PrioritySQLite = 100
	PriorityCSV    = 80
	PriorityJSON   = 60
)

// DataSource represents one candidate dataset file.
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path"`
	Priority int        `json:"priority"`
	ModTime  time.Time  `json:"mod_time"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// RowCount is the number of technique rows (set during validation)
	RowCount int   `json:"row_count"`
	Size     int64 `json:"size"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, rows=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.RowCount, status)
}

// DiscoveryOptions configures source discovery.
type DiscoveryOptions struct {
	// Dir is the directory to search. Defaults to TW_DATA_DIR, then cwd.
	Dir string
	// ValidateAfterDiscovery runs validation on each discovered source
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives discovery log messages (nil = silent)
	Logger func(msg string)
}

// typeForPath maps a file extension to a source type, ok=false for files that
// are not datasets.
func typeForPath(path string) (SourceType, int, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, PrioritySQLite, true
	case ".csv":
		return SourceTypeCSV, PriorityCSV, true
	case ".json":
		return SourceTypeJSON, PriorityJSON, true
	default:
		return "", 0, false
	}
}

// SourceForPath builds a DataSource for an explicitly named dataset file.
func SourceForPath(path string) (DataSource, error) {
	typ, prio, ok := typeForPath(path)
	if !ok {
		return DataSource{}, fmt.Errorf("unsupported dataset format: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("stat dataset: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return DataSource{}, err
	}
	return DataSource{
		Type:     typ,
		Path:     abs,
		Priority: prio,
		ModTime:  info.ModTime(),
		Size:     info.Size(),
	}, nil
}

// DiscoverSources finds every candidate dataset in the directory.
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	logf := opts.Logger
	if logf == nil {
		logf = func(string) {}
	}

	dir := opts.Dir
	if dir == "" {
		if envDir := os.Getenv("TW_DATA_DIR"); envDir != "" {
			dir = envDir
		} else {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
		}
	}
	logf(fmt.Sprintf("discovering datasets in %s", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	var sources []DataSource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, "techniques") {
			continue
		}
		// Skip backups and merge artifacts.
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") {
			continue
		}
		typ, prio, ok := typeForPath(name)
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sources = append(sources, DataSource{
			Type:     typ,
			Path:     filepath.Join(dir, name),
			Priority: prio,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
		logf(fmt.Sprintf("found %s dataset: %s (mod=%s)", typ, name, info.ModTime().Format(time.RFC3339)))
	}

	if opts.ValidateAfterDiscovery {
		// Validation parses every candidate; do it in parallel, it dominates
		// startup when several formats coexist.
		var g errgroup.Group
		g.SetLimit(4)
		for i := range sources {
			i := i
			g.Go(func() error {
				ValidateSource(&sources[i])
				return nil
			})
		}
		_ = g.Wait()
		for _, s := range sources {
			if !s.Valid {
				logf(fmt.Sprintf("validation failed for %s: %s", s.Path, s.ValidationError))
			}
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	// Freshest first; priority breaks mtime ties.
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})

	logf(fmt.Sprintf("discovered %d datasets", len(sources)))
	return sources, nil
}

// SelectBestSource returns the freshest valid source.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	for _, s := range sources {
		if s.Valid {
			return s, nil
		}
	}
	// Discovery without validation leaves Valid unset; take the first.
	if len(sources) > 0 && !sources[0].Valid && sources[0].ValidationError == "" {
		return sources[0], nil
	}
	return DataSource{}, fmt.Errorf("no valid dataset among %d candidates", len(sources))
}

// ValidateSource checks that a source parses and records its row count.
func ValidateSource(s *DataSource) error {
	rows, err := ReadRows(*s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.Valid = true
	s.ValidationError = ""
	s.RowCount = len(rows)
	return nil
}
