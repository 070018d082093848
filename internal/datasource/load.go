package datasource

import (
	"fmt"

	"github.com/vanderheijden86/techweave/pkg/debug"
	"github.com/vanderheijden86/techweave/pkg/model"
)

// ReadRows reads raw technique rows from a source, dispatching on its type.
func ReadRows(source DataSource) ([]model.Row, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite dataset %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.ReadRows()

	case SourceTypeCSV:
		return readCSVRows(source.Path)

	case SourceTypeJSON:
		return readJSONRows(source.Path)

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}

// LoadGraph loads techniques from an explicit dataset path, or discovers the
// freshest valid dataset in dir when path is empty, and builds the graph.
// Rows without a name are dropped; the remainder is normalized with palette
// and scale defaults applied.
func LoadGraph(path, dir string) (*model.Graph, error) {
	source, err := Resolve(path, dir)
	if err != nil {
		return nil, err
	}

	rows, err := ReadRows(source)
	if err != nil {
		return nil, err
	}

	techniques := make([]model.Technique, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		t, ok := model.NormalizeRow(row)
		if !ok {
			dropped++
			continue
		}
		techniques = append(techniques, t)
	}
	if dropped > 0 {
		debug.Log("dropped %d rows without a name from %s", dropped, source.Path)
	}

	g := model.BuildGraph(techniques)
	debug.Log("loaded %d techniques, %d links from %s", len(g.Nodes), len(g.Links), source.Path)
	return g, nil
}

// Resolve picks the dataset to load: the explicit path when given, otherwise
// the freshest valid source discovered in dir.
func Resolve(path, dir string) (DataSource, error) {
	if path != "" {
		return SourceForPath(path)
	}

	sources, err := DiscoverSources(DiscoveryOptions{
		Dir:                    dir,
		ValidateAfterDiscovery: true,
		Logger:                 func(msg string) { debug.Log("%s", msg) },
	})
	if err != nil {
		return DataSource{}, err
	}
	if len(sources) == 0 {
		return DataSource{}, fmt.Errorf("no techniques dataset found")
	}
	return SelectBestSource(sources)
}
