package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// csvColumns maps normalized header names to Row field setters. Headers are
// matched case-insensitively with spaces/underscores stripped, so
// "Order Tag", "order_tag" and "ordertag" all land on the same field.
var csvColumns = map[string]func(*model.Row, string){
	"name":             func(r *model.Row, v string) { r.Name = v },
	"type":             func(r *model.Row, v string) { r.Type = v },
	"ordertag":         func(r *model.Row, v string) { r.OrderTag = v },
	"matrixtag":        func(r *model.Row, v string) { r.MatrixTag = v },
	"scale":            func(r *model.Row, v string) { r.Scale = v },
	"color":            func(r *model.Row, v string) { r.Color = v },
	"prettycolor":      func(r *model.Row, v string) { r.PrettyColor = v },
	"description":      func(r *model.Row, v string) { r.Description = v },
	"automation":       func(r *model.Row, v string) { r.Automation = v },
	"automationconfig": func(r *model.Row, v string) { r.AutomationConfig = v },
	"videourl":         func(r *model.Row, v string) { r.VideoURL = v },
	"related":          func(r *model.Row, v string) { r.Related = v },
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// readCSVRows parses a CSV dataset. The first record is the header; unknown
// columns are ignored so datasets can carry extra annotation columns.
func readCSVRows(path string) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated; missing cells stay empty
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	setters := make([]func(*model.Row, string), len(header))
	known := 0
	for i, h := range header {
		if set, ok := csvColumns[normalizeHeader(h)]; ok {
			setters[i] = set
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("csv header has no recognized columns: %v", header)
	}

	var rows []model.Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}
		var row model.Row
		for i, v := range record {
			if i < len(setters) && setters[i] != nil {
				setters[i](&row, v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
