package datasource

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// jsonTechnique is the on-disk JSON shape. Scale and related accept both the
// string forms used by CSV exports and native JSON numbers/arrays.
type jsonTechnique struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	OrderTag         string          `json:"orderTag"`
	MatrixTag        string          `json:"matrixTag"`
	Scale            json.RawMessage `json:"scale"`
	Color            string          `json:"color"`
	PrettyColor      string          `json:"prettyColor"`
	Description      string          `json:"description"`
	Automation       string          `json:"automation"`
	AutomationConfig string          `json:"automationConfig"`
	VideoURL         string          `json:"videoUrl"`
	Related          json.RawMessage `json:"related"`
}

// readJSONRows parses a JSON dataset: a top-level array of technique objects.
func readJSONRows(path string) ([]model.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening json dataset: %w", err)
	}

	var records []jsonTechnique
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing json dataset: %w", err)
	}

	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.Row{
			Name:             rec.Name,
			Type:             rec.Type,
			OrderTag:         rec.OrderTag,
			MatrixTag:        rec.MatrixTag,
			Scale:            rawScalar(rec.Scale),
			Color:            rec.Color,
			PrettyColor:      rec.PrettyColor,
			Description:      rec.Description,
			Automation:       rec.Automation,
			AutomationConfig: rec.AutomationConfig,
			VideoURL:         rec.VideoURL,
			Related:          rawRelated(rec.Related),
		})
	}
	return rows, nil
}

// rawScalar renders a raw JSON number or string as its plain text form.
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return ""
}

// rawRelated accepts either a JSON array of names or a comma-separated
// string, returning the comma-separated form the row contract expects.
func rawRelated(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ",")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
