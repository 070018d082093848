package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/techweave/pkg/model"
)

// SQLiteReader provides read access to a techniques SQLite database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite dataset for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadRows reads all technique rows from the techniques table.
func (r *SQLiteReader) ReadRows() ([]model.Row, error) {
	query := `
		SELECT
			name, type, order_tag, matrix_tag, scale, color, pretty_color,
			description, automation, automation_config, video_url, related
		FROM techniques
		ORDER BY rowid
	`

	rows, err := r.db.Query(query)
	if err != nil {
		// Older exports carry only the core columns.
		return r.readRowsSimple()
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var row model.Row
		var typ, orderTag, matrixTag, scale, color, prettyColor sql.NullString
		var description, automation, automationConfig, videoURL, related sql.NullString

		err := rows.Scan(
			&row.Name, &typ, &orderTag, &matrixTag, &scale, &color, &prettyColor,
			&description, &automation, &automationConfig, &videoURL, &related,
		)
		if err != nil {
			continue
		}

		row.Type = typ.String
		row.OrderTag = orderTag.String
		row.MatrixTag = matrixTag.String
		row.Scale = scale.String
		row.Color = color.String
		row.PrettyColor = prettyColor.String
		row.Description = description.String
		row.Automation = automation.String
		row.AutomationConfig = automationConfig.String
		row.VideoURL = videoURL.String
		row.Related = related.String

		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating techniques: %w", err)
	}
	return out, nil
}

// readRowsSimple is a fallback for databases with fewer columns.
func (r *SQLiteReader) readRowsSimple() ([]model.Row, error) {
	query := `SELECT name, type, color, description, related FROM techniques ORDER BY rowid`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var row model.Row
		var typ, color, description, related sql.NullString
		if err := rows.Scan(&row.Name, &typ, &color, &description, &related); err != nil {
			continue
		}
		row.Type = typ.String
		row.Color = color.String
		row.Description = description.String
		row.Related = related.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating techniques: %w", err)
	}
	return out, nil
}

// CountRows returns the number of technique rows.
func (r *SQLiteReader) CountRows() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM techniques").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
