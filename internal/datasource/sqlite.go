package datasource

import (
	"database/sql"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// SQLiteReader provides read access to a catalog SQLite database. The
// database holds a table items(value, label, categories) where categories is
// a JSON array of strings, most specific first.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA temp_store = MEMORY"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{
		db:   db,
		path: source.Path,
	}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadCatalog reads every item in table order. Column titles come from an
// optional columns(position, title) table.
func (r *SQLiteReader) LoadCatalog() (*Catalog, error) {
	rows, err := r.db.Query(`SELECT value, label, categories FROM items ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cat := &Catalog{}
	for rows.Next() {
		var it Item
		var label, categories sql.NullString
		if err := rows.Scan(&it.Value, &label, &categories); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if label.Valid {
			it.Label = label.String
		}
		if categories.Valid {
			it.Categories = parseJSONStringArray(categories.String)
		}
		cat.Items = append(cat.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	cat.Columns = r.loadColumns()
	return cat, nil
}

// loadColumns is best effort: catalogs without a columns table have none.
func (r *SQLiteReader) loadColumns() []string {
	rows, err := r.db.Query(`SELECT title FROM columns ORDER BY position`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil
		}
		titles = append(titles, title)
	}
	return titles
}

// CountItems returns the number of items
func (r *SQLiteReader) CountItems() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// parseJSONStringArray parses a JSON array of strings
func parseJSONStringArray(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || s == "[]" {
		return nil
	}

	var result []string
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		// Fallback to simple parser for malformed JSON
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		if s == "" {
			return nil
		}
		for _, item := range strings.Split(s, ",") {
			item = strings.TrimSpace(item)
			item = strings.Trim(item, `"`)
			if item != "" {
				result = append(result, item)
			}
		}
	}
	return result
}
