// Package store persists templates and sources in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tmercier/linemix/internal/template"
)

// Store defines the interface for template and source persistence.
type Store interface {
	// GetAllTemplates returns all templates as a map keyed by name.
	GetAllTemplates() (map[string]*template.Template, error)

	// GetTemplateByName returns a specific template by name.
	GetTemplateByName(name string) (*template.Template, error)

	// CreateTemplate creates a new template.
	CreateTemplate(tpl *template.Template) error

	// UpdateTemplate updates an existing template.
	UpdateTemplate(tpl *template.Template) error

	// DeleteTemplate deletes a template by name.
	DeleteTemplate(name string) error

	// IncTemplateCount increments the usage count for a template.
	IncTemplateCount(name string) error

	// ListSourceNames returns the names of all sources in name order.
	ListSourceNames() ([]string, error)

	// GetSourceContent returns the current text blob of a source.
	GetSourceContent(name string) (string, error)

	// CreateSource creates a new source with the given content.
	CreateSource(name string, content string) error

	// UpdateSource replaces the content of an existing source.
	UpdateSource(name string, content string) error

	// DeleteSource deletes a source by name.
	DeleteSource(name string) error

	// Close closes the underlying database connection.
	Close() error
}

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the SQLite database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates the templates and sources tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS templates (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		count INTEGER DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS sources (
		name TEXT PRIMARY KEY,
		content TEXT NOT NULL
	);`

	_, err := s.db.Exec(query)
	return err
}

// GetAllTemplates returns all templates as a map keyed by name.
func (s *SQLiteStore) GetAllTemplates() (map[string]*template.Template, error) {
	query := "SELECT name, body, count FROM templates ORDER BY name"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make(map[string]*template.Template)
	for rows.Next() {
		tpl := &template.Template{}
		if err := rows.Scan(&tpl.Name, &tpl.Body, &tpl.Count); err != nil {
			return nil, err
		}
		templates[tpl.Name] = tpl
	}

	return templates, rows.Err()
}

// GetTemplateByName returns a specific template by name.
func (s *SQLiteStore) GetTemplateByName(name string) (*template.Template, error) {
	query := "SELECT name, body, count FROM templates WHERE name = ?"
	row := s.db.QueryRow(query, name)

	var tpl template.Template
	if err := row.Scan(&tpl.Name, &tpl.Body, &tpl.Count); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("unknown template %q", name)
		}
		return nil, err
	}

	return &tpl, nil
}

// CreateTemplate creates a new template.
func (s *SQLiteStore) CreateTemplate(tpl *template.Template) error {
	query := "INSERT INTO templates (name, body, count) VALUES (?, ?, ?)"
	_, err := s.db.Exec(query, tpl.Name, tpl.Body, tpl.Count)
	return err
}

// UpdateTemplate updates an existing template.
func (s *SQLiteStore) UpdateTemplate(tpl *template.Template) error {
	query := "UPDATE templates SET body = ?, count = ? WHERE name = ?"
	result, err := s.db.Exec(query, tpl.Body, tpl.Count, tpl.Name)
	if err != nil {
		return err
	}

	return requireAffected(result, "template", tpl.Name)
}

// DeleteTemplate deletes a template by name.
func (s *SQLiteStore) DeleteTemplate(name string) error {
	result, err := s.db.Exec("DELETE FROM templates WHERE name = ?", name)
	if err != nil {
		return err
	}

	return requireAffected(result, "template", name)
}

// IncTemplateCount increments the usage count for a template.
func (s *SQLiteStore) IncTemplateCount(name string) error {
	result, err := s.db.Exec("UPDATE templates SET count = count + 1 WHERE name = ?", name)
	if err != nil {
		return err
	}

	return requireAffected(result, "template", name)
}

// ListSourceNames returns the names of all sources in name order.
func (s *SQLiteStore) ListSourceNames() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM sources ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// GetSourceContent returns the current text blob of a source.
func (s *SQLiteStore) GetSourceContent(name string) (string, error) {
	row := s.db.QueryRow("SELECT content FROM sources WHERE name = ?", name)

	var content string
	if err := row.Scan(&content); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("unknown source %q", name)
		}
		return "", err
	}

	return content, nil
}

// CreateSource creates a new source with the given content.
func (s *SQLiteStore) CreateSource(name string, content string) error {
	_, err := s.db.Exec("INSERT INTO sources (name, content) VALUES (?, ?)", name, content)
	return err
}

// UpdateSource replaces the content of an existing source.
func (s *SQLiteStore) UpdateSource(name string, content string) error {
	result, err := s.db.Exec("UPDATE sources SET content = ? WHERE name = ?", content, name)
	if err != nil {
		return err
	}

	return requireAffected(result, "source", name)
}

// DeleteSource deletes a source by name.
func (s *SQLiteStore) DeleteSource(name string) error {
	result, err := s.db.Exec("DELETE FROM sources WHERE name = ?", name)
	if err != nil {
		return err
	}

	return requireAffected(result, "source", name)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// requireAffected turns a zero-row write into an unknown-record error.
func requireAffected(result sql.Result, kind string, name string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("unknown %s %q", kind, name)
	}

	return nil
}
