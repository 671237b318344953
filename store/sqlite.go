// ABOUTME: SQLite-backed store for saved diagrams so wizard sessions survive restarts.
// ABOUTME: Provides save, get, list, and delete; rows carry the validation status computed at save time.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Diagram is a saved diagram row. Status is the validation status computed
// when the diagram was saved; re-validating the source is the caller's job.
type Diagram struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// DiagramStore persists diagrams in a SQLite database.
type DiagramStore struct {
	db *sql.DB
}

// Open opens or creates the diagram database at the given path and ensures
// the schema exists.
func Open(path string) (*DiagramStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS diagrams (
			diagram_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT NOT NULL,
			status TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DiagramStore{db: db}, nil
}

// Close closes the database connection.
func (s *DiagramStore) Close() error {
	return s.db.Close()
}

// Save inserts a new diagram and returns its generated ID.
func (s *DiagramStore) Save(name, source, status string) (string, error) {
	id := ulid.Make().String()
	_, err := s.db.Exec(
		`INSERT INTO diagrams (diagram_id, name, source, status, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, name, source, status, now(),
	)
	if err != nil {
		return "", fmt.Errorf("insert diagram: %w", err)
	}
	return id, nil
}

// Update replaces the source and status of an existing diagram.
func (s *DiagramStore) Update(id, source, status string) error {
	res, err := s.db.Exec(
		`UPDATE diagrams SET source = ?, status = ?, updated_at = ? WHERE diagram_id = ?`,
		source, status, now(), id,
	)
	if err != nil {
		return fmt.Errorf("update diagram: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("diagram %s not found", id)
	}
	return nil
}

// Get returns one diagram by ID, or (nil, nil) when it does not exist.
func (s *DiagramStore) Get(id string) (*Diagram, error) {
	row := s.db.QueryRow(
		`SELECT diagram_id, name, source, status, updated_at FROM diagrams WHERE diagram_id = ?`, id)
	var d Diagram
	err := row.Scan(&d.ID, &d.Name, &d.Source, &d.Status, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan diagram: %w", err)
	}
	return &d, nil
}

// List returns all diagrams, most recently updated first.
func (s *DiagramStore) List() ([]Diagram, error) {
	rows, err := s.db.Query(
		`SELECT diagram_id, name, source, status, updated_at FROM diagrams ORDER BY updated_at DESC, diagram_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer rows.Close()

	diagrams := make([]Diagram, 0)
	for rows.Next() {
		var d Diagram
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &d.Status, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan diagram: %w", err)
		}
		diagrams = append(diagrams, d)
	}
	return diagrams, rows.Err()
}

// Delete removes a diagram by ID. Deleting a missing diagram is not an error.
func (s *DiagramStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM diagrams WHERE diagram_id = ?`, id); err != nil {
		return fmt.Errorf("delete diagram: %w", err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z07:00")
}
