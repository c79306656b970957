package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Record represents one recorded API call.
type Record struct {
	ID       int64
	Command  string
	Method   string
	Path     string
	Status   int
	CalledAt time.Time
}

// Store manages call history operations.
type Store struct {
	conn *Connection
}

// NewStore creates a new Store instance.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

// RecordCall records one API call.
func (s *Store) RecordCall(record Record) error {
	query := `
		INSERT INTO call_history (command, method, path, status)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.conn.Exec(query,
		record.Command,
		record.Method,
		record.Path,
		record.Status,
	)

	if err != nil {
		return fmt.Errorf("failed to record call: %w", err)
	}

	return nil
}

// List retrieves the most recent calls, newest first.
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, command, method, path, status, called_at
		FROM call_history
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list call history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(
			&record.ID,
			&record.Command,
			&record.Method,
			&record.Path,
			&record.Status,
			&record.CalledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan call record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Stats represents call history statistics.
type Stats struct {
	TotalCalls   int
	Mutations    int // POST/PUT/DELETE calls
	ErrorCalls   int // status >= 400
	ByMethod     []MethodCount
	LastCalledAt sql.NullString
}

// MethodCount is the number of recorded calls for one HTTP method.
type MethodCount struct {
	Method string
	Count  int
}

// GetStats retrieves call history statistics.
func (s *Store) GetStats() (*Stats, error) {
	var stats Stats

	err := s.conn.QueryRow(`SELECT COUNT(*) FROM call_history`).Scan(&stats.TotalCalls)
	if err != nil {
		return nil, fmt.Errorf("failed to get call count: %w", err)
	}

	err = s.conn.QueryRow(
		`SELECT COUNT(*) FROM call_history WHERE method IN ('POST', 'PUT', 'DELETE')`,
	).Scan(&stats.Mutations)
	if err != nil {
		return nil, fmt.Errorf("failed to get mutation count: %w", err)
	}

	err = s.conn.QueryRow(`SELECT COUNT(*) FROM call_history WHERE status >= 400`).Scan(&stats.ErrorCalls)
	if err != nil {
		return nil, fmt.Errorf("failed to get error count: %w", err)
	}

	rows, err := s.conn.Query(`SELECT method, COUNT(*) FROM call_history GROUP BY method ORDER BY method`)
	if err != nil {
		return nil, fmt.Errorf("failed to get method counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mc MethodCount
		if err := rows.Scan(&mc.Method, &mc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan method count: %w", err)
		}
		stats.ByMethod = append(stats.ByMethod, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read method counts: %w", err)
	}

	err = s.conn.QueryRow(`SELECT MAX(called_at) FROM call_history`).Scan(&stats.LastCalledAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last call time: %w", err)
	}

	return &stats, nil
}

// Clear deletes all call history.
func (s *Store) Clear() (int64, error) {
	result, err := s.conn.Exec(`DELETE FROM call_history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear call history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// GetMetadata retrieves a metadata value.
func (s *Store) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM history_metadata WHERE key = ?`

	var value string
	err := s.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (s *Store) SetMetadata(key, value string) error {
	query := `
		INSERT INTO history_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := s.conn.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

// CallRecorder adapts a Store to the client's Recorder interface,
// stamping each call with the CLI command that made it. Recording
// failures are ignored; history must never break an API call.
type CallRecorder struct {
	store   *Store
	command string
}

// NewCallRecorder creates a recorder for the given command path.
func NewCallRecorder(store *Store, command string) *CallRecorder {
	return &CallRecorder{store: store, command: command}
}

// RecordCall implements the client Recorder interface.
func (r *CallRecorder) RecordCall(method, path string, status int) {
	_ = r.store.RecordCall(Record{
		Command: r.command,
		Method:  method,
		Path:    path,
		Status:  status,
	})
}
