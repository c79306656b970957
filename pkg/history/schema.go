// Package history provides SQLite storage for the local API call history.
package history

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Call history table
-- Records every FreeAgent API call made by the CLI
CREATE TABLE IF NOT EXISTS call_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    command TEXT NOT NULL,             -- CLI command path, e.g. 'invoices list'
    method TEXT NOT NULL,              -- HTTP method
    path TEXT NOT NULL,                -- API path, e.g. '/invoices'
    status INTEGER NOT NULL,           -- HTTP response status
    called_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_call_history_command
    ON call_history(command);

CREATE INDEX IF NOT EXISTS idx_call_history_called_at
    ON call_history(called_at);

-- Metadata table
-- Stores key-value metadata about the history store
CREATE TABLE IF NOT EXISTS history_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// SchemaVersion is stamped into history_metadata on open so future
// schema changes can detect databases written by older builds.
const SchemaVersion = "1"

const metaSchemaVersion = "schema_version"

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist and records the schema
// version in the metadata table.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}

	store := NewStore(conn)
	version, err := store.GetMetadata(metaSchemaVersion)
	if err != nil {
		return err
	}
	if version != SchemaVersion {
		return store.SetMetadata(metaSchemaVersion, SchemaVersion)
	}
	return nil
}
