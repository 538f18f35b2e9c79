// ABOUTME: Database schema definitions for the search backend
// ABOUTME: Entities mirror the catalog; chat_history keeps one row per transcript line
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	id INTEGER PRIMARY KEY,
	type TEXT NOT NULL CHECK(type IN ('person', 'business')),
	name TEXT NOT NULL,
	role TEXT,
	company TEXT,
	industry TEXT,
	location TEXT,
	avatar TEXT,
	status TEXT,
	group_name TEXT,
	source TEXT,
	coord_x INTEGER,
	coord_y INTEGER
);

CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(type);

CREATE TABLE IF NOT EXISTS chat_history (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('user', 'assistant', 'system')),
	content TEXT NOT NULL,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chat_history_session ON chat_history(session_id, timestamp);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
