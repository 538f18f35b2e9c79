// ABOUTME: Chat history operations for search sessions
// ABOUTME: Rows are keyed by ULID so ordering by id matches insertion order within a session
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/nexus/models"
)

func AppendChat(db *sql.DB, sessionID, role, content string) (*models.ChatRecord, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}

	rec := &models.ChatRecord{
		ID:        ulid.Make().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	_, err := db.Exec(`
		INSERT INTO chat_history (id, session_id, role, content, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.SessionID, rec.Role, rec.Content, rec.Timestamp)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func GetChatHistory(db *sql.DB, sessionID string) ([]models.ChatRecord, error) {
	rows, err := db.Query(`
		SELECT id, session_id, role, content, timestamp
		FROM chat_history WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.ChatRecord
	for rows.Next() {
		var rec models.ChatRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Role, &rec.Content, &rec.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountSessions reports how many distinct sessions have chat history.
func CountSessions(db *sql.DB) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(DISTINCT session_id) FROM chat_history`).Scan(&n)
	return n, err
}
