// ABOUTME: Tests for chat history persistence
// ABOUTME: Verifies per-session ordering and isolation
package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nexus/models"
)

func TestChatHistoryPerSession(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = AppendChat(db, "s1", models.RoleUser, "hello")
	require.NoError(t, err)
	_, err = AppendChat(db, "s2", models.RoleUser, "other")
	require.NoError(t, err)
	_, err = AppendChat(db, "s1", models.RoleAssistant, "hi there")
	require.NoError(t, err)

	history, err := GetChatHistory(db, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, models.RoleAssistant, history[1].Role)

	n, err := CountSessions(db)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAppendChatValidation(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = AppendChat(db, "", models.RoleUser, "x")
	assert.Error(t, err)

	_, err = AppendChat(db, "s1", "robot", "x")
	assert.Error(t, err, "role CHECK constraint")
}
