package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

func twoSessions() []models.ChatSession {
	return []models.ChatSession{
		{ID: "a", Name: "New Chat", Messages: []models.ChatMessage{}},
		{ID: "b", Name: "Fantasy picks", Messages: []models.ChatMessage{{Role: "user", Text: "hi"}}},
	}
}

func TestAppendMessages(t *testing.T) {
	sessions := twoSessions()

	updated, ok := appendMessages(sessions, "b",
		models.ChatMessage{Role: "user", Text: "any new arrivals?"},
		models.ChatMessage{Role: "model", Text: "plenty!"},
	)
	require.True(t, ok)
	assert.Len(t, updated.Messages, 3)
	assert.Equal(t, "model", updated.Messages[2].Role)

	_, ok = appendMessages(sessions, "missing", models.ChatMessage{Role: "user", Text: "x"})
	assert.False(t, ok)
}

func TestArchiveToggle(t *testing.T) {
	sessions := twoSessions()

	require.True(t, setArchived(sessions, "a", true))
	assert.True(t, sessions[0].Archived)

	require.True(t, setArchived(sessions, "a", false))
	assert.False(t, sessions[0].Archived)

	assert.False(t, setArchived(sessions, "missing", true))
}

func TestRenameSession(t *testing.T) {
	sessions := twoSessions()

	require.True(t, renameSession(sessions, "a", "Sci-fi shelf"))
	assert.Equal(t, "Sci-fi shelf", sessions[0].Name)

	assert.False(t, renameSession(sessions, "missing", "x"))
}

func TestRemoveSession(t *testing.T) {
	sessions := removeSession(twoSessions(), "a")
	require.Len(t, sessions, 1)
	assert.Equal(t, "b", sessions[0].ID)

	// Removing an unknown id leaves the list unchanged.
	sessions = removeSession(sessions, "missing")
	assert.Len(t, sessions, 1)
}
