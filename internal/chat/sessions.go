package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

// ErrSessionNotFound means the targeted chat session no longer exists.
var ErrSessionNotFound = errors.New("chat session not found")

// DefaultSessionName matches the name a freshly created chat gets in the app.
const DefaultSessionName = "New Chat"

// Store keeps each user's chat sessions as one JSON blob in Redis, the
// server-side equivalent of the blob the mobile client kept in local
// storage: an array of {id, name, messages[], archived}.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func sessionsKey(userID int64) string {
	return fmt.Sprintf("chat:sessions:%d", userID)
}

// Sessions returns every session for the user, archived ones included.
func (s *Store) Sessions(ctx context.Context, userID int64) ([]models.ChatSession, error) {
	data, err := s.rdb.Get(ctx, sessionsKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.ChatSession{}, nil
		}
		return nil, err
	}

	var sessions []models.ChatSession
	if err := json.Unmarshal([]byte(data), &sessions); err != nil {
		return nil, fmt.Errorf("decoding chat sessions: %w", err)
	}
	return sessions, nil
}

func (s *Store) save(ctx context.Context, userID int64, sessions []models.ChatSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encoding chat sessions: %w", err)
	}
	return s.rdb.Set(ctx, sessionsKey(userID), data, 0).Err()
}

// Create starts a fresh session and returns it.
func (s *Store) Create(ctx context.Context, userID int64, name string) (models.ChatSession, error) {
	if name == "" {
		name = DefaultSessionName
	}
	session := models.ChatSession{
		ID:       uuid.NewString(),
		Name:     name,
		Messages: []models.ChatMessage{},
	}

	sessions, err := s.Sessions(ctx, userID)
	if err != nil {
		return models.ChatSession{}, err
	}
	if err := s.save(ctx, userID, append(sessions, session)); err != nil {
		return models.ChatSession{}, err
	}
	return session, nil
}

// Append adds messages to a session and returns the updated session.
func (s *Store) Append(ctx context.Context, userID int64, sessionID string, msgs ...models.ChatMessage) (models.ChatSession, error) {
	sessions, err := s.Sessions(ctx, userID)
	if err != nil {
		return models.ChatSession{}, err
	}

	updated, ok := appendMessages(sessions, sessionID, msgs...)
	if !ok {
		return models.ChatSession{}, ErrSessionNotFound
	}
	if err := s.save(ctx, userID, sessions); err != nil {
		return models.ChatSession{}, err
	}
	return updated, nil
}

// Rename changes a session's display name.
func (s *Store) Rename(ctx context.Context, userID int64, sessionID, name string) error {
	sessions, err := s.Sessions(ctx, userID)
	if err != nil {
		return err
	}
	if !renameSession(sessions, sessionID, name) {
		return ErrSessionNotFound
	}
	return s.save(ctx, userID, sessions)
}

// SetArchived archives or unarchives a session.
func (s *Store) SetArchived(ctx context.Context, userID int64, sessionID string, archived bool) error {
	sessions, err := s.Sessions(ctx, userID)
	if err != nil {
		return err
	}
	if !setArchived(sessions, sessionID, archived) {
		return ErrSessionNotFound
	}
	return s.save(ctx, userID, sessions)
}

// Delete removes a session entirely. Deleting a missing session is a no-op.
func (s *Store) Delete(ctx context.Context, userID int64, sessionID string) error {
	sessions, err := s.Sessions(ctx, userID)
	if err != nil {
		return err
	}
	return s.save(ctx, userID, removeSession(sessions, sessionID))
}

// --- pure list bookkeeping, shared by the store methods ---

func appendMessages(sessions []models.ChatSession, sessionID string, msgs ...models.ChatMessage) (models.ChatSession, bool) {
	for i := range sessions {
		if sessions[i].ID == sessionID {
			sessions[i].Messages = append(sessions[i].Messages, msgs...)
			return sessions[i], true
		}
	}
	return models.ChatSession{}, false
}

func renameSession(sessions []models.ChatSession, sessionID, name string) bool {
	for i := range sessions {
		if sessions[i].ID == sessionID {
			sessions[i].Name = name
			return true
		}
	}
	return false
}

func setArchived(sessions []models.ChatSession, sessionID string, archived bool) bool {
	for i := range sessions {
		if sessions[i].ID == sessionID {
			sessions[i].Archived = archived
			return true
		}
	}
	return false
}

func removeSession(sessions []models.ChatSession, sessionID string) []models.ChatSession {
	out := sessions[:0]
	for _, session := range sessions {
		if session.ID != sessionID {
			out = append(out, session)
		}
	}
	return out
}
