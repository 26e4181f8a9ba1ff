package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookhive-app/bookhive-golang/internal/chat"
	"github.com/bookhive-app/bookhive-golang/internal/models"
)

//
// --- Chat Handlers (BookHive Buddy) ---
//

// aiFallback is shown when the assistant cannot answer. The session still
// records the user's message so nothing is lost.
const aiFallback = "BookHive Buddy is taking a short break. Please try again in a moment."

// ListChatSessions is the handler for GET /v1/chat/sessions
func (h *Handlers) ListChatSessions(c *gin.Context) {
	sessions, err := h.Chats.Sessions(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.Log.Error().Err(err).Msg("chat sessions fetch failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat history is unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// CreateChatSessionInput optionally names the new chat.
type CreateChatSessionInput struct {
	Name string `json:"name"`
}

// CreateChatSession is the handler for POST /v1/chat/sessions
func (h *Handlers) CreateChatSession(c *gin.Context) {
	var input CreateChatSessionInput
	_ = c.ShouldBindJSON(&input) // empty body is fine, name defaults

	session, err := h.Chats.Create(c.Request.Context(), currentUserID(c), input.Name)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to create chat"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// ChatMessageInput is the prompt sent to the assistant.
type ChatMessageInput struct {
	Message string `json:"message" binding:"required"`
}

// SendChatMessage is the handler for POST /v1/chat/sessions/:id/messages
// The session's role-tagged history rides along with the prompt. An
// assistant failure degrades to a fallback reply; it never fails the
// request.
func (h *Handlers) SendChatMessage(c *gin.Context) {
	uid := currentUserID(c)
	sessionID := c.Param("id")

	var input ChatMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, err := h.Chats.Sessions(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat history is unavailable"})
		return
	}

	var history []models.ChatMessage
	found := false
	for _, session := range sessions {
		if session.ID == sessionID {
			history = session.Messages
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}

	degraded := false
	reply, err := h.AI.Reply(c.Request.Context(), input.Message, history)
	if err != nil {
		h.Log.Warn().Err(err).Str("session_id", sessionID).Msg("assistant reply failed")
		reply = aiFallback
		degraded = true
	}

	session, err := h.Chats.Append(c.Request.Context(), uid, sessionID,
		models.ChatMessage{Role: "user", Text: input.Message},
		models.ChatMessage{Role: "model", Text: reply},
	)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to save chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": reply,
		"degraded": degraded,
		"session":  session,
	})
}

// RenameChatSessionInput is the new display name.
type RenameChatSessionInput struct {
	Name string `json:"name" binding:"required"`
}

// RenameChatSession is the handler for PATCH /v1/chat/sessions/:id
func (h *Handlers) RenameChatSession(c *gin.Context) {
	var input RenameChatSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Chats.Rename(c.Request.Context(), currentUserID(c), c.Param("id"), input.Name)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to rename chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat renamed"})
}

func (h *Handlers) setChatArchived(c *gin.Context, archived bool) {
	err := h.Chats.SetArchived(c.Request.Context(), currentUserID(c), c.Param("id"), archived)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to update chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": archived})
}

// ArchiveChatSession is the handler for POST /v1/chat/sessions/:id/archive
func (h *Handlers) ArchiveChatSession(c *gin.Context) {
	h.setChatArchived(c, true)
}

// UnarchiveChatSession is the handler for POST /v1/chat/sessions/:id/unarchive
func (h *Handlers) UnarchiveChatSession(c *gin.Context) {
	h.setChatArchived(c, false)
}

// DeleteChatSession is the handler for DELETE /v1/chat/sessions/:id
func (h *Handlers) DeleteChatSession(c *gin.Context) {
	err := h.Chats.Delete(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to delete chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat deleted"})
}
