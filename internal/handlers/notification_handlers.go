package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

//
// --- Notification Handlers ---
//

// GetNotifications is the handler for GET /v1/notifications
// Notifications are broadcast announcements; everyone sees the same feed,
// newest first.
func (h *Handlers) GetNotifications(c *gin.Context) {
	query := `
		SELECT id, message, type, attached_book, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT 50`

	rows, err := h.DB.QueryContext(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var notif models.Notification
		if err := rows.Scan(&notif.ID, &notif.Message, &notif.Type, &notif.AttachedBook, &notif.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan notification row"})
			return
		}
		notifications = append(notifications, notif)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating notification rows"})
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// CreateNotificationInput defines the JSON for publishing an announcement.
type CreateNotificationInput struct {
	Message      string  `json:"message" binding:"required"`
	Type         string  `json:"type"`
	AttachedBook *string `json:"attachedBook"`
}

// CreateNotification is the handler for POST /v1/admin/notifications
func (h *Handlers) CreateNotification(c *gin.Context) {
	var input CreateNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Type == "" {
		input.Type = "general"
	}

	var attached sql.NullString
	if input.AttachedBook != nil {
		attached = sql.NullString{String: *input.AttachedBook, Valid: true}
	}

	_, err := h.DB.ExecContext(c.Request.Context(), `
		INSERT INTO notifications (message, type, attached_book, created_at)
		VALUES (?, ?, ?, ?)`,
		input.Message, input.Type, attached, time.Now())
	if err != nil {
		h.Log.Error().Err(err).Msg("notification insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Notification published"})
}
