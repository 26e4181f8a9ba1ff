package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

//
// --- Auth & Profile Handlers ---
//

// RegisterInput holds the sign-up payload. It is separate from models.User so
// clients cannot set an id or role.
type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register is the handler for POST /v1/register
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var exists int
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT COUNT(*) FROM users WHERE email = ?", input.Email).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	now := time.Now()
	result, err := h.DB.ExecContext(c.Request.Context(), `
		INSERT INTO users (role, email, password_hash, full_name, created_at, updated_at)
		VALUES ('reader', ?, ?, ?, ?, ?)`,
		input.Email, password.Hash, input.FullName, now, now)
	if err != nil {
		h.Log.Error().Err(err).Str("email", input.Email).Msg("user insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	newUserID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read new user ID"})
		return
	}

	token, err := h.Tokens.GenerateToken(newUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Welcome to BookHive!",
		"token":   token,
	})
}

// LoginInput holds the sign-in payload.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var id int64
	var hash string
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id, password_hash FROM users WHERE email = ?", input.Email).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	password := models.Password{Hash: hash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.Tokens.GenerateToken(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetProfile is the handler for GET /v1/profile/me
func (h *Handlers) GetProfile(c *gin.Context) {
	uid := currentUserID(c)

	var user models.User
	err := h.DB.QueryRowContext(c.Request.Context(), `
		SELECT id, role, email, full_name, phone_number, avatar_url, bio, created_at, updated_at
		FROM users WHERE id = ?`, uid).Scan(
		&user.ID, &user.Role, &user.Email, &user.FullName,
		&user.PhoneNumber, &user.AvatarURL, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfileInput holds the editable profile fields. Pointer fields are
// left untouched when omitted.
type UpdateProfileInput struct {
	FullName    string  `json:"fullName" binding:"required"`
	PhoneNumber *string `json:"phoneNumber"`
	AvatarURL   *string `json:"avatarUrl"`
	Bio         *string `json:"bio"`
}

// UpdateProfile is the handler for PATCH /v1/profile/me
func (h *Handlers) UpdateProfile(c *gin.Context) {
	uid := currentUserID(c)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.DB.ExecContext(c.Request.Context(), `
		UPDATE users
		SET full_name = ?,
			phone_number = COALESCE(?, phone_number),
			avatar_url = COALESCE(?, avatar_url),
			bio = COALESCE(?, bio),
			updated_at = ?
		WHERE id = ?`,
		input.FullName, input.PhoneNumber, input.AvatarURL, input.Bio, time.Now(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
