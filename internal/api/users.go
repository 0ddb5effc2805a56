package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warbandhq/chapter-registry/internal/service"
	"go.uber.org/zap"
)

// UserHandler handles user-related requests.
type UserHandler struct {
	users  *service.Users
	logger *zap.Logger
}

func NewUserHandler(users *service.Users, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// RegisterRoutes mounts the user routes on the given group.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/create", h.Create)
	rg.GET("/users/get-user-id", h.GetUserID)
	rg.DELETE("/users/:identifier", h.Delete)
}

type createUserRequest struct {
	GoogleUserID string `json:"GoogleUserId" binding:"required"`
	Email        string `json:"Email" binding:"required"`
	Role         string `json:"Role" binding:"required"`
}

// Create handles POST /api/users/create
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.GoogleUserID, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email format"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "GoogleUserId, Email and Role are required"})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User with this email or Google ID already exists"})
		default:
			h.logger.Error("failed to create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": user})
}

// Delete handles DELETE /api/users/:identifier
//
// The identifier may be an email, a public user id (UUID) or a Google user
// id; the service classifies it by shape.
func (h *UserHandler) Delete(c *gin.Context) {
	identifier := c.Param("identifier")

	if err := h.users.Delete(c.Request.Context(), identifier); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		default:
			h.logger.Error("failed to delete user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

// GetUserID handles GET /api/users/get-user-id?GoogleUserId=...
//
// Returns only the public identifier, never the full record.
func (h *UserHandler) GetUserID(c *gin.Context) {
	googleUserID := c.Query("GoogleUserId")
	if googleUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "GoogleUserId query parameter is required"})
		return
	}

	publicID, err := h.users.LookupPublicID(c.Request.Context(), googleUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		default:
			h.logger.Error("failed to look up user id", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"User_ID": publicID}})
}
