package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/warbandhq/chapter-registry/internal/service"
	"go.uber.org/zap"
)

// MembershipHandler handles membership-related requests.
type MembershipHandler struct {
	memberships *service.Memberships
	logger      *zap.Logger
}

func NewMembershipHandler(memberships *service.Memberships, logger *zap.Logger) *MembershipHandler {
	return &MembershipHandler{memberships: memberships, logger: logger}
}

// RegisterRoutes mounts the membership routes on the given group.
func (h *MembershipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/memberships/create", h.Create)
	rg.GET("/memberships/chapters/:id", h.ListByChapter)
	rg.GET("/memberships/users/:id", h.ListByUser)
	rg.GET("/memberships/check-warrior-name", h.CheckWarriorName)
}

type createMembershipRequest struct {
	UserID      string `json:"User_ID" binding:"required"`
	ChapterID   string `json:"Chapter_Id" binding:"required"`
	Rank        string `json:"Chapter_Rank"`
	WarriorName string `json:"Warrior_Name" binding:"required"`
}

// Create handles POST /api/memberships/create
func (h *MembershipHandler) Create(c *gin.Context) {
	var req createMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		// Not a well-formed public user id, so it cannot reference an
		// existing user.
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	membership, err := h.memberships.Create(c.Request.Context(), userID, req.ChapterID, req.Rank, req.WarriorName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User_ID, Chapter_Id and Warrior_Name are required"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		case errors.Is(err, service.ErrChapterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Chapter not found"})
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User is already a member of this chapter"})
		case errors.Is(err, service.ErrWarriorNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Warrior name is already taken"})
		default:
			h.logger.Error("failed to create membership", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": membership})
}

// ListByChapter handles GET /api/memberships/chapters/:id
func (h *MembershipHandler) ListByChapter(c *gin.Context) {
	memberships, err := h.memberships.ListByChapter(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChapterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Chapter not found"})
		default:
			h.logger.Error("failed to list chapter memberships", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": memberships})
}

// ListByUser handles GET /api/memberships/users/:id
func (h *MembershipHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	memberships, err := h.memberships.ListByUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		default:
			h.logger.Error("failed to list user memberships", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": memberships})
}

// CheckWarriorName handles GET /api/memberships/check-warrior-name?warriorName=...
func (h *MembershipHandler) CheckWarriorName(c *gin.Context) {
	warriorName := c.Query("warriorName")
	if warriorName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "warriorName query parameter is required"})
		return
	}

	available, err := h.memberships.CheckWarriorName(c.Request.Context(), warriorName)
	if err != nil {
		h.logger.Error("failed to check warrior name", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"isAvailable": available, "warriorName": warriorName},
	})
}
