package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/warbandhq/chapter-registry/internal/service"
	"go.uber.org/zap"
)

// ChapterHandler handles chapter-related requests.
//
// The chapter endpoints predate the success/data envelope the user and
// membership endpoints use; their flatter response shapes are part of the
// contract and are kept as-is.
type ChapterHandler struct {
	chapters *service.Chapters
	logger   *zap.Logger
}

func NewChapterHandler(chapters *service.Chapters, logger *zap.Logger) *ChapterHandler {
	return &ChapterHandler{chapters: chapters, logger: logger}
}

// RegisterRoutes mounts the chapter routes on the given group.
func (h *ChapterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/chapters", h.List)
	rg.POST("/chapters", h.Create)
	rg.GET("/chapters/count", h.Count)
	rg.GET("/chapters/check-name", h.CheckName)
	rg.GET("/chapters/:id", h.Get)
}

type createChapterRequest struct {
	Name        string `json:"Chapter_Name" binding:"required"`
	Description string `json:"Chapter_Description" binding:"required"`
	CreatedBy   string `json:"Created_By" binding:"required"`
}

// Create handles POST /api/chapters
func (h *ChapterHandler) Create(c *gin.Context) {
	var req createChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter, err := h.chapters.Create(c.Request.Context(), req.Name, req.Description, req.CreatedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chapter_Name, Chapter_Description and Created_By are required"})
		case errors.Is(err, service.ErrChapterNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chapter name already exists (case-insensitive)"})
		case errors.Is(err, service.ErrChapterIDCollision):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Generated Chapter ID already exists"})
		default:
			h.logger.Error("failed to create chapter", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chapter"})
		}
		return
	}

	c.JSON(http.StatusCreated, chapter)
}

// List handles GET /api/chapters?page=&limit=
func (h *ChapterHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	chapters, pagination, err := h.chapters.List(c.Request.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list chapters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chapters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chapters": chapters, "pagination": pagination})
}

// Count handles GET /api/chapters/count
func (h *ChapterHandler) Count(c *gin.Context) {
	total, err := h.chapters.Count(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to count chapters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count chapters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

// CheckName handles GET /api/chapters/check-name?Chapter_Name=...
func (h *ChapterHandler) CheckName(c *gin.Context) {
	name := c.Query("Chapter_Name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chapter_Name query parameter is required"})
		return
	}

	exists, message, err := h.chapters.CheckName(c.Request.Context(), name)
	if err != nil {
		h.logger.Error("failed to check chapter name", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check chapter name"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists, "message": message})
}

// Get handles GET /api/chapters/:id
func (h *ChapterHandler) Get(c *gin.Context) {
	chapter, err := h.chapters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChapterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		default:
			h.logger.Error("failed to get chapter", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chapter"})
		}
		return
	}

	c.JSON(http.StatusOK, chapter)
}
