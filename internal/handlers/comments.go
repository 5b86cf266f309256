package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/middleware"
	"github.com/lawhearing/backend/internal/models"
	"github.com/lawhearing/backend/internal/store"
)

type CommentHandler struct {
	store *store.Store
}

func NewCommentHandler(st *store.Store) *CommentHandler {
	return &CommentHandler{store: st}
}

// GetComments returns the approved comments for a section.
func (h *CommentHandler) GetComments(c *gin.Context) {
	sectionID := c.Param("id")

	if _, err := h.store.SectionWithDraft(c.Request.Context(), sectionID); err != nil {
		respondStoreError(c, err)
		return
	}

	comments, err := h.store.ApprovedComments(c.Request.Context(), sectionID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment files a citizen comment into the moderation queue.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	sectionID := c.Param("id")

	var input struct {
		SessionID  string `json:"session_id" binding:"required"`
		AuthorName string `json:"author_name"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := identity.Resolve(input.SessionID, middleware.UserIDFromContext(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	comment, err := h.store.AddComment(c.Request.Context(), sectionID, participant, input.AuthorName, input.Content)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListForModeration is the admin queue, newest first, optionally
// filtered by status.
func (h *CommentHandler) ListForModeration(c *gin.Context) {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	comments, total, err := h.store.CommentsForModeration(c.Request.Context(), status, limit, (page-1)*limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
	})
}

// UpdateStatus moves a comment to APPROVED or REJECTED.
func (h *CommentHandler) UpdateStatus(c *gin.Context) {
	commentID := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be PENDING, APPROVED or REJECTED"})
		return
	}

	if err := h.store.SetCommentStatus(c.Request.Context(), commentID, input.Status); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment status updated"})
}
