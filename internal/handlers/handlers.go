package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/aggregate"
	"github.com/lawhearing/backend/internal/captcha"
	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Draft   *DraftHandler
	Vote    *VoteHandler
	Survey  *SurveyHandler
	Comment *CommentHandler
	Export  *ExportHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, verifier captcha.Verifier) *Handler {
	st := store.New(db)
	votes := aggregate.NewVoteAggregator(db)
	surveys := aggregate.NewSurveyAggregator(db)

	return &Handler{
		Auth:    NewAuthHandler(db),
		Draft:   NewDraftHandler(db, votes),
		Vote:    NewVoteHandler(st, votes),
		Survey:  NewSurveyHandler(st, surveys, verifier),
		Comment: NewCommentHandler(st),
		Export:  NewExportHandler(db, votes, surveys),
	}
}

// respondStoreError maps the store taxonomy onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session"})
	case errors.Is(err, store.ErrEmptySubmission):
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one answer is required"})
	case errors.Is(err, store.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
