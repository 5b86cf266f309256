package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawhearing/backend/internal/aggregate"
	"github.com/lawhearing/backend/internal/captcha"
	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/middleware"
	"github.com/lawhearing/backend/internal/store"
)

type SurveyHandler struct {
	store    *store.Store
	surveys  *aggregate.SurveyAggregator
	verifier captcha.Verifier
}

func NewSurveyHandler(st *store.Store, surveys *aggregate.SurveyAggregator, verifier captcha.Verifier) *SurveyHandler {
	return &SurveyHandler{store: st, surveys: surveys, verifier: verifier}
}

// Submit records a batch of survey answers. Captcha and identity are
// checked up front; the store applies the whole batch in one
// transaction, so a bad question id leaves nothing behind.
func (h *SurveyHandler) Submit(c *gin.Context) {
	draftID := c.Param("id")

	var input struct {
		SessionID    string               `json:"session_id" binding:"required"`
		CaptchaToken string               `json:"captcha_token"`
		Answers      []store.SurveyAnswer `json:"answers" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.verifier.Verify(c.Request.Context(), input.CaptchaToken)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "CAPTCHA verification unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CAPTCHA verification failed"})
		return
	}

	participant, err := identity.Resolve(input.SessionID, middleware.UserIDFromContext(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.store.SubmitSurvey(c.Request.Context(), draftID, participant, input.Answers); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Survey submitted"})
}

// Responses returns the respondent records for the admin viewer.
func (h *SurveyHandler) Responses(c *gin.Context) {
	draftID := c.Param("id")

	respondents, err := h.surveys.ResponsesByRespondent(c.Request.Context(), draftID)
	if err != nil {
		respondStoreError(c, store.ErrStorageUnavailable)
		return
	}
	if respondents == nil {
		respondents = []aggregate.Respondent{}
	}
	c.JSON(http.StatusOK, respondents)
}
