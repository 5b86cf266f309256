package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawhearing/backend/internal/aggregate"
	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/middleware"
	"github.com/lawhearing/backend/internal/store"
)

type VoteHandler struct {
	store *store.Store
	votes *aggregate.VoteAggregator
}

func NewVoteHandler(st *store.Store, votes *aggregate.VoteAggregator) *VoteHandler {
	return &VoteHandler{store: st, votes: votes}
}

// CastVote records or replaces the caller's vote on a section. Repeated
// casts from the same session update the single existing row; the
// response carries the fresh tally so the client can render immediately.
func (h *VoteHandler) CastVote(c *gin.Context) {
	sectionID := c.Param("id")

	var input struct {
		SessionID string `json:"session_id" binding:"required"`
		Type      string `json:"type" binding:"required,oneof=AGREE DISAGREE"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be AGREE or DISAGREE"})
		return
	}

	participant, err := identity.Resolve(input.SessionID, middleware.UserIDFromContext(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	vote, err := h.store.UpsertVote(c.Request.Context(), sectionID, participant, input.Type)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	tally, err := h.votes.Tally(c.Request.Context(), sectionID)
	if err != nil {
		respondStoreError(c, store.ErrStorageUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vote recorded",
		"vote":    vote,
		"tally":   tallyJSON(tally),
	})
}

// RemoveVote deletes the caller's vote on a section; a missing vote is
// not an error.
func (h *VoteHandler) RemoveVote(c *gin.Context) {
	sectionID := c.Param("id")

	var input struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	participant, err := identity.Resolve(input.SessionID, middleware.UserIDFromContext(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.store.RemoveVote(c.Request.Context(), sectionID, participant); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}

// SectionTally returns live counts and percentages for one section.
// With ?session_id= the response also carries that session's own vote,
// so the client can highlight the pressed button.
func (h *VoteHandler) SectionTally(c *gin.Context) {
	sectionID := c.Param("id")

	if _, err := h.store.SectionWithDraft(c.Request.Context(), sectionID); err != nil {
		respondStoreError(c, err)
		return
	}

	tally, err := h.votes.Tally(c.Request.Context(), sectionID)
	if err != nil {
		respondStoreError(c, store.ErrStorageUnavailable)
		return
	}

	payload := tallyJSON(tally)
	if sessionID := c.Query("session_id"); sessionID != "" {
		participant, err := identity.Resolve(sessionID, middleware.UserIDFromContext(c))
		if err == nil {
			if vote, err := h.store.VoteFor(c.Request.Context(), sectionID, participant); err == nil && vote != nil {
				payload["your_vote"] = vote.Type
			}
		}
	}
	c.JSON(http.StatusOK, payload)
}

// DraftTally sums the per-section tallies across the whole draft.
func (h *VoteHandler) DraftTally(c *gin.Context) {
	draftID := c.Param("id")

	tally, err := h.votes.DraftTally(c.Request.Context(), draftID)
	if err != nil {
		respondStoreError(c, store.ErrStorageUnavailable)
		return
	}
	c.JSON(http.StatusOK, tallyJSON(tally))
}

func tallyJSON(t aggregate.Tally) gin.H {
	return gin.H{
		"agree":            t.Agree,
		"disagree":         t.Disagree,
		"agree_percent":    t.AgreePercent(),
		"disagree_percent": t.DisagreePercent(),
	}
}
