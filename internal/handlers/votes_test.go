package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawhearing/backend/internal/models"
	"github.com/lawhearing/backend/internal/testutil"
)

type passVerifier struct{}

func (passVerifier) Verify(ctx context.Context, token string) (bool, error) {
	return true, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, models.LawDraft) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	draft := testutil.SeedDraft(t, db)
	h := NewHandler(db, passVerifier{})

	r := gin.New()
	api := r.Group("/api")
	api.GET("/drafts/:id/tally", h.Vote.DraftTally)
	api.GET("/sections/:id/tally", h.Vote.SectionTally)
	api.POST("/sections/:id/vote", h.Vote.CastVote)
	api.DELETE("/sections/:id/vote", h.Vote.RemoveVote)
	api.POST("/drafts/:id/survey", h.Survey.Submit)
	return r, draft
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tallyOf(t *testing.T, r *gin.Engine, sectionID string) map[string]float64 {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/sections/"+sectionID+"/tally", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestVoteEndpointScenario(t *testing.T) {
	r, draft := newTestRouter(t)
	section := draft.Sections[0]
	path := "/api/sections/" + section.ID + "/vote"

	w := doJSON(t, r, http.MethodPost, path, gin.H{
		"session_id": "abc1234567",
		"type":       "AGREE",
	})
	require.Equal(t, http.StatusOK, w.Code)

	tally := tallyOf(t, r, section.ID)
	assert.Equal(t, float64(1), tally["agree"])
	assert.Equal(t, float64(0), tally["disagree"])
	assert.Equal(t, float64(100), tally["agree_percent"])

	w = doJSON(t, r, http.MethodGet, "/api/sections/"+section.ID+"/tally?session_id=abc1234567", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var withOwn map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &withOwn))
	assert.Equal(t, "AGREE", withOwn["your_vote"])

	// Same session, other choice: switch, not accumulate.
	w = doJSON(t, r, http.MethodPost, path, gin.H{
		"session_id": "abc1234567",
		"type":       "DISAGREE",
	})
	require.Equal(t, http.StatusOK, w.Code)

	tally = tallyOf(t, r, section.ID)
	assert.Equal(t, float64(0), tally["agree"])
	assert.Equal(t, float64(1), tally["disagree"])

	w = doJSON(t, r, http.MethodDelete, path, gin.H{"session_id": "abc1234567"})
	require.Equal(t, http.StatusOK, w.Code)

	tally = tallyOf(t, r, section.ID)
	assert.Equal(t, float64(0), tally["agree"])
	assert.Equal(t, float64(0), tally["disagree"])
	assert.Equal(t, float64(0), tally["agree_percent"])
	assert.Equal(t, float64(0), tally["disagree_percent"])
}

func TestVoteEndpointRejectsBadInput(t *testing.T) {
	r, draft := newTestRouter(t)
	section := draft.Sections[0]
	path := "/api/sections/" + section.ID + "/vote"

	// Session token below the minimum length never reaches storage.
	w := doJSON(t, r, http.MethodPost, path, gin.H{
		"session_id": "short",
		"type":       "AGREE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, path, gin.H{
		"session_id": "abc1234567",
		"type":       "MAYBE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/sections/nope/vote", gin.H{
		"session_id": "abc1234567",
		"type":       "AGREE",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSurveyEndpoint(t *testing.T) {
	r, draft := newTestRouter(t)
	path := "/api/drafts/" + draft.ID + "/survey"

	w := doJSON(t, r, http.MethodPost, path, gin.H{
		"session_id": "abc1234567",
		"answers": []gin.H{
			{"question_id": draft.SurveyQuestions[0].ID, "answer": "AGREE", "comment": "fine"},
			{"question_id": draft.SurveyQuestions[1].ID, "answer": "DISAGREE"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A batch containing an unknown question persists nothing.
	w = doJSON(t, r, http.MethodPost, path, gin.H{
		"session_id": "abc1234567",
		"answers": []gin.H{
			{"question_id": draft.SurveyQuestions[2].ID, "answer": "AGREE"},
			{"question_id": "no-such-question", "answer": "AGREE"},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, path, gin.H{
		"session_id": "abc1234567",
		"answers":    []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/drafts/"+draft.ID+"/tally", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
