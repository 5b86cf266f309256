package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/aggregate"
	"github.com/lawhearing/backend/internal/export"
	"github.com/lawhearing/backend/internal/models"
)

type ExportHandler struct {
	db      *gorm.DB
	votes   *aggregate.VoteAggregator
	surveys *aggregate.SurveyAggregator
}

func NewExportHandler(db *gorm.DB, votes *aggregate.VoteAggregator, surveys *aggregate.SurveyAggregator) *ExportHandler {
	return &ExportHandler{db: db, votes: votes, surveys: surveys}
}

// ExportDraft streams a CSV download for a draft (ADMIN). ?type=survey
// selects the per-respondent survey export; the default is the
// per-section summary. Any failure returns an HTTP error with no
// partial file: the document is built fully in memory first.
func (h *ExportHandler) ExportDraft(c *gin.Context) {
	draftID := c.Param("id")

	var draft models.LawDraft
	if err := h.db.First(&draft, "id = ?", draftID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	var (
		data     []byte
		filename string
		err      error
	)
	if c.Query("type") == "survey" {
		data, err = h.surveyCSV(c, draftID)
		filename = fmt.Sprintf("survey-responses-%s.csv", draftID)
	} else {
		data, err = h.sectionCSV(c, draftID)
		filename = fmt.Sprintf("draft-%s-export.csv", draftID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *ExportHandler) surveyCSV(c *gin.Context, draftID string) ([]byte, error) {
	var questions []models.SurveyQuestion
	err := h.db.Where("law_draft_id = ?", draftID).
		Order("display_order asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	respondents, err := h.surveys.ResponsesByRespondent(c.Request.Context(), draftID)
	if err != nil {
		return nil, err
	}
	return export.SurveyWideCSV(questions, respondents), nil
}

func (h *ExportHandler) sectionCSV(c *gin.Context, draftID string) ([]byte, error) {
	var sections []models.LawSection
	err := h.db.Where("law_draft_id = ?", draftID).
		Order("section_no asc").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}

	rows := make([]export.SectionSummaryRow, 0, len(sections))
	for _, section := range sections {
		tally, err := h.votes.Tally(c.Request.Context(), section.ID)
		if err != nil {
			return nil, err
		}

		var comments []models.Comment
		err = h.db.Where("section_id = ? AND status = ?", section.ID, models.CommentApproved).
			Order("created_at asc").
			Find(&comments).Error
		if err != nil {
			return nil, err
		}

		rows = append(rows, export.SectionSummaryRow{
			SectionNo: section.SectionNo,
			Content:   section.Content,
			Tally:     tally,
			Comments:  comments,
		})
	}
	return export.SectionSummaryCSV(rows), nil
}
