package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/aggregate"
	"github.com/lawhearing/backend/internal/models"
)

type DraftHandler struct {
	db    *gorm.DB
	votes *aggregate.VoteAggregator
}

func NewDraftHandler(db *gorm.DB, votes *aggregate.VoteAggregator) *DraftHandler {
	return &DraftHandler{db: db, votes: votes}
}

// GetDrafts lists drafts, newest first, optionally filtered by status
// or category.
func (h *DraftHandler) GetDrafts(c *gin.Context) {
	var drafts []models.LawDraft

	q := h.db.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if search := c.Query("q"); search != "" {
		q = q.Where("title LIKE ?", "%"+search+"%")
	}

	if err := q.Find(&drafts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drafts"})
		return
	}

	if drafts == nil {
		drafts = []models.LawDraft{}
	}
	c.JSON(http.StatusOK, drafts)
}

// GetDraft returns one draft with its sections (tally attached per
// section), survey questions and overall totals.
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draftID := c.Param("id")

	var draft models.LawDraft
	err := h.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_no asc")
		}).
		Preload("SurveyQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		First(&draft, "id = ?", draftID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	sections := make([]gin.H, 0, len(draft.Sections))
	for _, section := range draft.Sections {
		tally, err := h.votes.Tally(c.Request.Context(), section.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally votes"})
			return
		}
		sections = append(sections, gin.H{
			"id":         section.ID,
			"section_no": section.SectionNo,
			"content":    section.Content,
			"tally":      tallyJSON(tally),
		})
	}

	totals, err := h.votes.DraftTally(c.Request.Context(), draftID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally votes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                        draft.ID,
		"title":                     draft.Title,
		"description":               draft.Description,
		"agency":                    draft.Agency,
		"category":                  draft.Category,
		"image":                     draft.Image,
		"status":                    draft.Status,
		"start_date":                draft.StartDate,
		"end_date":                  draft.EndDate,
		"hearing_time":              draft.HearingTime,
		"affected_parties":          draft.AffectedParties,
		"project_details":           draft.ProjectDetails,
		"version":                   draft.Version,
		"hearing_summary":           draft.HearingSummary,
		"hearing_summary_published": draft.HearingSummaryPublished,
		"sections":                  sections,
		"survey_questions":          draft.SurveyQuestions,
		"totals":                    tallyJSON(totals),
		"created_at":                draft.CreatedAt,
		"updated_at":                draft.UpdatedAt,
	})
}

type sectionInput struct {
	SectionNo string `json:"section_no" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

type questionInput struct {
	Question string `json:"question" binding:"required"`
	Order    int    `json:"order"`
}

// CreateDraft creates a draft with its nested sections and survey
// questions in one shot (ADMIN).
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var input struct {
		Title           string          `json:"title" binding:"required"`
		Description     string          `json:"description"`
		Agency          string          `json:"agency"`
		Category        string          `json:"category"`
		Image           string          `json:"image"`
		StartDate       time.Time       `json:"start_date"`
		EndDate         time.Time       `json:"end_date"`
		HearingTime     string          `json:"hearing_time"`
		AffectedParties string          `json:"affected_parties"`
		ProjectDetails  string          `json:"project_details"`
		Version         int             `json:"version"`
		HearingSummary  string          `json:"hearing_summary"`
		Sections        []sectionInput  `json:"sections" binding:"dive"`
		SurveyQuestions []questionInput `json:"survey_questions" binding:"dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	version := input.Version
	if version == 0 {
		version = 1
	}

	draft := models.LawDraft{
		Title:           input.Title,
		Description:     input.Description,
		Agency:          input.Agency,
		Category:        input.Category,
		Image:           input.Image,
		Status:          models.DraftOpen,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		HearingTime:     input.HearingTime,
		AffectedParties: input.AffectedParties,
		ProjectDetails:  input.ProjectDetails,
		Version:         version,
		HearingSummary:  input.HearingSummary,
	}
	for _, s := range input.Sections {
		draft.Sections = append(draft.Sections, models.LawSection{
			SectionNo: s.SectionNo,
			Content:   s.Content,
		})
	}
	for _, q := range input.SurveyQuestions {
		draft.SurveyQuestions = append(draft.SurveyQuestions, models.SurveyQuestion{
			Question: q.Question,
			Order:    q.Order,
		})
	}

	if err := h.db.Create(&draft).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create draft"})
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// UpdateDraft patches draft metadata (ADMIN).
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	draftID := c.Param("id")

	var draft models.LawDraft
	if err := h.db.First(&draft, "id = ?", draftID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]string{
		"title":                     "title",
		"description":               "description",
		"agency":                    "agency",
		"status":                    "status",
		"category":                  "category",
		"image":                     "image",
		"affected_parties":          "affected_parties",
		"hearing_time":              "hearing_time",
		"start_date":                "start_date",
		"end_date":                  "end_date",
		"project_details":           "project_details",
		"version":                   "version",
		"hearing_summary":           "hearing_summary",
		"hearing_summary_published": "hearing_summary_published",
	}

	updates := map[string]interface{}{}
	for key, column := range allowed {
		v, ok := input[key]
		if !ok {
			continue
		}
		if key == "start_date" || key == "end_date" {
			s, ok := v.(string)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be RFC 3339 strings"})
				return
			}
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be RFC 3339 strings"})
				return
			}
			v = parsed
		}
		updates[column] = v
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields supplied"})
		return
	}

	if err := h.db.Model(&draft).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft updated"})
}

// DeleteDraft removes a draft and, through the cascade constraints,
// every section, vote, comment, question and response under it (ADMIN).
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	draftID := c.Param("id")

	var draft models.LawDraft
	if err := h.db.First(&draft, "id = ?", draftID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	if err := h.db.Select("Sections", "SurveyQuestions").Delete(&draft).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}

// AddSection appends a section to an existing draft (ADMIN).
func (h *DraftHandler) AddSection(c *gin.Context) {
	draftID := c.Param("id")

	var input sectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var draft models.LawDraft
	if err := h.db.First(&draft, "id = ?", draftID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	section := models.LawSection{
		LawDraftID: draftID,
		SectionNo:  input.SectionNo,
		Content:    input.Content,
	}
	if err := h.db.Create(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create section"})
		return
	}

	c.JSON(http.StatusCreated, section)
}

// DeleteSection removes a section and its votes and comments (ADMIN).
func (h *DraftHandler) DeleteSection(c *gin.Context) {
	sectionID := c.Param("id")

	var section models.LawSection
	if err := h.db.First(&section, "id = ?", sectionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}

	if err := h.db.Select("Votes", "Comments").Delete(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete section"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted"})
}

// AddQuestion appends a survey question to a draft (ADMIN).
func (h *DraftHandler) AddQuestion(c *gin.Context) {
	draftID := c.Param("id")

	var input questionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var draft models.LawDraft
	if err := h.db.First(&draft, "id = ?", draftID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	question := models.SurveyQuestion{
		LawDraftID: draftID,
		Question:   input.Question,
		Order:      input.Order,
	}
	if err := h.db.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// DeleteQuestion removes a survey question; responses to it cascade
// away, and any respondent whose only answers pointed here disappears
// from aggregation (ADMIN).
func (h *DraftHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.Param("id")

	var question models.SurveyQuestion
	if err := h.db.First(&question, "id = ?", questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if err := h.db.Select("Responses").Delete(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}
