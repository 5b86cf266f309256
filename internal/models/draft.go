package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DraftOpen   = "OPEN"
	DraftClosed = "CLOSED"
)

// LawDraft is a piece of proposed legislation open for public comment.
// It owns its sections and survey questions; deleting a draft removes
// everything underneath it.
type LawDraft struct {
	ID                      string    `gorm:"primaryKey;size:36" json:"id"`
	Title                   string    `gorm:"not null" json:"title"`
	Description             string    `json:"description"`
	Agency                  string    `json:"agency"`
	Category                string    `json:"category"`
	Image                   string    `json:"image,omitempty"`
	Status                  string    `gorm:"not null;default:OPEN" json:"status"`
	StartDate               time.Time `json:"start_date"`
	EndDate                 time.Time `json:"end_date"`
	HearingTime             string    `json:"hearing_time"`
	AffectedParties         string    `json:"affected_parties"`
	ProjectDetails          string    `json:"project_details,omitempty"`
	Version                 int       `gorm:"default:1" json:"version"`
	HearingSummary          string    `json:"hearing_summary,omitempty"`
	HearingSummaryPublished bool      `gorm:"default:false" json:"hearing_summary_published"`

	Sections        []LawSection     `gorm:"constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	SurveyQuestions []SurveyQuestion `gorm:"constraint:OnDelete:CASCADE" json:"survey_questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *LawDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// LawSection is one numbered clause of a draft, the unit of per-clause
// voting and commenting.
type LawSection struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	LawDraftID string `gorm:"not null;index" json:"law_draft_id"`
	SectionNo  string `gorm:"not null" json:"section_no"`
	Content    string `gorm:"not null" json:"content"`

	Votes    []Vote    `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"votes,omitempty"`
	Comments []Comment `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *LawSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
