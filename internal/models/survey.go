package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyQuestion belongs to exactly one draft. Order is a display sort
// key only and is not required to be unique within a draft.
type SurveyQuestion struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	LawDraftID string `gorm:"not null;index" json:"law_draft_id"`
	Question   string `gorm:"not null" json:"question"`
	Order      int    `gorm:"column:display_order;default:0" json:"order"`

	Responses []SurveyResponse `gorm:"foreignKey:SurveyQuestionID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *SurveyQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// SurveyResponse is one participant's answer to one question. Same
// compound-key discipline as Vote: at most one row per
// (session_id, survey_question_id).
type SurveyResponse struct {
	ID               string  `gorm:"primaryKey;size:36" json:"id"`
	SessionID        string  `gorm:"not null;size:191;uniqueIndex:idx_responses_session_question" json:"session_id"`
	UserID           *string `gorm:"size:36" json:"user_id,omitempty"`
	SurveyQuestionID string  `gorm:"not null;size:36;uniqueIndex:idx_responses_session_question;index" json:"survey_question_id"`
	Answer           string  `gorm:"not null" json:"answer"`
	Comment          string  `json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *SurveyResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
