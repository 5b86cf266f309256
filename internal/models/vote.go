package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VoteAgree    = "AGREE"
	VoteDisagree = "DISAGREE"
)

// Vote is one participant's stance on one law section. Uniqueness is
// keyed on (session_id, section_id): the same browser session holds at
// most one vote per section regardless of login state. UserID is kept
// for attribution only.
type Vote struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	SessionID string  `gorm:"not null;size:191;uniqueIndex:idx_votes_session_section" json:"session_id"`
	UserID    *string `gorm:"size:36" json:"user_id,omitempty"`
	SectionID string  `gorm:"not null;size:36;uniqueIndex:idx_votes_session_section;index" json:"section_id"`
	Type      string  `gorm:"not null" json:"type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
