package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CommentPending  = "PENDING"
	CommentApproved = "APPROVED"
	CommentRejected = "REJECTED"
)

// Comment is a free-text remark on one section. Comments go through
// moderation: only APPROVED comments are shown to citizens.
type Comment struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	SectionID  string  `gorm:"not null;size:36;index" json:"section_id"`
	SessionID  string  `gorm:"not null;size:191" json:"session_id"`
	UserID     *string `gorm:"size:36" json:"user_id,omitempty"`
	AuthorName string  `json:"author_name"`
	Content    string  `gorm:"not null" json:"content"`
	Status     string  `gorm:"not null;default:PENDING;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Comment) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
