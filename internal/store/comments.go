package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/models"
)

// AddComment records a citizen comment on a section. Comments enter the
// moderation queue as PENDING and share the participant+target pattern
// with votes, but carry no uniqueness constraint: one session may
// comment on the same section many times.
func (s *Store) AddComment(ctx context.Context, sectionID string, p identity.Participant, authorName, content string) (*models.Comment, error) {
	var section models.LawSection
	if err := s.db.WithContext(ctx).Select("id").First(&section, "id = ?", sectionID).Error; err != nil {
		return nil, classify(err)
	}

	comment := models.Comment{
		SectionID:  sectionID,
		SessionID:  p.SessionID,
		UserID:     p.UserID,
		AuthorName: authorName,
		Content:    content,
		Status:     models.CommentPending,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, classify(err)
	}
	return &comment, nil
}

// ApprovedComments returns the comments visible to citizens for a
// section, newest first.
func (s *Store) ApprovedComments(ctx context.Context, sectionID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("section_id = ? AND status = ?", sectionID, models.CommentApproved).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, ErrStorageUnavailable
	}
	return comments, nil
}

// CommentsForModeration lists comments for the admin queue, optionally
// filtered by status, newest first.
func (s *Store) CommentsForModeration(ctx context.Context, status string, limit, offset int) ([]models.Comment, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Comment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ErrStorageUnavailable
	}

	var comments []models.Comment
	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&comments).Error
	if err != nil {
		return nil, 0, ErrStorageUnavailable
	}
	return comments, total, nil
}

// SetCommentStatus moves a comment through the moderation states.
func (s *Store) SetCommentStatus(ctx context.Context, commentID, status string) error {
	res := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("status", status)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTargetNotFound
	}
	return nil
}

// SectionWithDraft resolves a section id to its owning draft, used by
// handlers that need to revalidate draft-level reads.
func (s *Store) SectionWithDraft(ctx context.Context, sectionID string) (*models.LawSection, error) {
	var section models.LawSection
	err := s.db.WithContext(ctx).First(&section, "id = ?", sectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, ErrStorageUnavailable
	}
	return &section, nil
}
