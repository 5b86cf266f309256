package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/models"
)

// UpsertVote records or replaces the participant's vote on a section as
// a single atomic write. Two concurrent requests for the same
// (session, section) key converge on one row whose type is the last
// committed value; switching AGREE and DISAGREE is the same operation.
func (s *Store) UpsertVote(ctx context.Context, sectionID string, p identity.Participant, voteType string) (*models.Vote, error) {
	var section models.LawSection
	if err := s.db.WithContext(ctx).Select("id").First(&section, "id = ?", sectionID).Error; err != nil {
		return nil, classify(err)
	}

	vote := models.Vote{
		SessionID: p.SessionID,
		UserID:    p.UserID,
		SectionID: sectionID,
		Type:      voteType,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "section_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "updated_at"}),
	}).Create(&vote).Error
	if err != nil {
		return nil, classify(err)
	}

	// The insert path leaves the struct populated; after a conflict
	// update, re-read so the caller sees the surviving row.
	var out models.Vote
	if err := s.db.WithContext(ctx).
		Where("session_id = ? AND section_id = ?", p.SessionID, sectionID).
		First(&out).Error; err != nil {
		return nil, classify(err)
	}
	return &out, nil
}

// RemoveVote deletes the participant's vote on a section. Deleting a
// key with no row is a no-op; tallies reflect the deletion immediately
// because counts are always computed from rows.
func (s *Store) RemoveVote(ctx context.Context, sectionID string, p identity.Participant) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND section_id = ?", p.SessionID, sectionID).
		Delete(&models.Vote{}).Error
	if err != nil {
		return classify(err)
	}
	return nil
}

// VoteFor returns the participant's current vote on a section, or nil
// when none exists.
func (s *Store) VoteFor(ctx context.Context, sectionID string, p identity.Participant) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND section_id = ?", p.SessionID, sectionID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, ErrStorageUnavailable
	}
	return &vote, nil
}
