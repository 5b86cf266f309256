package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/models"
)

// SurveyAnswer is one answer within a submission batch.
type SurveyAnswer struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required,oneof=AGREE DISAGREE"`
	Comment    string `json:"comment"`
}

// ErrEmptySubmission rejects a batch with no answers before any store
// access.
var ErrEmptySubmission = errors.New("empty submission")

// SubmitSurvey records a batch of answers in one transaction: either
// every answer in the batch lands or none of it does. A question the
// participant answered before is overwritten in place, so partial
// submissions accumulate across submit actions without discarding
// earlier answers.
func (s *Store) SubmitSurvey(ctx context.Context, draftID string, p identity.Participant, answers []SurveyAnswer) error {
	if len(answers) == 0 {
		return ErrEmptySubmission
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range answers {
			var question models.SurveyQuestion
			err := tx.Select("id").
				Where("id = ? AND law_draft_id = ?", a.QuestionID, draftID).
				First(&question).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTargetNotFound
				}
				return err
			}

			resp := models.SurveyResponse{
				SessionID:        p.SessionID,
				UserID:           p.UserID,
				SurveyQuestionID: a.QuestionID,
				Answer:           a.Answer,
				Comment:          a.Comment,
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "session_id"}, {Name: "survey_question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"answer", "comment", "updated_at"}),
			}).Create(&resp).Error
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return ErrTargetNotFound
		}
		return classify(err)
	}
	return nil
}
