package aggregate

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/models"
)

// Answer is one question's answer inside a respondent record, carrying
// the question text and order so viewers need no second lookup.
type Answer struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
	Order        int    `json:"order"`
	Answer       string `json:"answer"`
	Comment      string `json:"comment,omitempty"`
}

// Respondent is the aggregated view of one participant's answers within
// a draft: one record per respondent, however many submit actions it
// took to accumulate them.
type Respondent struct {
	SessionID   string    `json:"session_id"`
	UserID      *string   `json:"user_id,omitempty"`
	DisplayName string    `json:"display_name"`
	LatestAt    time.Time `json:"latest_at"`
	Answers     []Answer  `json:"answers"`
}

// SurveyAggregator groups raw survey responses into respondent records.
type SurveyAggregator struct {
	db *gorm.DB
}

func NewSurveyAggregator(db *gorm.DB) *SurveyAggregator {
	return &SurveyAggregator{db: db}
}

type respondentRow struct {
	SessionID        string
	UserID           *string
	SurveyQuestionID string
	Answer           string
	Comment          string
	UpdatedAt        time.Time
	Question         string
	Order            int `gorm:"column:display_order"`
	UserName         string
}

// ResponsesByRespondent returns one record per respondent for a draft,
// answers sorted by question order, respondents sorted by most recent
// activity first.
//
// Grouping is keyed on user id when present, else session token —
// exactly how uniqueness was enforced at write time, so a single
// respondent never fragments into multiple records. The inner join on
// survey_questions drops any response whose question no longer exists.
func (a *SurveyAggregator) ResponsesByRespondent(ctx context.Context, draftID string) ([]Respondent, error) {
	var rows []respondentRow
	err := a.db.WithContext(ctx).Model(&models.SurveyResponse{}).
		Select("survey_responses.*, survey_questions.question AS question, survey_questions.display_order, users.name AS user_name").
		Joins("JOIN survey_questions ON survey_questions.id = survey_responses.survey_question_id").
		Joins("LEFT JOIN users ON users.id = survey_responses.user_id").
		Where("survey_questions.law_draft_id = ?", draftID).
		Order("survey_responses.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*Respondent)
	var order []string
	for _, row := range rows {
		key := row.SessionID
		if row.UserID != nil && *row.UserID != "" {
			key = *row.UserID
		}
		r, ok := groups[key]
		if !ok {
			name := row.UserName
			if name == "" {
				name = anonymousLabel(row.SessionID)
			}
			r = &Respondent{
				SessionID:   row.SessionID,
				UserID:      row.UserID,
				DisplayName: name,
			}
			groups[key] = r
			order = append(order, key)
		}
		if row.UpdatedAt.After(r.LatestAt) {
			r.LatestAt = row.UpdatedAt
		}
		r.Answers = append(r.Answers, Answer{
			QuestionID:   row.SurveyQuestionID,
			QuestionText: row.Question,
			Order:        row.Order,
			Answer:       row.Answer,
			Comment:      row.Comment,
		})
	}

	out := make([]Respondent, 0, len(order))
	for _, key := range order {
		r := groups[key]
		sort.SliceStable(r.Answers, func(i, j int) bool {
			return r.Answers[i].Order < r.Answers[j].Order
		})
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LatestAt.After(out[j].LatestAt)
	})
	return out, nil
}

func anonymousLabel(sessionID string) string {
	if len(sessionID) > 8 {
		return "Anonymous (" + sessionID[:8] + "...)"
	}
	return "Anonymous"
}
