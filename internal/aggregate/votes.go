// Package aggregate computes read-side views over recorded responses.
// Everything here is derived from source rows on every read; there is
// no cache and therefore nothing to invalidate.
package aggregate

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/models"
)

// Tally holds agree/disagree counts for one section or one draft.
type Tally struct {
	Agree    int `json:"agree"`
	Disagree int `json:"disagree"`
}

func (t Tally) Total() int {
	return t.Agree + t.Disagree
}

// AgreePercent rounds agree/total to whole percent, 0 when no votes.
func (t Tally) AgreePercent() int {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(t.Agree) / float64(total) * 100))
}

// DisagreePercent is derived from AgreePercent so the two always sum to
// exactly 100 when votes exist, with no independent-rounding drift.
func (t Tally) DisagreePercent() int {
	if t.Total() == 0 {
		return 0
	}
	return 100 - t.AgreePercent()
}

// VoteAggregator counts votes straight off the vote rows.
type VoteAggregator struct {
	db *gorm.DB
}

func NewVoteAggregator(db *gorm.DB) *VoteAggregator {
	return &VoteAggregator{db: db}
}

// Tally counts agree/disagree votes for one section.
func (a *VoteAggregator) Tally(ctx context.Context, sectionID string) (Tally, error) {
	var agree, disagree int64
	err := a.db.WithContext(ctx).Model(&models.Vote{}).
		Where("section_id = ? AND type = ?", sectionID, models.VoteAgree).
		Count(&agree).Error
	if err != nil {
		return Tally{}, err
	}
	err = a.db.WithContext(ctx).Model(&models.Vote{}).
		Where("section_id = ? AND type = ?", sectionID, models.VoteDisagree).
		Count(&disagree).Error
	if err != nil {
		return Tally{}, err
	}
	return Tally{Agree: int(agree), Disagree: int(disagree)}, nil
}

// DraftTally sums vote counts across every section of a draft. There is
// no stored counter; the aggregate can never drift from the rows.
func (a *VoteAggregator) DraftTally(ctx context.Context, draftID string) (Tally, error) {
	var agree, disagree int64
	base := func() *gorm.DB {
		return a.db.WithContext(ctx).Model(&models.Vote{}).
			Joins("JOIN law_sections ON law_sections.id = votes.section_id").
			Where("law_sections.law_draft_id = ?", draftID)
	}
	if err := base().Where("votes.type = ?", models.VoteAgree).Count(&agree).Error; err != nil {
		return Tally{}, err
	}
	if err := base().Where("votes.type = ?", models.VoteDisagree).Count(&disagree).Error; err != nil {
		return Tally{}, err
	}
	return Tally{Agree: int(agree), Disagree: int(disagree)}, nil
}
