package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/models"
	"github.com/lawhearing/backend/internal/store"
	"github.com/lawhearing/backend/internal/testutil"
)

func TestTallyScenario(t *testing.T) {
	db := testutil.OpenDB(t)
	st := store.New(db)
	agg := NewVoteAggregator(db)
	draft := testutil.SeedDraft(t, db)
	section := draft.Sections[0]
	ctx := context.Background()

	p, err := identity.Resolve("abc1234567", nil)
	require.NoError(t, err)

	tally, err := agg.Tally(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
	assert.Equal(t, 0, tally.AgreePercent())
	assert.Equal(t, 0, tally.DisagreePercent())

	_, err = st.UpsertVote(ctx, section.ID, p, models.VoteAgree)
	require.NoError(t, err)

	tally, err = agg.Tally(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Agree: 1, Disagree: 0}, tally)
	assert.Equal(t, 100, tally.AgreePercent())
	assert.Equal(t, 0, tally.DisagreePercent())

	// A second cast from the same session switches, never accumulates.
	_, err = st.UpsertVote(ctx, section.ID, p, models.VoteDisagree)
	require.NoError(t, err)

	tally, err = agg.Tally(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Agree: 0, Disagree: 1}, tally)

	require.NoError(t, st.RemoveVote(ctx, section.ID, p))

	tally, err = agg.Tally(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
}

func TestTallyMatchesRowCount(t *testing.T) {
	db := testutil.OpenDB(t)
	st := store.New(db)
	agg := NewVoteAggregator(db)
	draft := testutil.SeedDraft(t, db)
	section := draft.Sections[0]
	ctx := context.Background()

	sessions := []string{
		"session-a-000001", "session-b-000002", "session-c-000003",
		"session-d-000004", "session-e-000005",
	}
	for i, s := range sessions {
		p, err := identity.Resolve(s, nil)
		require.NoError(t, err)
		choice := models.VoteAgree
		if i%2 == 1 {
			choice = models.VoteDisagree
		}
		_, err = st.UpsertVote(ctx, section.ID, p, choice)
		require.NoError(t, err)
	}

	tally, err := agg.Tally(ctx, section.ID)
	require.NoError(t, err)

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).
		Where("section_id = ?", section.ID).
		Count(&rows).Error)
	assert.Equal(t, int(rows), tally.Total())
	assert.Equal(t, Tally{Agree: 3, Disagree: 2}, tally)
}

func TestPercentagesSumToHundred(t *testing.T) {
	cases := []Tally{
		{Agree: 1, Disagree: 2},
		{Agree: 2, Disagree: 1},
		{Agree: 1, Disagree: 6},
		{Agree: 33, Disagree: 67},
		{Agree: 1, Disagree: 0},
	}
	for _, tally := range cases {
		assert.Equal(t, 100, tally.AgreePercent()+tally.DisagreePercent(),
			"tally %+v", tally)
	}
	assert.Equal(t, 0, Tally{}.AgreePercent()+Tally{}.DisagreePercent())
}

func TestDraftTallySumsSections(t *testing.T) {
	db := testutil.OpenDB(t)
	st := store.New(db)
	agg := NewVoteAggregator(db)
	draft := testutil.SeedDraft(t, db)
	ctx := context.Background()

	p1, err := identity.Resolve("session-a-000001", nil)
	require.NoError(t, err)
	p2, err := identity.Resolve("session-b-000002", nil)
	require.NoError(t, err)

	_, err = st.UpsertVote(ctx, draft.Sections[0].ID, p1, models.VoteAgree)
	require.NoError(t, err)
	_, err = st.UpsertVote(ctx, draft.Sections[1].ID, p1, models.VoteDisagree)
	require.NoError(t, err)
	_, err = st.UpsertVote(ctx, draft.Sections[1].ID, p2, models.VoteAgree)
	require.NoError(t, err)

	// Votes on another draft must not leak into this one.
	other := testutil.SeedDraft(t, db)
	_, err = st.UpsertVote(ctx, other.Sections[0].ID, p1, models.VoteAgree)
	require.NoError(t, err)

	tally, err := agg.DraftTally(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Agree: 2, Disagree: 1}, tally)
}
