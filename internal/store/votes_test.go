package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/models"
)

func TestUpsertVoteKeepsOneRowPerSessionAndSection(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	draft := seedDraft(t, db)
	section := draft.Sections[0]
	ctx := context.Background()

	p, err := identity.Resolve("abc1234567", nil)
	require.NoError(t, err)

	vote, err := st.UpsertVote(ctx, section.ID, p, models.VoteAgree)
	require.NoError(t, err)
	assert.Equal(t, models.VoteAgree, vote.Type)

	// Casting again with the other choice switches in place.
	vote, err = st.UpsertVote(ctx, section.ID, p, models.VoteDisagree)
	require.NoError(t, err)
	assert.Equal(t, models.VoteDisagree, vote.Type)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).
		Where("session_id = ? AND section_id = ?", p.SessionID, section.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertVoteUnknownSection(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	seedDraft(t, db)

	p, err := identity.Resolve("abc1234567", nil)
	require.NoError(t, err)

	_, err = st.UpsertVote(context.Background(), "no-such-section", p, models.VoteAgree)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestRemoveVoteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	draft := seedDraft(t, db)
	section := draft.Sections[0]
	ctx := context.Background()

	p, err := identity.Resolve("abc1234567", nil)
	require.NoError(t, err)

	// Removing before any vote exists is a no-op, not an error.
	require.NoError(t, st.RemoveVote(ctx, section.ID, p))

	_, err = st.UpsertVote(ctx, section.ID, p, models.VoteAgree)
	require.NoError(t, err)
	require.NoError(t, st.RemoveVote(ctx, section.ID, p))
	require.NoError(t, st.RemoveVote(ctx, section.ID, p))

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestVotesFromDifferentSessionsCoexist(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	draft := seedDraft(t, db)
	section := draft.Sections[0]
	ctx := context.Background()

	first, err := identity.Resolve("session-one-1111", nil)
	require.NoError(t, err)
	second, err := identity.Resolve("session-two-2222", nil)
	require.NoError(t, err)

	_, err = st.UpsertVote(ctx, section.ID, first, models.VoteAgree)
	require.NoError(t, err)
	_, err = st.UpsertVote(ctx, section.ID, second, models.VoteDisagree)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).
		Where("section_id = ?", section.ID).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestVoteKeepsUserAttributionButKeysOnSession(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	draft := seedDraft(t, db)
	section := draft.Sections[0]
	ctx := context.Background()

	userID := "user-42"
	p, err := identity.Resolve("abc1234567", &userID)
	require.NoError(t, err)

	vote, err := st.UpsertVote(ctx, section.ID, p, models.VoteAgree)
	require.NoError(t, err)
	require.NotNil(t, vote.UserID)
	assert.Equal(t, userID, *vote.UserID)

	// The same session without a login still hits the same row.
	anon, err := identity.Resolve("abc1234567", nil)
	require.NoError(t, err)
	_, err = st.UpsertVote(ctx, section.ID, anon, models.VoteDisagree)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
