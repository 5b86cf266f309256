package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawhearing/backend/internal/identity"
	"github.com/lawhearing/backend/internal/models"
)

func TestCommentModerationFlow(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	draft := seedDraft(t, db)
	section := draft.Sections[0]
	ctx := context.Background()

	p, err := identity.Resolve("abc1234567", nil)
	require.NoError(t, err)

	comment, err := st.AddComment(ctx, section.ID, p, "Somchai", "This clause is too broad.")
	require.NoError(t, err)
	assert.Equal(t, models.CommentPending, comment.Status)

	// Pending comments stay invisible to citizens.
	visible, err := st.ApprovedComments(ctx, section.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, st.SetCommentStatus(ctx, comment.ID, models.CommentApproved))

	visible, err = st.ApprovedComments(ctx, section.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "This clause is too broad.", visible[0].Content)

	queue, total, err := st.CommentsForModeration(ctx, models.CommentApproved, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, queue, 1)
}

func TestAddCommentUnknownSection(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	seedDraft(t, db)

	p, err := identity.Resolve("abc1234567", nil)
	require.NoError(t, err)

	_, err = st.AddComment(context.Background(), "no-such-section", p, "", "hello")
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestSetCommentStatusUnknownComment(t *testing.T) {
	db := newTestDB(t)
	st := New(db)
	seedDraft(t, db)

	err := st.SetCommentStatus(context.Background(), "missing", models.CommentApproved)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}
