package store

import (
	"testing"

	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/models"
	"github.com/lawhearing/backend/internal/testutil"
)

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.OpenDB(t)
}

func seedDraft(t *testing.T, db *gorm.DB) models.LawDraft {
	return testutil.SeedDraft(t, db)
}
