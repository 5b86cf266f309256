// Package testutil provides shared test fixtures: an in-memory SQLite
// database migrated with the full schema, and a seeded draft.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lawhearing/backend/internal/models"
)

// OpenDB returns a migrated in-memory database. Connections are capped
// at one because every :memory: connection is its own database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.LawDraft{},
		&models.LawSection{},
		&models.SurveyQuestion{},
		&models.SurveyResponse{},
		&models.Vote{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// SeedDraft creates a draft with two sections and three ordered survey
// questions.
func SeedDraft(t *testing.T, db *gorm.DB) models.LawDraft {
	t.Helper()

	draft := models.LawDraft{
		Title:  "Education Act Amendment",
		Status: models.DraftOpen,
		Sections: []models.LawSection{
			{SectionNo: "Section 1", Content: "Short title."},
			{SectionNo: "Section 2", Content: "Effective date."},
		},
		SurveyQuestions: []models.SurveyQuestion{
			{Question: "Do you agree with the amendment?", Order: 1},
			{Question: "Do you agree with the repeal?", Order: 2},
			{Question: "Do you agree with the oversight measures?", Order: 3},
		},
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	return draft
}
