package config

import (
	"fmt"

	"journal-workflow/models"

	"gorm.io/gorm"
)

// Partial unique indexes backing the one-active-assignment rules. MySQL has no partial
// indexes; there the per-manuscript row lock taken by the engine is the only guard.
var postgresIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviewer_assignment_active
		ON reviewer_assignments (manuscript_id, reviewer_id) WHERE status = 'assigned'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_editor_assignment_active
		ON editor_assignments (manuscript_id, role) WHERE status <> 'completed'`,
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.SubjectArea{},
		&models.JournalSection{},
		&models.Manuscript{},
		&models.ReviewerAssignment{},
		&models.EditorAssignment{},
		&models.Recommendation{},
		&models.TransitionRecord{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, stmt := range postgresIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
