package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ManuscriptStatus string

const (
	StatusSubmitted          ManuscriptStatus = "submitted"
	StatusUnderReview        ManuscriptStatus = "under_review"
	StatusRevisionsRequested ManuscriptStatus = "revisions_requested"
	StatusAccepted           ManuscriptStatus = "accepted"
	StatusRejected           ManuscriptStatus = "rejected"
)

// OpenStatuses lists every status a manuscript can be in before a final decision.
var OpenStatuses = []ManuscriptStatus{StatusSubmitted, StatusUnderReview, StatusRevisionsRequested}

func (s ManuscriptStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusRevisionsRequested, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

func (s ManuscriptStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Manuscript struct {
	ID                    uuid.UUID                      `json:"id" gorm:"type:char(36);primaryKey"`
	Title                 string                         `json:"title" gorm:"size:255;not null"`
	Abstract              string                         `json:"abstract" gorm:"type:text;not null"`
	Keywords              datatypes.JSONSlice[string]    `json:"keywords"`
	SubjectAreaID         uuid.UUID                      `json:"subject_area_id" gorm:"type:char(36);not null"`
	JournalSectionID      uuid.UUID                      `json:"journal_section_id" gorm:"type:char(36);not null"`
	Language              string                         `json:"language" gorm:"size:50"`
	CorrespondingAuthorID uuid.UUID                      `json:"corresponding_author_id" gorm:"type:char(36);index;not null"`
	CoAuthorIDs           datatypes.JSONSlice[uuid.UUID] `json:"co_author_ids"`
	ManuscriptFile        string                         `json:"manuscript_file" gorm:"size:512;not null"`
	SupplementaryFiles    datatypes.JSONSlice[string]    `json:"supplementary_files"`
	Status                ManuscriptStatus               `json:"status" gorm:"size:32;index;not null"`
	SubmittedAt           time.Time                      `json:"submitted_at" gorm:"not null"`
	UpdatedAt             time.Time                      `json:"updated_at"`
}
