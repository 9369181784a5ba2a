package models

import (
	"time"

	"github.com/google/uuid"
)

type ReviewerAssignmentStatus string

const (
	ReviewerAssigned  ReviewerAssignmentStatus = "assigned"
	ReviewerCompleted ReviewerAssignmentStatus = "completed"
	ReviewerRejected  ReviewerAssignmentStatus = "rejected"
)

func (s ReviewerAssignmentStatus) Terminal() bool {
	return s == ReviewerCompleted || s == ReviewerRejected
}

type ReviewerAssignment struct {
	ID                     uuid.UUID                `json:"id" gorm:"type:char(36);primaryKey"`
	ManuscriptID           uuid.UUID                `json:"manuscript_id" gorm:"type:char(36);index;not null"`
	ReviewerID             uuid.UUID                `json:"reviewer_id" gorm:"type:char(36);index;not null"`
	AssignedByID           uuid.UUID                `json:"assigned_by_id" gorm:"type:char(36);not null"`
	AssignedDate           time.Time                `json:"assigned_date" gorm:"not null"`
	Status                 ReviewerAssignmentStatus `json:"status" gorm:"size:32;not null"`
	RejectionReason        *string                  `json:"rejection_reason,omitempty" gorm:"type:text"`
	SuggestedSubjectAreaID *uuid.UUID               `json:"suggested_subject_area_id,omitempty" gorm:"type:char(36)"`
	ConfidentialComments   *string                  `json:"-" gorm:"type:text"`
	UpdatedAt              time.Time                `json:"updated_at"`
}

func (a ReviewerAssignment) Active() bool {
	return a.Status == ReviewerAssigned
}

type EditorAssignmentStatus string

const (
	EditorAssigned   EditorAssignmentStatus = "assigned"
	EditorReviewing  EditorAssignmentStatus = "reviewing"
	EditorInProgress EditorAssignmentStatus = "in_progress"
	EditorCompleted  EditorAssignmentStatus = "completed"
)

func (s EditorAssignmentStatus) Terminal() bool {
	return s == EditorCompleted
}

// EditorAssignment links an associate editor or an area editor to a manuscript.
type EditorAssignment struct {
	ID           uuid.UUID              `json:"id" gorm:"type:char(36);primaryKey"`
	ManuscriptID uuid.UUID              `json:"manuscript_id" gorm:"type:char(36);index;not null"`
	EditorID     uuid.UUID              `json:"editor_id" gorm:"type:char(36);index;not null"`
	Role         UserRole               `json:"role" gorm:"size:32;not null"`
	AssignedByID uuid.UUID              `json:"assigned_by_id" gorm:"type:char(36);not null"`
	AssignedDate time.Time              `json:"assigned_date" gorm:"not null"`
	Status       EditorAssignmentStatus `json:"status" gorm:"size:32;not null"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func (a EditorAssignment) Active() bool {
	return !a.Status.Terminal()
}

// EditorRole reports whether role can be the tag of an EditorAssignment.
func EditorRole(role UserRole) bool {
	return role == RoleAssociateEditor || role == RoleAreaEditor
}

// AssignmentList groups reviewer and editor assignments, for one manuscript or one assignee.
type AssignmentList struct {
	ReviewerAssignments []ReviewerAssignment `json:"reviewer_assignments"`
	EditorAssignments   []EditorAssignment   `json:"editor_assignments"`
}
