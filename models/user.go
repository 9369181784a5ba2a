package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAuthor          UserRole = "author"
	RoleReviewer        UserRole = "reviewer"
	RoleAssociateEditor UserRole = "associate_editor"
	RoleAreaEditor      UserRole = "area_editor"
	RoleEditorInChief   UserRole = "editor_in_chief"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAuthor, RoleReviewer, RoleAssociateEditor, RoleAreaEditor, RoleEditorInChief:
		return true
	}
	return false
}

// Editorial reports whether the role needs directory approval before acting.
func (r UserRole) Editorial() bool {
	return r.Valid() && r != RoleAuthor
}

// User is a row of the identity directory. The directory service owns the table;
// this module only reads role and approval flags from it.
type User struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username   string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role       UserRole  `json:"role" gorm:"size:32;not null;default:'author'"`
	IsApproved bool      `json:"is_approved" gorm:"not null;default:false"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Actor is the caller of a workflow operation: who they are and which role they claim.
type Actor struct {
	ID   uuid.UUID
	Role UserRole
}
