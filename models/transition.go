package models

import (
	"time"

	"github.com/google/uuid"
)

type EntityKind string

const (
	EntityManuscript         EntityKind = "manuscript"
	EntityReviewerAssignment EntityKind = "reviewer_assignment"
	EntityEditorAssignment   EntityKind = "editor_assignment"
	EntityRecommendation     EntityKind = "recommendation"
)

type Action string

const (
	ActionSubmit             Action = "submit"
	ActionAcceptForReview    Action = "accept_for_review"
	ActionAccept             Action = "accept"
	ActionReject             Action = "reject"
	ActionRequestRevisions   Action = "request_revisions"
	ActionResubmit           Action = "resubmit"
	ActionAssign             Action = "assign"
	ActionSubmitFeedback     Action = "submit_feedback"
	ActionDecline            Action = "decline"
	ActionBeginReviewCycle   Action = "begin_review_cycle"
	ActionAdvance            Action = "advance"
	ActionFileRecommendation Action = "file_recommendation"
)

// TransitionRequest is one call into the workflow engine.
type TransitionRequest struct {
	EntityID   uuid.UUID
	Action     Action
	ActingRole UserRole
	ActorID    uuid.UUID

	// Reason accompanies manuscript decisions and is the rejection reason for decline.
	Reason string
	// Feedback is required by submit_feedback and file_recommendation.
	Feedback               *RecommendationInput
	ConfidentialComments   string
	SuggestedSubjectAreaID *uuid.UUID
	// ReviewerIDs are assigned together with begin_review_cycle.
	ReviewerIDs []uuid.UUID
}

func (r TransitionRequest) Actor() Actor {
	return Actor{ID: r.ActorID, Role: r.ActingRole}
}

// TransitionRecord is one row of the status history. Rows are only ever appended.
type TransitionRecord struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ManuscriptID uuid.UUID  `json:"manuscript_id" gorm:"type:char(36);not null;uniqueIndex:idx_history_sequence"`
	Sequence     int64      `json:"sequence" gorm:"not null;uniqueIndex:idx_history_sequence"`
	Entity       EntityKind `json:"entity" gorm:"size:32;not null"`
	EntityID     uuid.UUID  `json:"entity_id" gorm:"type:char(36);not null"`
	FromState    string     `json:"from_state" gorm:"size:32"`
	ToState      string     `json:"to_state" gorm:"size:32;not null"`
	Action       Action     `json:"action" gorm:"size:32;not null"`
	ActorID      uuid.UUID  `json:"actor_id" gorm:"type:char(36);not null"`
	ActingRole   UserRole   `json:"acting_role" gorm:"size:32;not null"`
	Reason       *string    `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null"`
}

func (TransitionRecord) TableName() string {
	return "manuscript_status_history"
}
