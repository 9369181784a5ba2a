package models

import (
	"time"

	"github.com/google/uuid"
)

type RecommendationDecision string

const (
	RecommendAccept        RecommendationDecision = "accept"
	RecommendMinorRevision RecommendationDecision = "minor_revision"
	RecommendMajorRevision RecommendationDecision = "major_revision"
	RecommendReject        RecommendationDecision = "reject"
)

func (d RecommendationDecision) Valid() bool {
	switch d {
	case RecommendAccept, RecommendMinorRevision, RecommendMajorRevision, RecommendReject:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5
)

// Recommendation is immutable once filed. One per (manuscript, role holder, role kind).
type Recommendation struct {
	ID             uuid.UUID              `json:"id" gorm:"type:char(36);primaryKey"`
	ManuscriptID   uuid.UUID              `json:"manuscript_id" gorm:"type:char(36);not null;uniqueIndex:idx_recommendation_holder"`
	RoleHolderID   uuid.UUID              `json:"role_holder_id" gorm:"type:char(36);not null;uniqueIndex:idx_recommendation_holder"`
	RoleKind       UserRole               `json:"role_kind" gorm:"size:32;not null;uniqueIndex:idx_recommendation_holder"`
	Decision       RecommendationDecision `json:"recommendation" gorm:"size:32;not null"`
	Summary        string                 `json:"summary" gorm:"type:text;not null"`
	Justification  string                 `json:"justification" gorm:"type:text"`
	Rating         int                    `json:"rating" gorm:"not null"`
	PublicComments *string                `json:"public_comments,omitempty" gorm:"type:text"`
	SubmittedAt    time.Time              `json:"submitted_at" gorm:"not null"`
}

// RecommendationInput is what a role holder files.
type RecommendationInput struct {
	ManuscriptID   uuid.UUID
	RoleKind       UserRole
	RoleHolderID   uuid.UUID
	Decision       RecommendationDecision
	Summary        string
	Justification  string
	Rating         int
	PublicComments string
}
