package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ValidationError carries field-level messages for malformed or missing input.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity string, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IllegalTransitionError names the (from, action) pair that has no edge.
type IllegalTransitionError struct {
	Entity EntityKind
	From   string
	Action Action
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	msg := fmt.Sprintf("illegal transition: %s cannot %s from %s", e.Entity, e.Action, e.From)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

type TerminalStateError struct {
	Entity EntityKind
	ID     uuid.UUID
	State  string
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("%s %s is in terminal state %s", e.Entity, e.ID, e.State)
}

// TerminalManuscriptError rejects new work against an accepted or rejected manuscript.
type TerminalManuscriptError struct {
	ManuscriptID uuid.UUID
	Status       ManuscriptStatus
}

func (e *TerminalManuscriptError) Error() string {
	return fmt.Sprintf("manuscript %s is %s and accepts no further work", e.ManuscriptID, e.Status)
}

type UnauthorizedRoleError struct {
	ActorID uuid.UUID
	Role    UserRole
	Action  string
	Reason  string
}

func (e *UnauthorizedRoleError) Error() string {
	return fmt.Sprintf("actor %s (%s) may not %s: %s", e.ActorID, e.Role, e.Action, e.Reason)
}

type DuplicateAssignmentError struct {
	ManuscriptID uuid.UUID
	AssigneeID   uuid.UUID
	Role         UserRole
	// Filed is set when the assignee already filed their recommendation in this role.
	Filed bool
}

func (e *DuplicateAssignmentError) Error() string {
	if e.Filed {
		return fmt.Sprintf("%s %s already filed a recommendation for manuscript %s", e.Role, e.AssigneeID, e.ManuscriptID)
	}
	if e.Role == RoleReviewer {
		return fmt.Sprintf("reviewer %s already has an active assignment on manuscript %s", e.AssigneeID, e.ManuscriptID)
	}
	return fmt.Sprintf("manuscript %s already has an active %s assignment", e.ManuscriptID, e.Role)
}

type DuplicateRecommendationError struct {
	ManuscriptID uuid.UUID
	RoleHolderID uuid.UUID
	RoleKind     UserRole
}

func (e *DuplicateRecommendationError) Error() string {
	return fmt.Sprintf("%s %s already filed a recommendation for manuscript %s", e.RoleKind, e.RoleHolderID, e.ManuscriptID)
}
