package services

import (
	"context"
	"fmt"

	"journal-workflow/models"
	"journal-workflow/repositories"

	"github.com/google/uuid"
)

// StatusChange asks for an assignment to move to Status. The remaining fields carry what
// the matching transition needs.
type StatusChange struct {
	Status                 string
	Reason                 string
	Feedback               *models.RecommendationInput
	ConfidentialComments   string
	SuggestedSubjectAreaID *uuid.UUID
	ReviewerIDs            []uuid.UUID
}

// AssignmentService is the ledger of reviewer and editor assignments. Status changes are
// applied by the workflow engine.
type AssignmentService interface {
	CreateReviewerAssignment(ctx context.Context, actor models.Actor, manuscriptID, reviewerID uuid.UUID) (uuid.UUID, error)
	CreateEditorAssignment(ctx context.Context, actor models.Actor, manuscriptID, editorID uuid.UUID, role models.UserRole) (uuid.UUID, error)
	SetStatus(ctx context.Context, actor models.Actor, assignmentID uuid.UUID, change StatusChange) (string, error)
	ListForManuscript(ctx context.Context, manuscriptID uuid.UUID) (*models.AssignmentList, error)
	// ListForAssignee filters by status when status is not empty.
	ListForAssignee(ctx context.Context, assigneeID uuid.UUID, role models.UserRole, status string) (*models.AssignmentList, error)
}

type assignmentService struct {
	store  repositories.Store
	engine *WorkflowEngine
}

func NewAssignmentService(store repositories.Store, engine *WorkflowEngine) AssignmentService {
	return &assignmentService{store: store, engine: engine}
}

func (s *assignmentService) CreateReviewerAssignment(ctx context.Context, actor models.Actor, manuscriptID, reviewerID uuid.UUID) (uuid.UUID, error) {
	a, err := s.engine.AssignReviewer(ctx, actor, manuscriptID, reviewerID)
	if err != nil {
		return uuid.Nil, err
	}
	return a.ID, nil
}

func (s *assignmentService) CreateEditorAssignment(ctx context.Context, actor models.Actor, manuscriptID, editorID uuid.UUID, role models.UserRole) (uuid.UUID, error) {
	a, err := s.engine.AssignEditor(ctx, actor, manuscriptID, editorID, role)
	if err != nil {
		return uuid.Nil, err
	}
	return a.ID, nil
}

func (s *assignmentService) SetStatus(ctx context.Context, actor models.Actor, assignmentID uuid.UUID, change StatusChange) (string, error) {
	req := models.TransitionRequest{
		EntityID:               assignmentID,
		ActingRole:             actor.Role,
		ActorID:                actor.ID,
		Reason:                 change.Reason,
		Feedback:               change.Feedback,
		ConfidentialComments:   change.ConfidentialComments,
		SuggestedSubjectAreaID: change.SuggestedSubjectAreaID,
		ReviewerIDs:            change.ReviewerIDs,
	}
	// A status no edge reaches becomes an action with no edge, so the engine reports the
	// attempt against the assignment's current state.
	unreachable := models.Action("set_" + change.Status)

	_, err := s.store.Assignments().GetReviewerAssignment(ctx, assignmentID)
	if err == nil {
		action, ok := reviewerActionFor(models.ReviewerAssignmentStatus(change.Status))
		if !ok {
			action = unreachable
		}
		req.Action = action
		status, err := s.engine.TransitionReviewerAssignment(ctx, req)
		return string(status), err
	}
	if !isNotFound(err) {
		return "", err
	}

	action, ok := editorActionFor(models.EditorAssignmentStatus(change.Status))
	if !ok {
		action = unreachable
	}
	req.Action = action
	status, err := s.engine.TransitionEditorAssignment(ctx, req)
	if isNotFound(err) {
		return "", models.NewNotFoundError("assignment", assignmentID)
	}
	return string(status), err
}

func (s *assignmentService) ListForManuscript(ctx context.Context, manuscriptID uuid.UUID) (*models.AssignmentList, error) {
	out := &models.AssignmentList{}
	err := s.store.ReadTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Manuscripts().GetByID(ctx, manuscriptID); err != nil {
			return err
		}
		var err error
		if out.ReviewerAssignments, err = tx.Assignments().ListReviewerAssignments(ctx, manuscriptID); err != nil {
			return err
		}
		out.EditorAssignments, err = tx.Assignments().ListEditorAssignments(ctx, manuscriptID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *assignmentService) ListForAssignee(ctx context.Context, assigneeID uuid.UUID, role models.UserRole, status string) (*models.AssignmentList, error) {
	out := &models.AssignmentList{}

	switch {
	case role == models.RoleReviewer:
		filter := models.ReviewerAssignmentStatus(status)
		if status != "" && filter != models.ReviewerAssigned && !filter.Terminal() {
			return nil, models.NewValidationError("status", fmt.Sprintf("%q is not a reviewer assignment status", status))
		}
		all, err := s.store.Assignments().ListReviewerAssignmentsByReviewer(ctx, assigneeID)
		if err != nil {
			return nil, err
		}
		for _, a := range all {
			if status == "" || a.Status == filter {
				out.ReviewerAssignments = append(out.ReviewerAssignments, a)
			}
		}
	case models.EditorRole(role):
		filter := models.EditorAssignmentStatus(status)
		if _, ok := editorEdges[filter]; status != "" && !ok && !filter.Terminal() {
			return nil, models.NewValidationError("status", fmt.Sprintf("%q is not an editor assignment status", status))
		}
		all, err := s.store.Assignments().ListEditorAssignmentsByEditor(ctx, assigneeID, role)
		if err != nil {
			return nil, err
		}
		for _, a := range all {
			if status == "" || a.Status == filter {
				out.EditorAssignments = append(out.EditorAssignments, a)
			}
		}
	default:
		return nil, models.NewValidationError("role", fmt.Sprintf("%s does not hold assignments", role))
	}
	return out, nil
}
