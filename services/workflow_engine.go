package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"journal-workflow/config"
	"journal-workflow/models"
	"journal-workflow/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// WorkflowEngine is the only writer of status fields. Every mutation runs under the
// manuscript's lock inside one store transaction, so a failed call leaves nothing behind.
type WorkflowEngine struct {
	store      repositories.Store
	directory  RoleDirectory
	references ReferenceService
	policy     config.WorkflowPolicy
	log        *logrus.Entry
	now        func() time.Time
	locks      *keyedMutex
}

func NewWorkflowEngine(store repositories.Store, directory RoleDirectory, references ReferenceService, policy config.WorkflowPolicy, log *logrus.Entry) *WorkflowEngine {
	return &WorkflowEngine{
		store:      store,
		directory:  directory,
		references: references,
		policy:     policy,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
		locks:      newKeyedMutex(),
	}
}

func (e *WorkflowEngine) Policy() config.WorkflowPolicy {
	return e.policy
}

// withManuscript serializes fn against every other mutation of the manuscript and runs it
// in a transaction holding the manuscript row.
func (e *WorkflowEngine) withManuscript(ctx context.Context, manuscriptID uuid.UUID, fn func(tx repositories.Store, m *models.Manuscript) error) error {
	unlock := e.locks.Lock(manuscriptID)
	defer unlock()

	return e.store.WithTx(ctx, func(tx repositories.Store) error {
		m, err := tx.Manuscripts().GetForUpdate(ctx, manuscriptID)
		if err != nil {
			return err
		}
		return fn(tx, m)
	})
}

func validateRequest(req models.TransitionRequest) error {
	verr := &models.ValidationError{}
	if req.EntityID == uuid.Nil {
		verr.Add("entity_id", "is required")
	}
	if req.Action == "" {
		verr.Add("action", "is required")
	}
	if !req.ActingRole.Valid() {
		verr.Add("acting_role", "is not a known role")
	}
	if req.ActorID == uuid.Nil {
		verr.Add("actor_id", "is required")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// authorize checks that actor claims one of roles and that the directory agrees.
func (e *WorkflowEngine) authorize(ctx context.Context, actor models.Actor, action string, roles ...models.UserRole) error {
	denied := func(reason string) error {
		return &models.UnauthorizedRoleError{ActorID: actor.ID, Role: actor.Role, Action: action, Reason: reason}
	}

	permitted := false
	for _, r := range roles {
		if actor.Role == r {
			permitted = true
			break
		}
	}
	if !permitted {
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		return denied("requires role " + strings.Join(names, " or "))
	}

	info, err := e.directory.ResolveRole(ctx, actor.ID)
	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		return denied("actor is not in the directory")
	}
	if err != nil {
		return fmt.Errorf("resolve role of %s: %w", actor.ID, err)
	}
	if !info.Active {
		return denied("account is inactive")
	}
	if info.Role != actor.Role {
		return denied(fmt.Sprintf("directory lists the actor as %s", info.Role))
	}
	if actor.Role.Editorial() && !info.Approved {
		return denied("role is not approved")
	}
	return nil
}

// resolveAssignee makes sure a new assignee exists with the expected, approved role.
func (e *WorkflowEngine) resolveAssignee(ctx context.Context, assigneeID uuid.UUID, role models.UserRole) error {
	info, err := e.directory.ResolveRole(ctx, assigneeID)
	if err != nil {
		return err
	}
	switch {
	case info.Role != role:
		return models.NewValidationError("assignee_id", fmt.Sprintf("user is a %s, not a %s", info.Role, role))
	case !info.Active:
		return models.NewValidationError("assignee_id", "user is inactive")
	case !info.Approved:
		return models.NewValidationError("assignee_id", fmt.Sprintf("user is not an approved %s", role))
	}
	return nil
}

func (e *WorkflowEngine) record(ctx context.Context, tx repositories.Store, manuscriptID uuid.UUID, entity models.EntityKind, entityID uuid.UUID, from, to string, action models.Action, actor models.Actor, reason string) error {
	rec := &models.TransitionRecord{
		ID:           uuid.New(),
		ManuscriptID: manuscriptID,
		Entity:       entity,
		EntityID:     entityID,
		FromState:    from,
		ToState:      to,
		Action:       action,
		ActorID:      actor.ID,
		ActingRole:   actor.Role,
		CreatedAt:    e.now(),
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		rec.Reason = &reason
	}
	if err := tx.History().Append(ctx, rec); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (e *WorkflowEngine) logTransition(manuscriptID uuid.UUID, entity models.EntityKind, action models.Action, from, to string, actor models.Actor) {
	e.log.WithFields(logrus.Fields{
		"manuscript_id": manuscriptID,
		"entity":        entity,
		"action":        action,
		"from":          from,
		"to":            to,
		"actor_id":      actor.ID,
	}).Info("workflow transition")
}

// TransitionManuscript applies an editor-in-chief decision or an author resubmission.
func (e *WorkflowEngine) TransitionManuscript(ctx context.Context, req models.TransitionRequest) (models.ManuscriptStatus, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	actor := req.Actor()

	var from, to models.ManuscriptStatus
	err := e.withManuscript(ctx, req.EntityID, func(tx repositories.Store, m *models.Manuscript) error {
		from = m.Status
		if from.Terminal() {
			return &models.TerminalStateError{Entity: models.EntityManuscript, ID: m.ID, State: string(from)}
		}
		edge, ok := manuscriptEdges[from][req.Action]
		if !ok {
			return &models.IllegalTransitionError{Entity: models.EntityManuscript, From: string(from), Action: req.Action}
		}
		if err := e.authorize(ctx, actor, string(req.Action), edge.Role); err != nil {
			return err
		}
		if req.Action == models.ActionResubmit && m.CorrespondingAuthorID != actor.ID {
			return &models.UnauthorizedRoleError{
				ActorID: actor.ID, Role: actor.Role, Action: string(req.Action),
				Reason: "only the corresponding author may resubmit",
			}
		}

		if e.policy.RequireUpstreamRecommendations && decisionGated(from, req.Action) {
			filed, err := upstreamFiled(ctx, tx, m.ID)
			if err != nil {
				return err
			}
			if !filed {
				return &models.IllegalTransitionError{
					Entity: models.EntityManuscript, From: string(from), Action: req.Action,
					Reason: "upstream recommendations are still outstanding",
				}
			}
		}

		m.Status = edge.To
		m.UpdatedAt = e.now()
		if err := tx.Manuscripts().Update(ctx, m); err != nil {
			return fmt.Errorf("update manuscript: %w", err)
		}
		to = edge.To
		return e.record(ctx, tx, m.ID, models.EntityManuscript, m.ID, string(from), string(to), req.Action, actor, req.Reason)
	})
	if err != nil {
		return "", err
	}

	e.logTransition(req.EntityID, models.EntityManuscript, req.Action, string(from), string(to), actor)
	return to, nil
}

// TransitionReviewerAssignment applies submit_feedback or decline for the assigned reviewer.
func (e *WorkflowEngine) TransitionReviewerAssignment(ctx context.Context, req models.TransitionRequest) (models.ReviewerAssignmentStatus, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	actor := req.Actor()

	current, err := e.store.Assignments().GetReviewerAssignment(ctx, req.EntityID)
	if err != nil {
		return "", err
	}

	var from, to models.ReviewerAssignmentStatus
	err = e.withManuscript(ctx, current.ManuscriptID, func(tx repositories.Store, m *models.Manuscript) error {
		a, err := tx.Assignments().GetReviewerAssignment(ctx, req.EntityID)
		if err != nil {
			return err
		}
		from = a.Status
		if from.Terminal() {
			return &models.TerminalStateError{Entity: models.EntityReviewerAssignment, ID: a.ID, State: string(from)}
		}
		next, ok := reviewerEdges[from][req.Action]
		if !ok {
			return &models.IllegalTransitionError{Entity: models.EntityReviewerAssignment, From: string(from), Action: req.Action}
		}
		if err := e.authorize(ctx, actor, string(req.Action), models.RoleReviewer); err != nil {
			return err
		}
		if a.ReviewerID != actor.ID {
			return &models.UnauthorizedRoleError{
				ActorID: actor.ID, Role: actor.Role, Action: string(req.Action),
				Reason: "assignment belongs to another reviewer",
			}
		}
		if m.Status.Terminal() {
			return &models.TerminalManuscriptError{ManuscriptID: m.ID, Status: m.Status}
		}

		reason := ""
		switch req.Action {
		case models.ActionSubmitFeedback:
			if req.Feedback == nil {
				return models.NewValidationError("recommendation", "is required")
			}
			input := *req.Feedback
			input.ManuscriptID = m.ID
			input.RoleKind = models.RoleReviewer
			input.RoleHolderID = actor.ID
			if _, err := e.fileRecommendation(ctx, tx, input, actor); err != nil {
				return err
			}
			if c := strings.TrimSpace(req.ConfidentialComments); c != "" {
				a.ConfidentialComments = &c
			}
		case models.ActionDecline:
			reason = strings.TrimSpace(req.Reason)
			if reason == "" {
				return models.NewValidationError("rejection_reason", "is required")
			}
			a.RejectionReason = &reason
			if req.SuggestedSubjectAreaID != nil {
				if _, err := e.references.SubjectArea(ctx, *req.SuggestedSubjectAreaID); err != nil {
					return err
				}
				a.SuggestedSubjectAreaID = req.SuggestedSubjectAreaID
			}
		}

		a.Status = next
		a.UpdatedAt = e.now()
		if err := tx.Assignments().UpdateReviewerAssignment(ctx, a); err != nil {
			return fmt.Errorf("update reviewer assignment: %w", err)
		}
		to = next
		return e.record(ctx, tx, m.ID, models.EntityReviewerAssignment, a.ID, string(from), string(to), req.Action, actor, reason)
	})
	if err != nil {
		return "", err
	}

	e.logTransition(current.ManuscriptID, models.EntityReviewerAssignment, req.Action, string(from), string(to), actor)
	return to, nil
}

// TransitionEditorAssignment moves an associate or area editor through their review cycle.
func (e *WorkflowEngine) TransitionEditorAssignment(ctx context.Context, req models.TransitionRequest) (models.EditorAssignmentStatus, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	actor := req.Actor()

	current, err := e.store.Assignments().GetEditorAssignment(ctx, req.EntityID)
	if err != nil {
		return "", err
	}

	var from, to models.EditorAssignmentStatus
	err = e.withManuscript(ctx, current.ManuscriptID, func(tx repositories.Store, m *models.Manuscript) error {
		a, err := tx.Assignments().GetEditorAssignment(ctx, req.EntityID)
		if err != nil {
			return err
		}
		from = a.Status
		if from.Terminal() {
			return &models.TerminalStateError{Entity: models.EntityEditorAssignment, ID: a.ID, State: string(from)}
		}
		next, ok := editorEdges[from][req.Action]
		if !ok {
			return &models.IllegalTransitionError{Entity: models.EntityEditorAssignment, From: string(from), Action: req.Action}
		}
		if err := e.authorize(ctx, actor, string(req.Action), a.Role); err != nil {
			return err
		}
		if a.EditorID != actor.ID {
			return &models.UnauthorizedRoleError{
				ActorID: actor.ID, Role: actor.Role, Action: string(req.Action),
				Reason: "assignment belongs to another editor",
			}
		}
		if m.Status.Terminal() {
			return &models.TerminalManuscriptError{ManuscriptID: m.ID, Status: m.Status}
		}
		if req.Action == models.ActionBeginReviewCycle && len(req.ReviewerIDs) > 0 && a.Role != models.RoleAssociateEditor {
			return models.NewValidationError("reviewer_ids", "only associate editors assign reviewers")
		}
		if req.Action == models.ActionFileRecommendation {
			if req.Feedback == nil {
				return models.NewValidationError("recommendation", "is required")
			}
			input := *req.Feedback
			input.ManuscriptID = m.ID
			input.RoleKind = a.Role
			input.RoleHolderID = actor.ID
			if _, err := e.fileRecommendation(ctx, tx, input, actor); err != nil {
				return err
			}
		}

		a.Status = next
		a.UpdatedAt = e.now()
		if err := tx.Assignments().UpdateEditorAssignment(ctx, a); err != nil {
			return fmt.Errorf("update editor assignment: %w", err)
		}
		to = next
		if err := e.record(ctx, tx, m.ID, models.EntityEditorAssignment, a.ID, string(from), string(to), req.Action, actor, req.Reason); err != nil {
			return err
		}

		for _, reviewerID := range req.ReviewerIDs {
			if _, err := e.assignReviewerTx(ctx, tx, m, actor, reviewerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	e.logTransition(current.ManuscriptID, models.EntityEditorAssignment, req.Action, string(from), string(to), actor)
	return to, nil
}

// AssignReviewer creates an active reviewer assignment on behalf of an associate editor.
func (e *WorkflowEngine) AssignReviewer(ctx context.Context, actor models.Actor, manuscriptID, reviewerID uuid.UUID) (*models.ReviewerAssignment, error) {
	var created *models.ReviewerAssignment
	err := e.withManuscript(ctx, manuscriptID, func(tx repositories.Store, m *models.Manuscript) error {
		if m.Status.Terminal() {
			return &models.TerminalManuscriptError{ManuscriptID: m.ID, Status: m.Status}
		}
		if err := e.authorize(ctx, actor, string(models.ActionAssign), assignersOf[models.RoleReviewer]...); err != nil {
			return err
		}
		if err := requireHeldAssignment(ctx, tx, m, actor, string(models.ActionAssign)); err != nil {
			return err
		}
		a, err := e.assignReviewerTx(ctx, tx, m, actor, reviewerID)
		created = a
		return err
	})
	if err != nil {
		return nil, err
	}

	e.logTransition(manuscriptID, models.EntityReviewerAssignment, models.ActionAssign, "", string(created.Status), actor)
	return created, nil
}

func (e *WorkflowEngine) assignReviewerTx(ctx context.Context, tx repositories.Store, m *models.Manuscript, actor models.Actor, reviewerID uuid.UUID) (*models.ReviewerAssignment, error) {
	if m.Status.Terminal() {
		return nil, &models.TerminalManuscriptError{ManuscriptID: m.ID, Status: m.Status}
	}
	if m.Status != models.StatusUnderReview {
		return nil, &models.IllegalTransitionError{
			Entity: models.EntityReviewerAssignment, From: string(m.Status), Action: models.ActionAssign,
			Reason: "reviewers are assigned while the manuscript is under review",
		}
	}
	if err := e.resolveAssignee(ctx, reviewerID, models.RoleReviewer); err != nil {
		return nil, err
	}

	existing, err := tx.Assignments().ActiveReviewerAssignment(ctx, m.ID, reviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &models.DuplicateAssignmentError{ManuscriptID: m.ID, AssigneeID: reviewerID, Role: models.RoleReviewer}
	}
	if err := refuseFiledAssignee(ctx, tx, m.ID, reviewerID, models.RoleReviewer); err != nil {
		return nil, err
	}

	now := e.now()
	a := &models.ReviewerAssignment{
		ID:           uuid.New(),
		ManuscriptID: m.ID,
		ReviewerID:   reviewerID,
		AssignedByID: actor.ID,
		AssignedDate: now,
		Status:       models.ReviewerAssigned,
		UpdatedAt:    now,
	}
	if err := tx.Assignments().CreateReviewerAssignment(ctx, a); err != nil {
		return nil, err
	}
	if err := e.record(ctx, tx, m.ID, models.EntityReviewerAssignment, a.ID, "", string(a.Status), models.ActionAssign, actor, ""); err != nil {
		return nil, err
	}

	// The associate editor's own assignment starts its review cycle with the first reviewer.
	if actor.Role != models.RoleAssociateEditor {
		return a, nil
	}
	ed, err := tx.Assignments().ActiveEditorAssignment(ctx, m.ID, models.RoleAssociateEditor)
	if err != nil {
		return nil, err
	}
	if ed == nil || ed.EditorID != actor.ID || ed.Status != models.EditorAssigned {
		return a, nil
	}
	ed.Status = models.EditorReviewing
	ed.UpdatedAt = now
	if err := tx.Assignments().UpdateEditorAssignment(ctx, ed); err != nil {
		return nil, fmt.Errorf("update editor assignment: %w", err)
	}
	if err := e.record(ctx, tx, m.ID, models.EntityEditorAssignment, ed.ID, string(models.EditorAssigned), string(ed.Status), models.ActionBeginReviewCycle, actor, ""); err != nil {
		return nil, err
	}
	return a, nil
}

// requireHeldAssignment lets an editor delegate only on a manuscript they hold an active
// assignment for. The editor-in-chief may delegate on any manuscript.
func requireHeldAssignment(ctx context.Context, tx repositories.Store, m *models.Manuscript, actor models.Actor, action string) error {
	if actor.Role == models.RoleEditorInChief {
		return nil
	}
	held, err := tx.Assignments().ActiveEditorAssignment(ctx, m.ID, actor.Role)
	if err != nil {
		return err
	}
	if held == nil || held.EditorID != actor.ID {
		return &models.UnauthorizedRoleError{
			ActorID: actor.ID, Role: actor.Role, Action: action,
			Reason: "actor holds no active assignment on the manuscript",
		}
	}
	return nil
}

// refuseFiledAssignee rejects a new assignment for someone whose recommendation in that role is
// already on file: a second assignment could never be completed.
func refuseFiledAssignee(ctx context.Context, tx repositories.Store, manuscriptID, assigneeID uuid.UUID, role models.UserRole) error {
	filed, err := tx.Recommendations().Exists(ctx, manuscriptID, assigneeID, role)
	if err != nil {
		return err
	}
	if filed {
		return &models.DuplicateAssignmentError{ManuscriptID: manuscriptID, AssigneeID: assigneeID, Role: role, Filed: true}
	}
	return nil
}

// AssignEditor creates the single active editor assignment for role on the manuscript.
func (e *WorkflowEngine) AssignEditor(ctx context.Context, actor models.Actor, manuscriptID, editorID uuid.UUID, role models.UserRole) (*models.EditorAssignment, error) {
	if !models.EditorRole(role) {
		return nil, models.NewValidationError("role", "must be associate_editor or area_editor")
	}

	var created *models.EditorAssignment
	err := e.withManuscript(ctx, manuscriptID, func(tx repositories.Store, m *models.Manuscript) error {
		if m.Status.Terminal() {
			return &models.TerminalManuscriptError{ManuscriptID: m.ID, Status: m.Status}
		}
		if err := e.authorize(ctx, actor, string(models.ActionAssign), assignersOf[role]...); err != nil {
			return err
		}
		if err := requireHeldAssignment(ctx, tx, m, actor, string(models.ActionAssign)); err != nil {
			return err
		}
		if err := e.resolveAssignee(ctx, editorID, role); err != nil {
			return err
		}

		existing, err := tx.Assignments().ActiveEditorAssignment(ctx, m.ID, role)
		if err != nil {
			return err
		}
		if existing != nil {
			return &models.DuplicateAssignmentError{ManuscriptID: m.ID, AssigneeID: editorID, Role: role}
		}
		if err := refuseFiledAssignee(ctx, tx, m.ID, editorID, role); err != nil {
			return err
		}

		now := e.now()
		a := &models.EditorAssignment{
			ID:           uuid.New(),
			ManuscriptID: m.ID,
			EditorID:     editorID,
			Role:         role,
			AssignedByID: actor.ID,
			AssignedDate: now,
			Status:       models.EditorAssigned,
			UpdatedAt:    now,
		}
		if err := tx.Assignments().CreateEditorAssignment(ctx, a); err != nil {
			return err
		}
		created = a
		return e.record(ctx, tx, m.ID, models.EntityEditorAssignment, a.ID, "", string(a.Status), models.ActionAssign, actor, "")
	})
	if err != nil {
		return nil, err
	}

	e.logTransition(manuscriptID, models.EntityEditorAssignment, models.ActionAssign, "", string(created.Status), actor)
	return created, nil
}

// FileRecommendation records a recommendation outside any assignment transition. The actor
// files under their own id and role.
func (e *WorkflowEngine) FileRecommendation(ctx context.Context, actor models.Actor, input models.RecommendationInput) (*models.Recommendation, error) {
	if input.RoleKind != actor.Role || input.RoleHolderID != actor.ID {
		return nil, &models.UnauthorizedRoleError{
			ActorID: actor.ID, Role: actor.Role, Action: string(models.ActionFileRecommendation),
			Reason: "recommendations are filed under the actor's own id and role",
		}
	}

	var rec *models.Recommendation
	err := e.withManuscript(ctx, input.ManuscriptID, func(tx repositories.Store, m *models.Manuscript) error {
		if m.Status.Terminal() {
			return &models.TerminalManuscriptError{ManuscriptID: m.ID, Status: m.Status}
		}
		if err := e.authorize(ctx, actor, string(models.ActionFileRecommendation), input.RoleKind); err != nil {
			return err
		}
		var err error
		rec, err = e.fileRecommendation(ctx, tx, input, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.logTransition(input.ManuscriptID, models.EntityRecommendation, models.ActionFileRecommendation, "", string(rec.Decision), actor)
	return rec, nil
}

func (e *WorkflowEngine) fileRecommendation(ctx context.Context, tx repositories.Store, input models.RecommendationInput, actor models.Actor) (*models.Recommendation, error) {
	rec, err := e.newRecommendation(input)
	if err != nil {
		return nil, err
	}
	if err := tx.Recommendations().Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := e.record(ctx, tx, rec.ManuscriptID, models.EntityRecommendation, rec.ID, "", string(rec.Decision), models.ActionFileRecommendation, actor, ""); err != nil {
		return nil, err
	}
	return rec, nil
}

func (e *WorkflowEngine) newRecommendation(input models.RecommendationInput) (*models.Recommendation, error) {
	verr := &models.ValidationError{}
	if !input.RoleKind.Editorial() {
		verr.Add("role_kind", "must be a reviewing or editorial role")
	}
	if !input.Decision.Valid() {
		verr.Add("recommendation", "must be one of accept, minor_revision, major_revision, reject")
	}
	if input.Rating < models.MinRating || input.Rating > models.MaxRating {
		verr.Add("rating", fmt.Sprintf("must be between %d and %d", models.MinRating, models.MaxRating))
	}

	summary := strings.TrimSpace(input.Summary)
	justification := strings.TrimSpace(input.Justification)
	rule := e.policy.MinLengthFor(input.RoleKind)
	if utf8.RuneCountInString(summary) < rule.Summary {
		verr.Add("summary", fmt.Sprintf("must be at least %d characters", rule.Summary))
	}
	if utf8.RuneCountInString(justification) < rule.Justification {
		verr.Add("justification", fmt.Sprintf("must be at least %d characters", rule.Justification))
	}
	if verr.HasErrors() {
		return nil, verr
	}

	rec := &models.Recommendation{
		ID:            uuid.New(),
		ManuscriptID:  input.ManuscriptID,
		RoleHolderID:  input.RoleHolderID,
		RoleKind:      input.RoleKind,
		Decision:      input.Decision,
		Summary:       summary,
		Justification: justification,
		Rating:        input.Rating,
		SubmittedAt:   e.now(),
	}
	if c := strings.TrimSpace(input.PublicComments); c != "" {
		rec.PublicComments = &c
	}
	return rec, nil
}

// AllUpstreamRecommendationsFiled is true once every live reviewer and editor assignment has
// completed and at least one recommendation below the editor-in-chief exists.
func (e *WorkflowEngine) AllUpstreamRecommendationsFiled(ctx context.Context, manuscriptID uuid.UUID) (bool, error) {
	var filed bool
	err := e.store.ReadTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Manuscripts().GetByID(ctx, manuscriptID); err != nil {
			return err
		}
		var err error
		filed, err = upstreamFiled(ctx, tx, manuscriptID)
		return err
	})
	return filed, err
}

func upstreamFiled(ctx context.Context, tx repositories.Store, manuscriptID uuid.UUID) (bool, error) {
	reviewers, err := tx.Assignments().ListReviewerAssignments(ctx, manuscriptID)
	if err != nil {
		return false, err
	}
	for _, a := range reviewers {
		if a.Status != models.ReviewerCompleted && a.Status != models.ReviewerRejected {
			return false, nil
		}
	}

	editors, err := tx.Assignments().ListEditorAssignments(ctx, manuscriptID)
	if err != nil {
		return false, err
	}
	for _, a := range editors {
		if a.Status != models.EditorCompleted {
			return false, nil
		}
	}

	recs, err := tx.Recommendations().ListByManuscript(ctx, manuscriptID)
	if err != nil {
		return false, err
	}
	for _, r := range recs {
		if r.RoleKind != models.RoleEditorInChief {
			return true, nil
		}
	}
	return false, nil
}
