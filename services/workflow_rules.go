package services

import "journal-workflow/models"

type manuscriptEdge struct {
	To   models.ManuscriptStatus
	Role models.UserRole
}

var manuscriptEdges = map[models.ManuscriptStatus]map[models.Action]manuscriptEdge{
	models.StatusSubmitted: {
		models.ActionAcceptForReview: {To: models.StatusUnderReview, Role: models.RoleEditorInChief},
		models.ActionReject:          {To: models.StatusRejected, Role: models.RoleEditorInChief},
	},
	models.StatusUnderReview: {
		models.ActionAccept:           {To: models.StatusAccepted, Role: models.RoleEditorInChief},
		models.ActionReject:           {To: models.StatusRejected, Role: models.RoleEditorInChief},
		models.ActionRequestRevisions: {To: models.StatusRevisionsRequested, Role: models.RoleEditorInChief},
	},
	models.StatusRevisionsRequested: {
		models.ActionResubmit: {To: models.StatusUnderReview, Role: models.RoleAuthor},
	},
}

// Reviewer edges are always taken by the assigned reviewer.
var reviewerEdges = map[models.ReviewerAssignmentStatus]map[models.Action]models.ReviewerAssignmentStatus{
	models.ReviewerAssigned: {
		models.ActionSubmitFeedback: models.ReviewerCompleted,
		models.ActionDecline:        models.ReviewerRejected,
	},
}

// Editor edges are taken by the assigned editor acting in the assignment's role.
var editorEdges = map[models.EditorAssignmentStatus]map[models.Action]models.EditorAssignmentStatus{
	models.EditorAssigned: {
		models.ActionBeginReviewCycle: models.EditorReviewing,
	},
	models.EditorReviewing: {
		models.ActionAdvance: models.EditorInProgress,
	},
	models.EditorInProgress: {
		models.ActionFileRecommendation: models.EditorCompleted,
	},
}

// NextManuscriptStatus looks up the edge leaving from for action.
func NextManuscriptStatus(from models.ManuscriptStatus, action models.Action) (models.ManuscriptStatus, models.UserRole, bool) {
	edge, ok := manuscriptEdges[from][action]
	return edge.To, edge.Role, ok
}

// decisionGated reports whether the upstream recommendation policy applies to the edge.
func decisionGated(from models.ManuscriptStatus, action models.Action) bool {
	if from != models.StatusUnderReview {
		return false
	}
	switch action {
	case models.ActionAccept, models.ActionReject, models.ActionRequestRevisions:
		return true
	}
	return false
}

// reviewerActionFor and editorActionFor translate a requested target status into the action
// that reaches it.
func reviewerActionFor(status models.ReviewerAssignmentStatus) (models.Action, bool) {
	for _, edges := range reviewerEdges {
		for action, to := range edges {
			if to == status {
				return action, true
			}
		}
	}
	return "", false
}

func editorActionFor(status models.EditorAssignmentStatus) (models.Action, bool) {
	for _, edges := range editorEdges {
		for action, to := range edges {
			if to == status {
				return action, true
			}
		}
	}
	return "", false
}

// assignersOf lists who may create an editor assignment with the given role tag.
var assignersOf = map[models.UserRole][]models.UserRole{
	models.RoleAreaEditor:      {models.RoleEditorInChief},
	models.RoleAssociateEditor: {models.RoleAreaEditor, models.RoleEditorInChief},
	models.RoleReviewer:        {models.RoleAssociateEditor},
}
