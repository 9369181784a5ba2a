package models

// ManuscriptInput is validated by the manuscript service rather than by gin binding
// so the same rules apply to every caller.
type ManuscriptInput struct {
	Title              string   `json:"title" validate:"required,max=255"`
	Abstract           string   `json:"abstract" validate:"required"`
	Keywords           []string `json:"keywords" validate:"required,min=1,dive,required,max=100"`
	SubjectAreaID      string   `json:"subject_area_id" validate:"required,uuid"`
	JournalSectionID   string   `json:"journal_section_id" validate:"required,uuid"`
	Language           string   `json:"language" validate:"omitempty,max=50"`
	CoAuthorIDs        []string `json:"co_author_ids" validate:"omitempty,dive,uuid"`
	ManuscriptFile     string   `json:"manuscript_file" validate:"required,max=512"`
	SupplementaryFiles []string `json:"supplementary_files" validate:"omitempty,dive,required,max=512"`
}

type DecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=accept_for_review accept reject request_revisions"`
	Reason string `json:"reason"`
}

type ResubmitRequest struct {
	Note string `json:"note"`
}

type AssignRequest struct {
	AssigneeID string `json:"assignee_id" binding:"required,uuid"`
}

type RecommendationRequest struct {
	Recommendation string `json:"recommendation" binding:"required,oneof=accept minor_revision major_revision reject"`
	Summary        string `json:"summary"`
	Justification  string `json:"justification"`
	Rating         int    `json:"rating" binding:"required"`
	PublicComments string `json:"public_comments_to_author"`
}

type ReviewerFeedbackRequest struct {
	RecommendationRequest
	ConfidentialComments string `json:"confidential_comments"`
}

type DeclineRequest struct {
	RejectionReason        string `json:"rejection_reason" binding:"required"`
	SuggestedSubjectAreaID string `json:"subject_area_id" binding:"omitempty,uuid"`
}

type EditorActionRequest struct {
	ReviewerIDs []string `json:"reviewer_ids" binding:"omitempty,dive,uuid"`
}

type AssignmentListParams struct {
	Status string `form:"status"`
}

type ManuscriptListParams struct {
	Status string `form:"status"`
}
