package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"journal-workflow/config"
	"journal-workflow/logging"
	"journal-workflow/middleware"
	"journal-workflow/models"
	"journal-workflow/repositories"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type directory struct {
	mu    sync.Mutex
	users map[uuid.UUID]services.RoleInfo
}

func (d *directory) ResolveRole(ctx context.Context, id uuid.UUID) (services.RoleInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, ok := d.users[id]
	if !ok {
		return services.RoleInfo{}, models.NewNotFoundError("user", id)
	}
	return info, nil
}

type documents struct{}

func (documents) Resolve(ctx context.Context, ref string) (string, error) {
	return "https://documents.test/" + ref, nil
}

type user struct {
	id    uuid.UUID
	token string
}

type APITestSuite struct {
	suite.Suite
	router    *gin.Engine
	directory *directory

	subjectArea    uuid.UUID
	journalSection uuid.UUID

	author    user
	chief     user
	area      user
	associate user
	reviewer  user
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := repositories.NewMemoryStore()
	suite.subjectArea = uuid.New()
	suite.journalSection = uuid.New()
	suite.Require().NoError(store.References().CreateSubjectArea(ctx, &models.SubjectArea{ID: suite.subjectArea, Name: "Analysis"}))
	suite.Require().NoError(store.References().CreateJournalSection(ctx, &models.JournalSection{ID: suite.journalSection, Name: "Letters"}))

	suite.directory = &directory{users: map[uuid.UUID]services.RoleInfo{}}
	suite.author = suite.user(models.RoleAuthor)
	suite.chief = suite.user(models.RoleEditorInChief)
	suite.area = suite.user(models.RoleAreaEditor)
	suite.associate = suite.user(models.RoleAssociateEditor)
	suite.reviewer = suite.user(models.RoleReviewer)

	log := logging.Discard()
	references := services.NewReferenceService(store.References())
	engine := services.NewWorkflowEngine(store, suite.directory, references, config.DefaultPolicy(), log)

	suite.router = NewRouter(Services{
		Engine:          engine,
		Manuscripts:     services.NewManuscriptService(store, engine, references, documents{}, log),
		Assignments:     services.NewAssignmentService(store, engine),
		Recommendations: services.NewRecommendationService(store, engine),
		References:      references,
	}, RouterOptions{Log: log, CORSAllowedOrigins: []string{"*"}})
}

func (suite *APITestSuite) user(role models.UserRole) user {
	id := uuid.New()
	suite.directory.users[id] = services.RoleInfo{Role: role, Approved: true, Active: true}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &middleware.Claims{
		UserID:   id.String(),
		Username: string(role),
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(config.JWTSecret)
	suite.Require().NoError(err)
	return user{id: id, token: signed}
}

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

func (suite *APITestSuite) makeRequest(method, url string, body interface{}, as user) (int, envelope) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		suite.Require().NoError(err)
	}

	req := httptest.NewRequest(method, url, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if as.token != "" {
		req.Header.Set("Authorization", "Bearer "+as.token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var res envelope
	if w.Body.Len() > 0 {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	}
	return w.Code, res
}

func (suite *APITestSuite) decode(raw json.RawMessage, v interface{}) {
	suite.Require().NoError(json.Unmarshal(raw, v))
}

func (suite *APITestSuite) submit() uuid.UUID {
	code, res := suite.makeRequest(http.MethodPost, "/api/v1/author/manuscripts", map[string]interface{}{
		"title":              "On <em>bounded</em> operators",
		"abstract":           "We study bounded operators.",
		"keywords":           []string{"operators", "spectra"},
		"subject_area_id":    suite.subjectArea,
		"journal_section_id": suite.journalSection,
		"language":           "en",
		"manuscript_file":    "operators.pdf",
	}, suite.author)
	suite.Require().Equal(http.StatusCreated, code, string(res.CodeMessage))

	var m models.Manuscript
	suite.decode(res.Data, &m)
	suite.Equal("On bounded operators", m.Title)
	suite.Equal(models.StatusSubmitted, m.Status)
	return m.ID
}

func (suite *APITestSuite) TestHealth() {
	code, _ := suite.makeRequest(http.MethodGet, "/health", nil, user{})
	suite.Equal(http.StatusOK, code)
}

func (suite *APITestSuite) TestRequiresToken() {
	code, res := suite.makeRequest(http.MethodGet, "/api/v1/author/manuscripts", nil, user{})
	suite.Equal(http.StatusUnauthorized, code)
	suite.Equal("unAuthorized", res.CodeType)
}

func (suite *APITestSuite) TestReviewRoundTrip() {
	id := suite.submit()

	code, res := suite.makeRequest(http.MethodPost, "/api/v1/editor-in-chief/manuscripts/"+id.String()+"/decision",
		gin.H{"action": "accept_for_review"}, suite.chief)
	suite.Require().Equal(http.StatusOK, code, string(res.CodeMessage))

	// reviewers are assigned by the associate editor holding the manuscript
	code, res = suite.makeRequest(http.MethodPost, "/api/v1/associate-editor/manuscripts/"+id.String()+"/reviewers",
		gin.H{"assignee_id": suite.reviewer.id}, suite.associate)
	suite.Require().Equal(http.StatusForbidden, code, string(res.CodeMessage))

	code, res = suite.makeRequest(http.MethodPost, "/api/v1/editor-in-chief/manuscripts/"+id.String()+"/area-editors",
		gin.H{"assignee_id": suite.area.id}, suite.chief)
	suite.Require().Equal(http.StatusCreated, code, string(res.CodeMessage))
	code, res = suite.makeRequest(http.MethodPost, "/api/v1/area-editor/manuscripts/"+id.String()+"/associate-editors",
		gin.H{"assignee_id": suite.associate.id}, suite.area)
	suite.Require().Equal(http.StatusCreated, code, string(res.CodeMessage))

	code, res = suite.makeRequest(http.MethodPost, "/api/v1/associate-editor/manuscripts/"+id.String()+"/reviewers",
		gin.H{"assignee_id": suite.reviewer.id}, suite.associate)
	suite.Require().Equal(http.StatusCreated, code, string(res.CodeMessage))
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	suite.decode(res.Data, &created)

	code, res = suite.makeRequest(http.MethodGet, "/api/v1/reviewer/assignments?status=assigned", nil, suite.reviewer)
	suite.Require().Equal(http.StatusOK, code)
	var assigned []models.ReviewerAssignment
	suite.decode(res.Data, &assigned)
	suite.Require().Len(assigned, 1)
	suite.Equal(created.ID, assigned[0].ID)

	code, res = suite.makeRequest(http.MethodPost, "/api/v1/reviewer/assignments/"+created.ID.String()+"/feedback", gin.H{
		"recommendation":        "accept",
		"summary":               "Sound and well written.",
		"justification":         "The main estimate is proved in full.",
		"rating":                4,
		"confidential_comments": "No concerns.",
	}, suite.reviewer)
	suite.Require().Equal(http.StatusOK, code, string(res.CodeMessage))

	code, res = suite.makeRequest(http.MethodGet, "/api/v1/manuscripts/"+id.String()+"/recommendations", nil, suite.chief)
	suite.Require().Equal(http.StatusOK, code)
	var recs []models.Recommendation
	suite.decode(res.Data, &recs)
	suite.Require().Len(recs, 1)
	suite.Equal(suite.reviewer.id, recs[0].RoleHolderID)
	suite.Equal(4, recs[0].Rating)

	code, res = suite.makeRequest(http.MethodGet, "/api/v1/editor-in-chief/manuscripts/"+id.String()+"/upstream", nil, suite.chief)
	suite.Require().Equal(http.StatusOK, code)
	var upstream map[string]bool
	suite.decode(res.Data, &upstream)
	suite.False(upstream["all_upstream_recommendations_filed"], "both editors are still working")
	suite.False(upstream["decision_requires_upstream"])

	code, _ = suite.makeRequest(http.MethodPost, "/api/v1/editor-in-chief/manuscripts/"+id.String()+"/decision",
		gin.H{"action": "accept"}, suite.chief)
	suite.Require().Equal(http.StatusOK, code)

	code, res = suite.makeRequest(http.MethodGet, "/api/v1/manuscripts/"+id.String()+"/history", nil, suite.chief)
	suite.Require().Equal(http.StatusOK, code)
	var history []models.TransitionRecord
	suite.decode(res.Data, &history)
	suite.Len(history, 9)
}

func (suite *APITestSuite) TestErrorCodes() {
	id := suite.submit()
	path := "/api/v1/editor-in-chief/manuscripts/" + id.String() + "/decision"

	// resubmit from submitted has no edge
	code, res := suite.makeRequest(http.MethodPost, "/api/v1/author/manuscripts/"+id.String()+"/resubmit", nil, suite.author)
	suite.Equal(http.StatusConflict, code)
	suite.Equal("conflict", res.CodeType)

	// role groups are enforced before the handler
	code, _ = suite.makeRequest(http.MethodPost, path, gin.H{"action": "accept_for_review"}, suite.area)
	suite.Equal(http.StatusForbidden, code)

	code, _ = suite.makeRequest(http.MethodPost, path, gin.H{"action": "archive"}, suite.chief)
	suite.Equal(http.StatusBadRequest, code)

	code, _ = suite.makeRequest(http.MethodPost, "/api/v1/editor-in-chief/manuscripts/not-a-uuid/decision", gin.H{"action": "accept"}, suite.chief)
	suite.Equal(http.StatusBadRequest, code)

	code, _ = suite.makeRequest(http.MethodPost, "/api/v1/editor-in-chief/manuscripts/"+uuid.NewString()+"/decision", gin.H{"action": "accept"}, suite.chief)
	suite.Equal(http.StatusNotFound, code)

	code, _ = suite.makeRequest(http.MethodPost, path, gin.H{"action": "reject"}, suite.chief)
	suite.Require().Equal(http.StatusOK, code)

	code, _ = suite.makeRequest(http.MethodPost, "/api/v1/associate-editor/manuscripts/"+id.String()+"/reviewers",
		gin.H{"assignee_id": suite.reviewer.id}, suite.associate)
	suite.Equal(http.StatusConflict, code)

	code, _ = suite.makeRequest(http.MethodPost, path, gin.H{"action": "accept"}, suite.chief)
	suite.Equal(http.StatusConflict, code)
}

func (suite *APITestSuite) TestSubmitValidation() {
	code, res := suite.makeRequest(http.MethodPost, "/api/v1/author/manuscripts", gin.H{
		"title":              "",
		"keywords":           []string{},
		"subject_area_id":    suite.subjectArea,
		"journal_section_id": suite.journalSection,
		"manuscript_file":    "x.pdf",
	}, suite.author)
	suite.Equal(http.StatusBadRequest, code)
	suite.Equal("validationError", res.CodeType)

	var fields map[string][]string
	suite.decode(res.CodeMessage, &fields)
	suite.Contains(fields, "title")
	suite.Contains(fields, "abstract")
	suite.Contains(fields, "keywords")
}

func (suite *APITestSuite) TestManuscriptVisibility() {
	id := suite.submit()

	code, _ := suite.makeRequest(http.MethodGet, "/api/v1/manuscripts/"+id.String(), nil, suite.author)
	suite.Equal(http.StatusOK, code)

	stranger := suite.user(models.RoleAuthor)
	code, _ = suite.makeRequest(http.MethodGet, "/api/v1/manuscripts/"+id.String(), nil, stranger)
	suite.Equal(http.StatusNotFound, code)

	code, _ = suite.makeRequest(http.MethodGet, "/api/v1/manuscripts/"+id.String()+"/history", nil, suite.author)
	suite.Equal(http.StatusForbidden, code)

	code, res := suite.makeRequest(http.MethodGet, "/api/v1/author/manuscripts", nil, stranger)
	suite.Equal(http.StatusOK, code)
	var mine []models.Manuscript
	suite.decode(res.Data, &mine)
	suite.Empty(mine)
}

func (suite *APITestSuite) TestEditorChain() {
	id := suite.submit()
	code, _ := suite.makeRequest(http.MethodPost, "/api/v1/editor-in-chief/manuscripts/"+id.String()+"/decision",
		gin.H{"action": "accept_for_review"}, suite.chief)
	suite.Require().Equal(http.StatusOK, code)

	code, _ = suite.makeRequest(http.MethodPost, "/api/v1/editor-in-chief/manuscripts/"+id.String()+"/area-editors",
		gin.H{"assignee_id": suite.area.id}, suite.chief)
	suite.Require().Equal(http.StatusCreated, code)

	code, res := suite.makeRequest(http.MethodPost, "/api/v1/area-editor/manuscripts/"+id.String()+"/associate-editors",
		gin.H{"assignee_id": suite.associate.id}, suite.area)
	suite.Require().Equal(http.StatusCreated, code, string(res.CodeMessage))
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	suite.decode(res.Data, &created)
	assignmentPath := "/api/v1/associate-editor/assignments/" + created.ID.String()

	code, res = suite.makeRequest(http.MethodPost, assignmentPath+"/begin_review_cycle",
		gin.H{"reviewer_ids": []uuid.UUID{suite.reviewer.id}}, suite.associate)
	suite.Require().Equal(http.StatusOK, code, string(res.CodeMessage))

	code, _ = suite.makeRequest(http.MethodPost, assignmentPath+"/advance", nil, suite.associate)
	suite.Require().Equal(http.StatusOK, code)

	code, res = suite.makeRequest(http.MethodPost, assignmentPath+"/recommendation", gin.H{
		"recommendation": "minor_revision",
		"summary":        "Needs a clearer introduction.",
		"rating":         3,
	}, suite.associate)
	suite.Require().Equal(http.StatusOK, code, string(res.CodeMessage))

	code, res = suite.makeRequest(http.MethodGet, "/api/v1/associate-editor/assignments?status=completed", nil, suite.associate)
	suite.Require().Equal(http.StatusOK, code)
	var mine []models.EditorAssignment
	suite.decode(res.Data, &mine)
	suite.Require().Len(mine, 1)
	suite.Equal(created.ID, mine[0].ID)

	code, res = suite.makeRequest(http.MethodGet, "/api/v1/manuscripts/"+id.String()+"/assignments", nil, suite.chief)
	suite.Require().Equal(http.StatusOK, code)
	var list models.AssignmentList
	suite.decode(res.Data, &list)
	suite.Len(list.ReviewerAssignments, 1)
	suite.Len(list.EditorAssignments, 2)
}

func (suite *APITestSuite) TestReferenceData() {
	code, res := suite.makeRequest(http.MethodGet, "/api/v1/reference/subject-areas", nil, suite.author)
	suite.Require().Equal(http.StatusOK, code)
	var areas []models.SubjectArea
	suite.decode(res.Data, &areas)
	suite.Require().Len(areas, 1)
	suite.Equal("Analysis", areas[0].Name)
}
