package handlers

import (
	"net/http"

	"journal-workflow/helper"
	"journal-workflow/middleware"
	"journal-workflow/models"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Engine          *services.WorkflowEngine
	Manuscripts     services.ManuscriptService
	Assignments     services.AssignmentService
	Recommendations services.RecommendationService
	References      services.ReferenceService
}

type RouterOptions struct {
	Log                *logrus.Entry
	CORSAllowedOrigins []string
}

func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	resp := &helper.HTTPHelper{Log: opts.Log}
	middleware.HTTPHelper = resp

	authorHandler := NewAuthorHandler(resp, svc.Manuscripts, svc.Engine)
	reviewerHandler := NewReviewerHandler(resp, svc.Assignments, svc.Engine)
	associateHandler := NewEditorHandler(resp, models.RoleAssociateEditor, svc.Assignments, svc.Engine)
	areaHandler := NewEditorHandler(resp, models.RoleAreaEditor, svc.Assignments, svc.Engine)
	chiefHandler := NewEditorInChiefHandler(resp, svc.Manuscripts, svc.Assignments, svc.Recommendations, svc.Engine)
	manuscriptHandler := NewManuscriptHandler(resp, svc.Manuscripts, svc.Assignments, svc.Recommendations)
	referenceHandler := NewReferenceHandler(resp, svc.References)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Log))
	router.Use(middleware.CORS(opts.CORSAllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	editorial := []models.UserRole{
		models.RoleReviewer, models.RoleAssociateEditor, models.RoleAreaEditor, models.RoleEditorInChief,
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(), middleware.SanitizeInput())
	{
		reference := v1.Group("/reference")
		{
			reference.GET("/subject-areas", referenceHandler.GetSubjectAreas)
			reference.GET("/journal-sections", referenceHandler.GetJournalSections)
		}

		manuscripts := v1.Group("/manuscripts")
		{
			manuscripts.GET("/:id", manuscriptHandler.GetManuscript)
			manuscripts.GET("/:id/assignments", middleware.RequireRole(editorial...), manuscriptHandler.GetAssignments)
			manuscripts.GET("/:id/recommendations", middleware.RequireRole(editorial...), manuscriptHandler.GetRecommendations)
			manuscripts.GET("/:id/history", middleware.RequireRole(editorial...), manuscriptHandler.GetHistory)
		}

		author := v1.Group("/author", middleware.RequireRole(models.RoleAuthor))
		{
			author.POST("/manuscripts", authorHandler.SubmitManuscript)
			author.GET("/manuscripts", authorHandler.GetManuscripts)
			author.POST("/manuscripts/:id/resubmit", authorHandler.Resubmit)
		}

		reviewer := v1.Group("/reviewer", middleware.RequireRole(models.RoleReviewer))
		{
			reviewer.GET("/assignments", reviewerHandler.GetAssignments)
			reviewer.POST("/assignments/:id/feedback", reviewerHandler.SubmitFeedback)
			reviewer.POST("/assignments/:id/decline", reviewerHandler.Decline)
		}

		associate := v1.Group("/associate-editor", middleware.RequireRole(models.RoleAssociateEditor))
		{
			associate.POST("/manuscripts/:id/reviewers", associateHandler.AssignDownstream)
			associate.GET("/assignments", associateHandler.GetAssignments)
			associate.POST("/assignments/:id/recommendation", associateHandler.FileRecommendation)
			associate.POST("/assignments/:id/:action", associateHandler.Transition)
		}

		area := v1.Group("/area-editor", middleware.RequireRole(models.RoleAreaEditor))
		{
			area.POST("/manuscripts/:id/associate-editors", areaHandler.AssignDownstream)
			area.GET("/assignments", areaHandler.GetAssignments)
			area.POST("/assignments/:id/recommendation", areaHandler.FileRecommendation)
			area.POST("/assignments/:id/:action", areaHandler.Transition)
		}

		chief := v1.Group("/editor-in-chief", middleware.RequireRole(models.RoleEditorInChief))
		{
			chief.GET("/manuscripts", chiefHandler.GetManuscripts)
			chief.GET("/manuscripts/open", chiefHandler.GetOpenManuscripts)
			chief.POST("/manuscripts/:id/decision", chiefHandler.Decide)
			chief.POST("/manuscripts/:id/area-editors", chiefHandler.AssignAreaEditor)
			chief.POST("/manuscripts/:id/recommendation", chiefHandler.FileRecommendation)
			chief.GET("/manuscripts/:id/upstream", chiefHandler.GetUpstreamStatus)
		}
	}

	return router
}
