package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"journal-workflow/config"
	"journal-workflow/handlers"
	"journal-workflow/repositories"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Production() {
			gin.SetMode(gin.ReleaseMode)
		}

		policy, err := config.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			return err
		}

		db, err := config.OpenDB(cfg, logger)
		if err != nil {
			return err
		}

		// Initialize repositories
		store := repositories.NewGormStore(db)
		userRepo := repositories.NewUserRepository(db)

		// Initialize services
		references := services.NewReferenceService(store.References())
		engine := services.NewWorkflowEngine(store, services.NewRoleDirectory(userRepo), references, policy, logger)
		svc := handlers.Services{
			Engine:          engine,
			Manuscripts:     services.NewManuscriptService(store, engine, references, services.NewHTTPResolver(cfg.DocumentStoreURL), logger),
			Assignments:     services.NewAssignmentService(store, engine),
			Recommendations: services.NewRecommendationService(store, engine),
			References:      references,
		}

		router := handlers.NewRouter(svc, handlers.RouterOptions{
			Log:                logger,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.WithField("port", cfg.Port).Info("Server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
