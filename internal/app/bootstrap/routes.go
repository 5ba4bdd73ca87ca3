// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/dalemusser/studyhub/internal/app/features/auth"
	deadlinesfeature "github.com/dalemusser/studyhub/internal/app/features/deadlines"
	filesfeature "github.com/dalemusser/studyhub/internal/app/features/files"
	groupsfeature "github.com/dalemusser/studyhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/studyhub/internal/app/features/health"
	notesfeature "github.com/dalemusser/studyhub/internal/app/features/notes"
	projectsfeature "github.com/dalemusser/studyhub/internal/app/features/projects"
	deadlinestore "github.com/dalemusser/studyhub/internal/app/store/deadlines"
	groupfilestore "github.com/dalemusser/studyhub/internal/app/store/groupfiles"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	invitationstore "github.com/dalemusser/studyhub/internal/app/store/invitations"
	notestore "github.com/dalemusser/studyhub/internal/app/store/notes"
	projectstore "github.com/dalemusser/studyhub/internal/app/store/projects"
	sharestore "github.com/dalemusser/studyhub/internal/app/store/shares"
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. StudyHub creates the token manager, the
// entity stores, and the feature handlers, then mounts the JSON API under
// /api with the health check at /health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewManager(appCfg.JWTSecret, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	students := studentstore.New(db)
	notes := notestore.New(db)
	projects := projectstore.New(db)
	deadlines := deadlinestore.New(db)
	groups := groupstore.New(db)
	invitations := invitationstore.New(db)
	shares := sharestore.New(db)
	groupFiles := groupfilestore.New(db)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication: register, login, current student
	authHandler := authfeature.NewHandler(students, tokens, logger)
	r.Mount("/api/auth", authfeature.Routes(authHandler, tokens))

	// Per-student entities
	notesHandler := notesfeature.NewHandler(notes, deps.Blobs, logger)
	r.Mount("/api/notes", notesfeature.Routes(notesHandler, tokens))

	projectsHandler := projectsfeature.NewHandler(projects, deps.Blobs, logger)
	r.Mount("/api/projects", projectsfeature.Routes(projectsHandler, tokens))

	deadlinesHandler := deadlinesfeature.NewHandler(deadlines, deps.Blobs, logger)
	r.Mount("/api/deadlines", deadlinesfeature.Routes(deadlinesHandler, tokens))

	// Study groups: membership, invitations, shared resources, group files
	groupsHandler := groupsfeature.NewHandler(
		groups, students, invitations, shares, groupFiles,
		notes, projects, deps.Blobs, logger)
	r.Mount("/api/groups", groupsfeature.Routes(groupsHandler, tokens))

	// File downloads (attachments and group files)
	filesHandler := filesfeature.NewHandler(deps.Blobs, logger)
	r.Mount("/api/files", filesfeature.Routes(filesHandler, tokens))

	return r, nil
}
