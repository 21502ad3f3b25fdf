// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	artifactsfeature "github.com/archhub/archhub/internal/app/features/artifacts"
	componentsfeature "github.com/archhub/archhub/internal/app/features/components"
	healthfeature "github.com/archhub/archhub/internal/app/features/health"
	membersfeature "github.com/archhub/archhub/internal/app/features/members"
	organizationsfeature "github.com/archhub/archhub/internal/app/features/organizations"
	projectsfeature "github.com/archhub/archhub/internal/app/features/projects"
	relationshipsfeature "github.com/archhub/archhub/internal/app/features/relationships"
	reportsfeature "github.com/archhub/archhub/internal/app/features/reports"
	usersfeature "github.com/archhub/archhub/internal/app/features/users"
	"github.com/archhub/archhub/internal/app/graph/cascade"
	"github.com/archhub/archhub/internal/app/graph/membership"
	graphrels "github.com/archhub/archhub/internal/app/graph/relationships"
	"github.com/archhub/archhub/internal/app/graph/reports"
	artifactstore "github.com/archhub/archhub/internal/app/store/artifacts"
	componentstore "github.com/archhub/archhub/internal/app/store/components"
	memberstore "github.com/archhub/archhub/internal/app/store/members"
	projectstore "github.com/archhub/archhub/internal/app/store/projects"
	relationshipstore "github.com/archhub/archhub/internal/app/store/relationships"
	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The graph engines (relationship
// validator, cascade orchestrator, membership guard, report engine) are
// built once here and shared by the feature handlers; the per-entity
// stores are cheap wrappers the handlers create from the database as
// needed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("artifact storage init failed", zap.Error(err))
		return nil, err
	}

	orchestrator := cascade.New(db, files, logger)
	validator := graphrels.New(componentstore.New(db), relationshipstore.New(db), logger)
	guard := membership.New(projectstore.New(db), userstore.New(db), memberstore.New(db), logger)
	engine := reports.New(projectstore.New(db), componentstore.New(db), relationshipstore.New(db), artifactstore.New(db))

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		orgHandler := organizationsfeature.NewHandler(db, orchestrator, logger)
		api.Mount("/organizations", organizationsfeature.Routes(orgHandler))

		userHandler := usersfeature.NewHandler(db, orchestrator, logger)
		api.Mount("/users", usersfeature.Routes(userHandler))

		projectHandler := projectsfeature.NewHandler(db, orchestrator, engine, logger)
		api.Mount("/projects", projectsfeature.Routes(projectHandler))

		componentHandler := componentsfeature.NewHandler(db, orchestrator, logger)
		api.Mount("/components", componentsfeature.Routes(componentHandler))

		relHandler := relationshipsfeature.NewHandler(db, validator, orchestrator, logger)
		api.Mount("/relationships", relationshipsfeature.Routes(relHandler))

		artifactHandler := artifactsfeature.NewHandler(db, orchestrator, logger)
		api.Mount("/artifacts", artifactsfeature.Routes(artifactHandler))

		memberHandler := membersfeature.NewHandler(db, guard, logger)
		api.Mount("/members", membersfeature.Routes(memberHandler))

		reportHandler := reportsfeature.NewHandler(engine, logger)
		api.Mount("/reports", reportsfeature.Routes(reportHandler))
	})

	return r, nil
}
