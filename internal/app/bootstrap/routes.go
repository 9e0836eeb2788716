// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	emailtemplatesfeature "github.com/dalemusser/flattrack/internal/app/features/emailtemplates"
	healthfeature "github.com/dalemusser/flattrack/internal/app/features/health"
	loginfeature "github.com/dalemusser/flattrack/internal/app/features/login"
	logoutfeature "github.com/dalemusser/flattrack/internal/app/features/logout"
	positionsfeature "github.com/dalemusser/flattrack/internal/app/features/positions"
	projectsfeature "github.com/dalemusser/flattrack/internal/app/features/projects"
	sitevisitsfeature "github.com/dalemusser/flattrack/internal/app/features/sitevisits"
	userinfofeature "github.com/dalemusser/flattrack/internal/app/features/userinfo"
	usersfeature "github.com/dalemusser/flattrack/internal/app/features/users"
	"github.com/dalemusser/flattrack/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// FlatTrack is a JSON API with a static front end: every feature mounts
// under /api, the SPA assets are served from /static, and session
// middleware runs globally so auth.CurrentUser works in any handler.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.FlatTrackMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.FlatTrackMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Registers /api/userinfo itself, so it hangs off the root router.
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	r.Route("/api", func(api chi.Router) {
		loginHandler := loginfeature.NewHandler(db, logger)
		api.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(logger)
		api.Mount("/logout", logoutfeature.Routes(logoutHandler))

		projectsHandler := projectsfeature.NewHandler(db, logger)
		api.Mount("/projects", projectsfeature.Routes(projectsHandler))

		usersHandler := usersfeature.NewHandler(db, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler))

		positionsHandler := positionsfeature.NewHandler(db, logger)
		api.Mount("/positions", positionsfeature.Routes(positionsHandler))

		templatesHandler := emailtemplatesfeature.NewHandler(db, logger)
		api.Mount("/email-templates", emailtemplatesfeature.Routes(templatesHandler))

		siteVisitsHandler := sitevisitsfeature.NewHandler(db, deps.MailDispatch, logger)
		api.Mount("/site-visits", sitevisitsfeature.Routes(siteVisitsHandler))
	})

	return r, nil
}
