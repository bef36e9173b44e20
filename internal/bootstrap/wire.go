package bootstrap

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/application/auth"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/config"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/infrastructure/db/postgres"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/infrastructure/security"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/logger"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/migrate"
	http_handlers "github.com/MaxMolina1975/amistapp/services/identity-service/internal/transport/http/handlers"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/transport/http/middleware"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/transport/http/response"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/transport/http/router"
)

const tokenIssuer = "amistapp-identity"

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)
	NewDB      func(dsn string, debug bool) (*sql.DB, error)
	NewRouter  func(router.Deps) (http.Handler, error)
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRouter:  router.New,
	}
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.InsecureSecret {
		logger.Logger.Warn().Msg("running with the insecure dev JWT secret; sessions are forgeable")
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = db.Close() }

	// 2) startup barrier: the schema must be in a known state before any
	// listener exists. A migration failure here aborts the process.
	runner := migrate.NewRunner(db, logger.Logger)
	applied, err := runner.ApplyAll(context.Background(), cfg.MigrationsDir)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Logger.Info().Int("applied", applied).Msg("migrations up to date")

	// 3) repos + primitives
	store := postgres.NewStore(db)
	users := postgres.NewUserRepo(store)
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, tokenIssuer)

	// 4) application service
	svc := auth.NewService(users, hasher, signer, logger.Logger, auth.Config{
		AccessTTL: cfg.AccessTokenTTL,
	})

	// 5) transport
	authMW := middleware.Auth(signer, response.WriteError)
	adminMW := middleware.RequireRole(response.WriteError, domain.RoleAdmin)

	handler, err := deps.NewRouter(router.Deps{
		Health:    http_handlers.NewHealthHandler(db),
		Auth:      http_handlers.NewAuthHandler(svc),
		RequestID: middleware.RequestID,
		AuthMW:    authMW,
		AdminMW:   adminMW,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return srv, cleanup, nil
}
