package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/opstat/opstat/internal/api/http"
	"github.com/opstat/opstat/internal/access"
	"github.com/opstat/opstat/internal/audit"
	auth "github.com/opstat/opstat/internal/auth/middleware"
	"github.com/opstat/opstat/internal/catalog"
	"github.com/opstat/opstat/internal/config"
	"github.com/opstat/opstat/internal/db"
	"github.com/opstat/opstat/internal/form"
	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/rbac"
	"github.com/opstat/opstat/internal/submission"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		catStore   catalog.Store
		grantStore access.GrantStore
		subStore   submission.Store
		userStore  identity.Store
		eventLog   audit.Log
	)
	switch cfg.DBDriver {
	case "memory":
		cat := catalog.NewMemoryStore()
		grants := access.NewMemoryGrantStore()
		users := identity.NewMemoryStore()
		if cfg.SeedDemo {
			seedMemory(ctx, cat, grants, users)
		}
		catStore, grantStore, userStore = cat, grants, users
		subStore = submission.NewMemoryStore()
		eventLog = audit.NewMemoryLog()
	default:
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		if cfg.SeedDemo {
			if err := db.SeedDemo(ctx, dbh); err != nil {
				log.Fatalf("seed: %v", err)
			}
		}
		catStore = catalog.NewSQLStore(dbh)
		grantStore = access.NewSQLGrantStore(dbh)
		subStore = submission.NewSQLStore(dbh)
		userStore = identity.NewSQLStore(dbh)
		eventLog = audit.NewSQLLog(dbh)
	}

	filter := access.NewFilter(grantStore)
	svc := form.NewService(catStore, filter, subStore)
	authSvc := auth.NewAuthService(cfg.AuthSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, userStore))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromStore(userStore, cfg.Mode == config.ModeOffline))

		pr.With(rbac.Require("form:view")).
			Get("/form", api.GetFormHandler(svc, userStore, cfg.CompanyScope))
		pr.With(rbac.Require("form:view")).
			Get("/form/next", api.NextFormHandler(svc, userStore, cfg.CompanyScope))
		pr.With(rbac.Require("form:view")).
			Get("/form/previous", api.PreviousFormHandler(svc, userStore, cfg.CompanyScope))

		pr.With(rbac.Require("stats:save")).
			Post("/statistics", api.SaveStatisticsHandler(subStore, userStore, filter, eventLog))
		pr.With(rbac.Require("form:view")).
			Get("/statistics", api.ListStatisticsHandler(subStore, userStore))

		pr.With(rbac.Require("catalog:view")).
			Get("/catalog/modules", api.ListModulesHandler(catStore))
		pr.With(rbac.Require("catalog:view")).
			Get("/catalog/modules/{moduleID}/topics", api.ListTopicsHandler(catStore, filter))

		pr.With(rbac.Require("events:view")).
			Get("/events", api.ListEventsHandler(eventLog))

		pr.With(rbac.RequireAny("user:change_password", "users:manage")).
			Post("/users/change-password", api.ChangePasswordHandler(userStore))
		pr.With(rbac.Require("users:manage")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(userStore))
		pr.With(rbac.Require("users:manage")).
			Get("/users", api.ListUsersHandler(userStore))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
