package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/openedu/essaygrade/internal/api/http"
	auth "github.com/openedu/essaygrade/internal/auth/middleware"
	"github.com/openedu/essaygrade/internal/autograde"
	"github.com/openedu/essaygrade/internal/config"
	"github.com/openedu/essaygrade/internal/db"
	"github.com/openedu/essaygrade/internal/glossary"
	"github.com/openedu/essaygrade/internal/gradelog"
	"github.com/openedu/essaygrade/internal/rbac"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	glossaries := glossary.NewSQLStore(dbh)
	if cfg.GlossarySeedDir != "" {
		n, err := glossary.Seed(ctx, glossaries, cfg.GlossarySeedDir)
		if err != nil {
			log.Fatalf("glossary seed: %v", err)
		}
		log.Printf("seeded %d glossaries from %s", n, cfg.GlossarySeedDir)
	}

	engine := autograde.NewEngine(autograde.WithSimilarityThreshold(cfg.SimilarityThreshold))
	audit := gradelog.NewRepo(dbh)

	// --- Auth (local JWT) ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	creds := auth.Credentials{DB: dbh, AdminUser: cfg.AdminUser, AdminPassHash: cfg.AdminPassHash}

	// --- Router ---
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

	r.Post("/auth/login", auth.LoginHandler(authSvc, creds))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Grading: the caller supplies the full question config; the
		// glossary snapshot is resolved server-side.
		pr.With(rbac.Require("grade:run")).
			Post("/grade", api.GradeHandler(engine, glossaries, audit))
		pr.With(rbac.Require("grade:run")).
			Get("/grades/recent", api.RecentGradesHandler(audit))

		// Live counter for the editing UI.
		pr.With(rbac.Require("count:run")).
			Post("/count", api.CountHandler())

		// Glossary collaborator maintenance.
		pr.With(rbac.Require("glossary:write")).
			Put("/glossaries/{glossaryID}", api.PutGlossaryHandler(glossaries))
		pr.With(rbac.RequireAny("glossary:view", "glossary:write")).
			Get("/glossaries/{glossaryID}", api.GetGlossaryHandler(glossaries))
		pr.With(rbac.RequireAny("glossary:view", "glossary:write")).
			Get("/glossaries", api.ListGlossariesHandler(glossaries))

		// Users
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
