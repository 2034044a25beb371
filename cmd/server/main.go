package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/skillloop/backend/internal/auth"
	"github.com/skillloop/backend/internal/database"
	"github.com/skillloop/backend/internal/evaluator"
	"github.com/skillloop/backend/internal/middleware"
	"github.com/skillloop/backend/internal/modules"
	"github.com/skillloop/backend/internal/sessions"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services and handlers
	evalService := evaluator.NewService()
	moduleStore := modules.NewStore(db)
	sessionStore := sessions.NewStore(db)

	authHandler := auth.NewHandler(db)
	moduleHandler := modules.NewHandler(moduleStore, evalService)
	sessionHandler := sessions.NewHandler(sessionStore, moduleStore, evalService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/modules", moduleHandler.Generate).Methods("POST")
	protected.HandleFunc("/modules", moduleHandler.List).Methods("GET")
	protected.HandleFunc("/modules/{id}", moduleHandler.Get).Methods("GET")

	protected.HandleFunc("/sessions", sessionHandler.Create).Methods("POST")
	protected.HandleFunc("/sessions", sessionHandler.List).Methods("GET")
	protected.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET")
	protected.HandleFunc("/sessions/{id}", sessionHandler.Update).Methods("PATCH")
	protected.HandleFunc("/sessions/{id}/hint", sessionHandler.RequestHint).Methods("POST")
	protected.HandleFunc("/sessions/{id}/submit", sessionHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/sessions/{id}/submit/stream", sessionHandler.SubmitAnswerStream).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
