package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/rs/cors"

	"todo-ai-backend/internal/ai"
	"todo-ai-backend/internal/auth"
	"todo-ai-backend/internal/config"
	"todo-ai-backend/internal/db"
	"todo-ai-backend/internal/events"
	"todo-ai-backend/internal/tasks"
)

// ----------------------
//        MAIN
// ----------------------

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Failed to connect DB:", err)
	}
	defer database.Close()

	if err := db.Migrate(context.Background(), database); err != nil {
		log.Fatal("❌ Failed to create schema:", err)
	}

	log.Println("✅ Connected to PostgreSQL!")

	advisor := ai.New(cfg.OpenAIKey, cfg.OpenAIModel)
	if cfg.OpenAIKey == "" {
		log.Println("OPENAI_API_KEY not set, priority advisor runs on the heuristic only")
	}

	store := tasks.NewStore(database)
	service := tasks.NewService(store, advisor)
	handler := tasks.NewHandler(service, events.New(database))

	mux := http.NewServeMux()

	// Root + health endpoints
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "TODO API",
			"version": "0.1.0",
		})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// protect wraps task routes with JWT auth when a secret is set
	protect := func(h http.HandlerFunc) http.HandlerFunc { return h }

	if cfg.AuthSecret != "" {
		mw := auth.New([]byte(cfg.AuthSecret))
		protect = mw.Wrap

		tokenHandler := &auth.TokenHandler{
			Secret:     []byte(cfg.AuthSecret),
			APIKeyHash: []byte(cfg.AuthAPIKeyHash),
		}
		mux.HandleFunc("/auth/token", tokenHandler.IssueToken)

		log.Println("🔒 Bearer auth enabled for /tasks routes")
	}

	// ----- TASKS API -----
	mux.HandleFunc("/tasks", protect(handler.Collection))
	mux.HandleFunc("/tasks/priority/analyze", protect(handler.Analyze))
	mux.HandleFunc("/tasks/", protect(handler.Item))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	log.Println("🚀 API server is running on", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, c.Handler(mux)))
}
