package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kill-n-keep/api/internal/database"
	"github.com/kill-n-keep/api/internal/engine"
	"github.com/kill-n-keep/api/internal/handlers"
	"github.com/kill-n-keep/api/internal/leaderboard"
	"github.com/kill-n-keep/api/internal/middleware"
	redisclient "github.com/kill-n-keep/api/internal/redis"
	"github.com/kill-n-keep/api/internal/session"
)

const version = "1.0.0"

func main() {
	// Load configuration from environment
	if err := godotenv.Load(); err == nil {
		log.Println("[API] Loaded environment from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Core state lives in memory; Redis and Postgres are optional
	sessions := session.NewStore()
	var board leaderboard.Store = leaderboard.NewMemoryStore()

	var cache *redisclient.Client
	if redisclient.Enabled() {
		log.Println("[API] Initializing Redis connection...")
		c, err := redisclient.NewClient(redisclient.LoadConfigFromEnv())
		if err != nil {
			log.Fatalf("[API] Failed to connect to Redis: %v", err)
		}
		cache = c
		board = redisclient.NewLeaderboardStore(c)
		log.Println("[API] Leaderboard backed by Redis")
	} else {
		log.Println("[API] REDIS_HOST not set, using in-memory leaderboard")
	}

	var db *database.DB
	if database.Enabled() {
		log.Println("[API] Initializing database connection...")
		conn, err := database.NewConnection(database.LoadConfigFromEnv())
		if err != nil {
			log.Fatalf("[API] Failed to connect to database: %v", err)
		}
		defer conn.Close()

		if err := conn.InitSchema(); err != nil {
			log.Fatalf("[API] Failed to initialize schema: %v", err)
		}
		db = conn
	} else {
		log.Println("[API] DB_HOST not set, result archiving disabled")
	}

	// Initialize engine and handlers
	eng := engine.New(sessions, board, db, cache)
	gameHandler := handlers.NewGameHandler(eng)
	leaderboardHandler := handlers.NewLeaderboardHandler(eng)

	// Setup HTTP routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "OK",
			"timestamp": time.Now().UnixMilli(),
			"version":   version,
		})
	})

	// Game routes
	mux.HandleFunc("/api/game/start", gameHandler.StartGame)
	mux.HandleFunc("/api/wave/start", gameHandler.StartWave)
	mux.HandleFunc("/api/wave/enemy-spawned", gameHandler.EnemySpawned)
	mux.HandleFunc("/api/wave/enemy-killed", gameHandler.EnemyKilled)
	mux.HandleFunc("/api/wave/complete", gameHandler.CompleteWave)

	// Session routes
	mux.HandleFunc("/api/session/{sessionId}/status", gameHandler.GetStatus)
	mux.HandleFunc("/api/session/complete", gameHandler.CompleteSession)

	// Leaderboard routes
	mux.HandleFunc("/api/leaderboard/{boardType}", leaderboardHandler.GetLeaderboard)

	// Middleware
	handler := middleware.Recover(corsMiddleware(mux))

	// Start server
	log.Printf("[API] Starting server on port %s...", port)
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("[API] Server failed: %v", err)
	}
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
