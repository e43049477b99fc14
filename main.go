package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"plantdesk/handlers"
	"plantdesk/session"
	"plantdesk/utils"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment:", os.Getenv("APP_ENV"))

	pgDSN := os.Getenv("DATABASE_URL")
	dbPool, pgErr := utils.OpenDB(pgDSN)
	if pgErr != nil {
		log.Fatalf("Failed to connect to database: %v", pgErr)
	}
	defer dbPool.Close()

	redisDSN := os.Getenv("REDIS_URL")
	redisPool := session.OpenRedisPool(redisDSN)
	defer redisPool.Close()

	// Sessions: idle timeout enforced by the manager on every request; the
	// store TTL is a backstop that reaps records nothing writes to anymore.
	store := session.NewRedisStore(redisPool, 24*time.Hour)
	manager := session.NewManager(store, idleTimeoutFromEnv())

	// Set up the HTTP server and handlers
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.Dashboard(w, r, manager)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		handlers.LoginPageHandler(w, r, manager)
	})
	mux.HandleFunc("/login-submit", func(w http.ResponseWriter, r *http.Request) {
		handlers.LoginHandler(w, r, dbPool, manager)
	})
	mux.HandleFunc("/logOut", func(w http.ResponseWriter, r *http.Request) {
		handlers.LogOutHandler(w, r, dbPool, manager)
	})
	mux.HandleFunc("/section/", func(w http.ResponseWriter, r *http.Request) {
		handlers.SectionHandler(w, r, dbPool, manager)
	})
	mux.HandleFunc("/staff/new", func(w http.ResponseWriter, r *http.Request) {
		handlers.NewStaffForm(w, r, manager)
	})
	mux.HandleFunc("/staff/create", func(w http.ResponseWriter, r *http.Request) {
		handlers.CreateStaffHandler(w, r, dbPool, manager)
	})
	mux.HandleFunc("/activity", func(w http.ResponseWriter, r *http.Request) {
		handlers.ActivityHandler(w, r, dbPool, manager)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Starting server on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func idleTimeoutFromEnv() time.Duration {
	raw := os.Getenv("SESSION_IDLE_SECONDS")
	if raw == "" {
		return session.DefaultIdleTimeout
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Printf("ignoring invalid SESSION_IDLE_SECONDS %q", raw)
		return session.DefaultIdleTimeout
	}
	return time.Duration(secs) * time.Second
}
