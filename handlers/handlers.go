package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"denken-plus-api/db"
	"denken-plus-api/models"
	"denken-plus-api/utils"
)

// App owns all mutable state: the catalog (or its load error), the learner
// profile and the current session. Handlers are the only writers and take
// the mutex for the duration of each event, so state transitions stay
// serialized exactly like the single-threaded event loop the web client
// had. The engine itself never sees shared state.
type App struct {
	mu         sync.Mutex
	db         *db.DB
	catalog    *models.Catalog
	catalogErr error
	profile    models.LearnerProfile
	session    *models.Session

	now func() time.Time // injectable for tests
}

func NewApp(database *db.DB, catalog *models.Catalog, catalogErr error) *App {
	return &App{
		db:         database,
		catalog:    catalog,
		catalogErr: catalogErr,
		profile:    database.LoadProfile(),
		now:        time.Now,
	}
}

// persist saves the profile after a mutating event. A failure is logged
// and otherwise ignored: the in-memory profile stays authoritative and
// the next mutating event is the retry.
func (a *App) persist() {
	if err := a.db.SaveProfile(a.profile); err != nil {
		utils.LogError("Profile save failed, will retry on next event: %v", err)
	}
}

func NewRouter(database *db.DB, catalog *models.Catalog, catalogErr error) http.Handler {
	app := NewApp(database, catalog, catalogErr)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", healthCheck)

	// Catalog overview and formula book
	mux.HandleFunc("/catalog", app.HandleCatalog)
	mux.HandleFunc("/formulas", app.HandleFormulas)

	// Session lifecycle
	mux.HandleFunc("/session", app.HandleSession)
	mux.HandleFunc("/session/answer", app.HandleAnswer)
	mux.HandleFunc("/session/advance", app.HandleAdvance)

	// Aggregate stats
	mux.HandleFunc("/stats", app.HandleStats)

	return corsMiddleware(mux)
}

// CORS middleware: the presentation layer is a browser.
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

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("Health check requested")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.LogError("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
