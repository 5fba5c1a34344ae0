package handlers

import (
	"net/http"

	"denken-plus-api/engine"
	"denken-plus-api/models"
	"denken-plus-api/utils"
)

// HandleStats returns the aggregate snapshot for the stats screen.
func (a *App) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	a.mu.Lock()
	stats := engine.ComputeStats(a.profile, a.catalog)
	a.mu.Unlock()

	utils.LogHTTP("Stats requested: %d answered, %d%% accuracy, streak %d",
		stats.Answered, stats.AccuracyPercent, stats.Streak)
	writeJSON(w, http.StatusOK, stats)
}

// HandleCatalog reports what content is loaded, or the load error when
// startup fetching failed and no mode can start.
func (a *App) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	info := models.CatalogInfo{}
	if a.catalog == nil {
		if a.catalogErr != nil {
			info.Error = a.catalogErr.Error()
		}
		writeJSON(w, http.StatusOK, info)
		return
	}

	info.Loaded = true
	info.Subjects = a.catalog.Subjects()
	info.Questions = len(a.catalog.Questions)
	info.Content = len(a.catalog.LearningContent)
	info.Formulas = len(a.catalog.Formulas)
	writeJSON(w, http.StatusOK, info)
}

// HandleFormulas serves the formula book, filtered by ?subject= or all of
// it by default.
func (a *App) HandleFormulas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "Catalog is not available")
		return
	}

	subject := r.URL.Query().Get("subject")
	if subject == "" {
		subject = models.SubjectAll
	}

	formulas := a.catalog.FormulasBySubject(subject)
	if formulas == nil {
		formulas = []models.Formula{}
	}
	writeJSON(w, http.StatusOK, formulas)
}
