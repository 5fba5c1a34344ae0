package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"denken-plus-api/engine"
	"denken-plus-api/models"
	"denken-plus-api/utils"
)

// HandleSession covers the session lifecycle: POST starts one, GET shows
// the current state, DELETE discards it (back to the home screen).
func (a *App) HandleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.startSession(w, r)
	case http.MethodGet:
		a.getSession(w, r)
	case http.MethodDelete:
		a.discardSession(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (a *App) startSession(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Subject == "" {
		req.Subject = models.SubjectAll
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	session, err := engine.StartSession(req.Mode, req.Subject, a.catalog, a.now())
	if err != nil {
		a.startSessionError(w, req, err)
		return
	}

	// Starting a mode discards whatever session was in flight.
	a.session = &session

	utils.LogHTTP("Session %s started: mode=%s subject=%s length=%d",
		session.ID, session.Mode, session.Subject, session.Length())
	writeJSON(w, http.StatusCreated, models.NewSessionView(&session))
}

func (a *App) startSessionError(w http.ResponseWriter, req models.StartSessionRequest, err error) {
	switch {
	case errors.Is(err, engine.ErrCatalogNotLoaded):
		msg := "Catalog is not available"
		if a.catalogErr != nil {
			msg = "Catalog failed to load: " + a.catalogErr.Error()
		}
		utils.LogHTTP("Refused to start session, no catalog: mode=%s subject=%s", req.Mode, req.Subject)
		writeError(w, http.StatusServiceUnavailable, msg)
	case errors.Is(err, engine.ErrEmptyQueue):
		utils.LogHTTP("No items for mode=%s subject=%s", req.Mode, req.Subject)
		writeError(w, http.StatusNotFound, "No items available for this mode and subject")
	case errors.Is(err, engine.ErrInvalidMode):
		writeError(w, http.StatusBadRequest, "Unknown mode: "+string(req.Mode))
	default:
		utils.LogError("Failed to start session: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to start session")
	}
}

func (a *App) getSession(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		writeError(w, http.StatusNotFound, "No active session")
		return
	}
	writeJSON(w, http.StatusOK, models.NewSessionView(a.session))
}

func (a *App) discardSession(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		utils.LogHTTP("Session %s discarded", a.session.ID)
	}
	a.session = nil
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

// HandleAnswer scores the current question and folds the result into the
// learner profile. Answers that arrive after the session completed, for a
// question that is not the current one, or twice for the same question
// are idempotent no-ops reported with ignored=true.
func (a *App) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		writeError(w, http.StatusNotFound, "No active session")
		return
	}
	if a.session.Mode == models.ModeLearn {
		writeError(w, http.StatusBadRequest, "Learn mode has nothing to answer")
		return
	}

	current := a.session.CurrentQuestion()
	if current == nil || current.ID != req.QuestionID || a.session.Answered {
		utils.LogHTTP("Ignoring stale answer: session=%s question=%d", a.session.ID, req.QuestionID)
		writeJSON(w, http.StatusOK, models.AnswerResult{Ignored: true})
		return
	}

	score := req.SelfScore
	if score == 0 {
		score = engine.ScoreAnswer(current, req.SelectedOption)
	} else if a.session.Mode != models.ModeFlash {
		writeError(w, http.StatusBadRequest, "Self-assessment is only for flashcard sessions")
		return
	}

	profile, err := engine.RecordAnswer(a.profile, current.ID, score, a.now())
	if err != nil {
		if errors.Is(err, engine.ErrInvalidScore) {
			writeError(w, http.StatusBadRequest, "Score must be between 1 and 5")
			return
		}
		utils.LogError("Failed to record answer: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to record answer")
		return
	}

	a.profile = profile
	updated := engine.MarkAnswered(*a.session)
	a.session = &updated
	a.persist()

	entry := a.profile.History[current.ID]
	utils.LogHTTP("Answer recorded: session=%s question=%d score=%d interval=%d",
		a.session.ID, current.ID, score, entry.Interval)

	writeJSON(w, http.StatusOK, models.AnswerResult{
		Correct:     score >= engine.PassThreshold,
		Score:       score,
		Answer:      current.Answer,
		Explanation: current.Explanation,
		URL:         current.URL,
		Interval:    entry.Interval,
	})
}

// HandleAdvance moves the session forward (or backward in learn mode).
// The step that walks past the last item is the completion event: streak
// and study time are updated once, the profile is saved, and the client
// gets completed=true.
func (a *App) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Direction == "" {
		req.Direction = models.Forward
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		writeError(w, http.StatusNotFound, "No active session")
		return
	}

	session, completed, err := engine.Advance(*a.session, req.Direction)
	switch {
	case errors.Is(err, engine.ErrSessionCompleted):
		// Already done; repeat calls are harmless.
		writeJSON(w, http.StatusOK, models.AdvanceResult{Completed: true, Session: models.NewSessionView(a.session)})
		return
	case errors.Is(err, engine.ErrNotAnswered):
		writeError(w, http.StatusConflict, "Answer the current question first")
		return
	case errors.Is(err, engine.ErrBackwardNotAllowed):
		writeError(w, http.StatusBadRequest, "Backward navigation is only available while learning")
		return
	case errors.Is(err, engine.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, "Unknown direction: "+string(req.Direction))
		return
	case err != nil:
		utils.LogError("Failed to advance session: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to advance session")
		return
	}

	a.session = &session

	if completed {
		now := a.now()
		a.profile = engine.UpdateStreak(a.profile, now)
		a.profile = engine.AddStudyTime(a.profile, now.Sub(session.StartedAt))
		a.persist()
		utils.LogHTTP("Session %s completed: mode=%s streak=%d", session.ID, session.Mode, a.profile.Streak)
	}

	writeJSON(w, http.StatusOK, models.AdvanceResult{Completed: completed, Session: models.NewSessionView(&session)})
}
