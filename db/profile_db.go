package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"denken-plus-api/models"
	"denken-plus-api/utils"
)

const profileKey = "learner_profile"

// LoadProfile returns the stored learner profile, or a zero-default one
// when nothing has been stored yet. Absence of data is not an error and
// neither is a corrupt row: both fall back to the default profile so a
// fresh install and a damaged store behave the same way.
func (db *DB) LoadProfile() models.LearnerProfile {
	utils.LogDB("Loading learner profile")

	var raw string
	err := db.QueryRow(`SELECT value FROM app_data WHERE key = ?`, profileKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		utils.LogDB("No stored profile, starting with defaults")
		return models.NewLearnerProfile()
	}
	if err != nil {
		utils.LogError("Failed to read profile, starting with defaults: %v", err)
		return models.NewLearnerProfile()
	}

	var profile models.LearnerProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		utils.LogError("Stored profile is not valid JSON, starting with defaults: %v", err)
		return models.NewLearnerProfile()
	}
	if profile.History == nil {
		profile.History = make(map[int]models.HistoryEntry)
	}

	utils.LogDB("Profile loaded: %d history entries, streak %d", len(profile.History), profile.Streak)
	return profile
}

// SaveProfile writes the profile as one JSON document. A failure is
// returned for the caller to log; it must never abort an in-progress
// session, the in-memory profile stays authoritative and the next
// mutating event retries.
func (db *DB) SaveProfile(profile models.LearnerProfile) error {
	start := time.Now()

	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        INSERT INTO app_data (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
    `, profileKey, string(raw))
	if err != nil {
		return err
	}

	utils.LogDB("Profile saved (%d bytes) in %v", len(raw), time.Since(start))
	return nil
}
