package models

import "time"

// DateLayout is the calendar-date format used for streak bookkeeping.
const DateLayout = "2006-01-02"

// HistoryEntry tracks the spaced-repetition state for one question.
// Created on the first answer, mutated on every subsequent one, never deleted.
type HistoryEntry struct {
	Interval   int       `json:"interval"` // days, always >= 1
	NextReview time.Time `json:"next_review"`
	LastScore  int       `json:"last_score"`
}

// LearnerProfile is the durable per-device record of study progress.
// There is exactly one per device; it starts zero-valued on first run.
type LearnerProfile struct {
	History          map[int]HistoryEntry `json:"history"`
	Streak           int                  `json:"streak"`
	LastStudyDate    string               `json:"last_study_date,omitempty"` // DateLayout, empty before first session
	TotalTimeSeconds int64                `json:"total_time_seconds"`
	WeakItems        []int                `json:"weak_items,omitempty"` // question ids answered wrong at least once, no duplicates
}

// NewLearnerProfile returns a zero-default profile for a first run.
func NewLearnerProfile() LearnerProfile {
	return LearnerProfile{History: make(map[int]HistoryEntry)}
}

// Clone returns a deep copy so callers can update a profile without
// sharing map or slice state with the previous value.
func (p LearnerProfile) Clone() LearnerProfile {
	out := p
	out.History = make(map[int]HistoryEntry, len(p.History))
	for id, e := range p.History {
		out.History[id] = e
	}
	if p.WeakItems != nil {
		out.WeakItems = make([]int, len(p.WeakItems))
		copy(out.WeakItems, p.WeakItems)
	}
	return out
}

// IsWeak reports whether the question id is already on the weak-item list.
func (p LearnerProfile) IsWeak(questionID int) bool {
	for _, id := range p.WeakItems {
		if id == questionID {
			return true
		}
	}
	return false
}

// Stats is the aggregate snapshot handed to the presentation layer.
type Stats struct {
	AccuracyPercent int                    `json:"accuracy_percent"`
	TotalTime       string                 `json:"total_time"`
	Streak          int                    `json:"streak"`
	Answered        int                    `json:"answered"`
	Correct         int                    `json:"correct"`
	WeakItems       int                    `json:"weak_items"`
	Subjects        map[string]SubjectStat `json:"subjects"`
}

// SubjectStat breaks answered/correct counts down by subject.
type SubjectStat struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}
