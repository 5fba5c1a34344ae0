package engine

import (
	"time"

	"denken-plus-api/models"
	"denken-plus-api/utils"
)

// Score bounds and the success threshold. Binary answers map to ScoreWrong
// and ScoreCorrect; flashcard self-assessment may use the full 1..5 range.
// Scores at or above PassThreshold grow the interval, below it reset.
const (
	ScoreWrong    = 1
	ScoreCorrect  = 5
	PassThreshold = 3
	MinScore      = 1
	MaxScore      = 5
)

// ScoreAnswer derives the score for a selected option: ScoreCorrect when
// it matches the question's answer, ScoreWrong otherwise. Comparison is
// case- and whitespace-insensitive.
func ScoreAnswer(q *models.Question, selectedOption string) int {
	if utils.NormalizeAnswer(selectedOption) == utils.NormalizeAnswer(q.Answer) {
		return ScoreCorrect
	}
	return ScoreWrong
}

// RecordAnswer folds one scored answer into the profile and returns the
// updated value; the input profile is not modified and persistence is the
// caller's concern.
//
// First answer to a question creates its history entry with interval 1.
// A passing score doubles the interval (uncapped); a failing score resets
// it to 1 and puts the question on the weak-item list. The next review is
// scheduled interval days after now, and the score is kept as last_score.
func RecordAnswer(p models.LearnerProfile, questionID, score int, now time.Time) (models.LearnerProfile, error) {
	if score < MinScore || score > MaxScore {
		return p, ErrInvalidScore
	}

	out := p.Clone()
	if out.History == nil {
		out.History = make(map[int]models.HistoryEntry)
	}

	entry, exists := out.History[questionID]
	if !exists {
		entry = models.HistoryEntry{Interval: 1}
	}

	if score >= PassThreshold {
		entry.Interval *= 2
	} else {
		entry.Interval = 1
		if !out.IsWeak(questionID) {
			out.WeakItems = append(out.WeakItems, questionID)
		}
	}

	entry.LastScore = score
	entry.NextReview = now.AddDate(0, 0, entry.Interval)
	out.History[questionID] = entry
	return out, nil
}

// UpdateStreak counts today as a study day. Idempotent per calendar date:
// the second and later calls on the same day change nothing, so completing
// several sessions in one day grows the streak by exactly one. Call it
// once per completed session.
func UpdateStreak(p models.LearnerProfile, today time.Time) models.LearnerProfile {
	date := today.Format(models.DateLayout)
	if p.LastStudyDate == date {
		return p
	}
	out := p.Clone()
	out.Streak++
	out.LastStudyDate = date
	return out
}

// AddStudyTime accumulates completed-session wall time into the profile.
func AddStudyTime(p models.LearnerProfile, d time.Duration) models.LearnerProfile {
	if d <= 0 {
		return p
	}
	out := p.Clone()
	out.TotalTimeSeconds += int64(d.Seconds())
	return out
}

// ComputeStats builds the aggregate snapshot for the presentation layer.
// Accuracy is floor(100 * passing entries / all entries), 0 with no
// history. The per-subject breakdown resolves subjects through the
// catalog and is skipped when the catalog is unavailable.
func ComputeStats(p models.LearnerProfile, cat *models.Catalog) models.Stats {
	stats := models.Stats{
		Streak:    p.Streak,
		TotalTime: utils.FormatStudyTime(p.TotalTimeSeconds),
		WeakItems: len(p.WeakItems),
		Subjects:  make(map[string]models.SubjectStat),
	}

	for id, entry := range p.History {
		stats.Answered++
		passed := entry.LastScore >= PassThreshold
		if passed {
			stats.Correct++
		}

		if cat == nil {
			continue
		}
		q, ok := cat.QuestionByID(id)
		if !ok {
			continue
		}
		sub := stats.Subjects[q.Subject]
		sub.Answered++
		if passed {
			sub.Correct++
		}
		stats.Subjects[q.Subject] = sub
	}

	if stats.Answered > 0 {
		stats.AccuracyPercent = 100 * stats.Correct / stats.Answered
	}
	return stats
}
