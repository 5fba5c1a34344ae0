// Package engine is the session and scoring core. All functions are pure
// value-in/value-out transitions over models values; the caller owns the
// latest state and persists it. Time always arrives as a parameter so
// every transition is reproducible.
package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"denken-plus-api/models"
)

// DailySetSize is how many questions make up the daily set.
const DailySetSize = 5

// StartSession builds a session queue for the given mode and subject.
//
//	drill: every question in the catalog, uniformly shuffled; subject ignored.
//	quiz, flash: questions for the subject, in catalog order.
//	learn: learning content for the subject, in catalog order.
//	daily: deterministic 5-question set for now's calendar day; subject ignored.
//
// Returns ErrCatalogNotLoaded when cat is nil and ErrEmptyQueue when the
// resulting queue has no items; no session exists in either case.
func StartSession(mode models.Mode, subject string, cat *models.Catalog, now time.Time) (models.Session, error) {
	if !models.ValidMode(mode) {
		return models.Session{}, ErrInvalidMode
	}
	if cat == nil {
		return models.Session{}, ErrCatalogNotLoaded
	}

	s := models.Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Subject:   subject,
		StartedAt: now,
	}

	switch mode {
	case models.ModeDrill:
		s.Subject = models.SubjectAll
		s.Questions = shuffled(cat.Questions)
	case models.ModeDaily:
		s.Subject = models.SubjectAll
		s.Questions = DailySet(cat, now)
	case models.ModeQuiz, models.ModeFlash:
		s.Questions = cat.QuestionsBySubject(subject)
	case models.ModeLearn:
		s.Content = cat.ContentBySubject(subject)
	}

	if s.Length() == 0 {
		return models.Session{}, ErrEmptyQueue
	}
	return s, nil
}

// DailySet returns the day's question set: a deterministic permutation of
// the full catalog seeded by the calendar day-of-month, truncated to
// DailySetSize. The same day and catalog ordering always yield the same
// set; a smaller catalog yields the whole catalog permuted.
func DailySet(cat *models.Catalog, now time.Time) []models.Question {
	qs := make([]models.Question, len(cat.Questions))
	copy(qs, cat.Questions)

	r := rand.New(rand.NewSource(int64(now.Day())))
	r.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})

	if len(qs) > DailySetSize {
		qs = qs[:DailySetSize]
	}
	return qs
}

func shuffled(qs []models.Question) []models.Question {
	out := make([]models.Question, len(qs))
	copy(out, qs)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Advance moves the session one step and returns the updated session plus
// a completed flag. Forward past the last item is the completion event:
// the caller reacts to completed=true exactly once (streak update, save,
// end-of-session screen).
//
// In question modes a forward advance is only valid once the current
// question has been scored (ErrNotAnswered otherwise). Backward is a
// learn-mode affordance and is a no-op at position 0.
func Advance(s models.Session, dir models.Direction) (models.Session, bool, error) {
	if s.Completed() {
		return s, true, ErrSessionCompleted
	}

	switch dir {
	case models.Forward:
		if s.Mode.QuestionMode() && !s.Answered {
			return s, false, ErrNotAnswered
		}
		s.Position++
		s.Answered = false
		return s, s.Completed(), nil
	case models.Backward:
		if s.Mode != models.ModeLearn {
			return s, false, ErrBackwardNotAllowed
		}
		if s.Position > 0 {
			s.Position--
		}
		return s, false, nil
	default:
		return s, false, ErrInvalidDirection
	}
}

// MarkAnswered flags the current question as scored so a forward advance
// becomes valid.
func MarkAnswered(s models.Session) models.Session {
	s.Answered = true
	return s
}
