package models

import "time"

// Mode selects how a session's queue is built.
type Mode string

const (
	ModeLearn Mode = "learn" // reading material, sequential, can go back
	ModeQuiz  Mode = "quiz"  // subject questions in catalog order
	ModeFlash Mode = "flash" // subject questions as flashcards, self-graded
	ModeDrill Mode = "drill" // full catalog, shuffled, subject ignored
	ModeDaily Mode = "daily" // 5 questions, deterministic per calendar day
)

// ValidMode reports whether m is one of the defined modes.
func ValidMode(m Mode) bool {
	switch m {
	case ModeLearn, ModeQuiz, ModeFlash, ModeDrill, ModeDaily:
		return true
	}
	return false
}

// QuestionMode reports whether the mode walks questions (as opposed to
// learning content).
func (m Mode) QuestionMode() bool {
	return m != ModeLearn
}

// Direction is the way advance() moves through the queue.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward" // learn mode only
)

// Session is one in-progress walk through a queue of items. Transient:
// never persisted, discarded when the learner returns home or starts a
// new mode. The queue snapshots the resolved catalog items so a session
// is self-contained once started.
type Session struct {
	ID        string            `json:"id"`
	Mode      Mode              `json:"mode"`
	Subject   string            `json:"subject"`
	Questions []Question        `json:"questions,omitempty"`
	Content   []LearningContent `json:"content,omitempty"`
	Position  int               `json:"position"` // 0 <= Position <= Length(); == Length() means completed
	Answered  bool              `json:"answered"` // current question has been scored
	StartedAt time.Time         `json:"started_at"`
}

// Length returns the queue length for the session's mode.
func (s *Session) Length() int {
	if s.Mode == ModeLearn {
		return len(s.Content)
	}
	return len(s.Questions)
}

// Completed reports whether the session has walked past its last item.
func (s *Session) Completed() bool {
	return s.Position >= s.Length()
}

// CurrentQuestion returns the question at the current position, or nil
// when the session is completed or not a question mode.
func (s *Session) CurrentQuestion() *Question {
	if s.Mode == ModeLearn || s.Completed() {
		return nil
	}
	return &s.Questions[s.Position]
}

// CurrentContent returns the learning content at the current position,
// or nil when the session is completed or not in learn mode.
func (s *Session) CurrentContent() *LearningContent {
	if s.Mode != ModeLearn || s.Completed() {
		return nil
	}
	return &s.Content[s.Position]
}
