package models

// Request and response shapes for the HTTP boundary.

// StartSessionRequest starts a new session, replacing any current one.
type StartSessionRequest struct {
	Mode    Mode   `json:"mode"`
	Subject string `json:"subject"`
}

// AnswerRequest submits an answer for the current question. Quiz-style
// modes send the selected option; flash mode may send a 1-5
// self-assessment instead.
type AnswerRequest struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option,omitempty"`
	SelfScore      int    `json:"self_score,omitempty"`
}

// AdvanceRequest moves through the session queue.
type AdvanceRequest struct {
	Direction Direction `json:"direction"`
}

// SessionView is what the presentation layer renders: queue progress plus
// the current item, with exactly one of question/content set while the
// session is ongoing.
type SessionView struct {
	ID        string           `json:"id"`
	Mode      Mode             `json:"mode"`
	Subject   string           `json:"subject"`
	Length    int              `json:"length"`
	Position  int              `json:"position"`
	Completed bool             `json:"completed"`
	Question  *Question        `json:"question,omitempty"`
	Content   *LearningContent `json:"content,omitempty"`
}

// NewSessionView snapshots a session for rendering.
func NewSessionView(s *Session) SessionView {
	v := SessionView{
		ID:        s.ID,
		Mode:      s.Mode,
		Subject:   s.Subject,
		Length:    s.Length(),
		Position:  s.Position,
		Completed: s.Completed(),
	}
	v.Question = s.CurrentQuestion()
	v.Content = s.CurrentContent()
	return v
}

// AnswerResult reports how an answer was scored. Ignored is set for
// answers that arrived after completion or for a question that is not the
// current one; nothing changes in that case. The verdict fields are always
// present so a wrong answer is reported as correct=false rather than by
// omission.
type AnswerResult struct {
	Ignored     bool   `json:"ignored"`
	Correct     bool   `json:"correct"`
	Score       int    `json:"score"`
	Answer      string `json:"answer,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	URL         string `json:"url,omitempty"`
	Interval    int    `json:"interval"` // days until next suggested review
}

// AdvanceResult is the session state after an advance, with the
// completion event surfaced distinctly so the client can show the
// end-of-session screen exactly once.
type AdvanceResult struct {
	Completed bool        `json:"completed"`
	Session   SessionView `json:"session"`
}

// CatalogInfo tells the home screen what content is available, or why
// nothing is.
type CatalogInfo struct {
	Loaded    bool     `json:"loaded"`
	Error     string   `json:"error,omitempty"`
	Subjects  []string `json:"subjects,omitempty"`
	Questions int      `json:"questions"`
	Content   int      `json:"content"`
	Formulas  int      `json:"formulas"`
}
