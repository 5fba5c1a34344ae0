package models

// Question is a single multiple-choice question in the catalog.
// Immutable once loaded.
type Question struct {
	ID          int      `json:"id"`
	Subject     string   `json:"subject"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	URL         string   `json:"url,omitempty"`
}

// LearningContent is a reading item. Read sequentially, never scored.
type LearningContent struct {
	Subject string `json:"subject"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Example string `json:"example"`
	URL     string `json:"url,omitempty"`
}

// Formula is a reference formula, filtered by subject for display only.
type Formula struct {
	Subject     string `json:"subject"`
	Title       string `json:"title"`
	Formula     string `json:"formula"`
	Description string `json:"desc"`
	URL         string `json:"url,omitempty"`
}

// Catalog is the full content set loaded once at startup.
type Catalog struct {
	Questions       []Question        `json:"questions"`
	LearningContent []LearningContent `json:"learning_content"`
	Formulas        []Formula         `json:"formulas"`
}

// SubjectAll matches every subject when used as a filter.
const SubjectAll = "all"

// QuestionsBySubject returns the questions matching subject, in catalog order.
// SubjectAll returns every question.
func (c *Catalog) QuestionsBySubject(subject string) []Question {
	if subject == SubjectAll {
		out := make([]Question, len(c.Questions))
		copy(out, c.Questions)
		return out
	}
	var out []Question
	for _, q := range c.Questions {
		if q.Subject == subject {
			out = append(out, q)
		}
	}
	return out
}

// ContentBySubject returns the learning content matching subject, in catalog order.
func (c *Catalog) ContentBySubject(subject string) []LearningContent {
	if subject == SubjectAll {
		out := make([]LearningContent, len(c.LearningContent))
		copy(out, c.LearningContent)
		return out
	}
	var out []LearningContent
	for _, l := range c.LearningContent {
		if l.Subject == subject {
			out = append(out, l)
		}
	}
	return out
}

// FormulasBySubject returns the formulas matching subject, or all of them
// for SubjectAll.
func (c *Catalog) FormulasBySubject(subject string) []Formula {
	if subject == SubjectAll {
		out := make([]Formula, len(c.Formulas))
		copy(out, c.Formulas)
		return out
	}
	var out []Formula
	for _, f := range c.Formulas {
		if f.Subject == subject {
			out = append(out, f)
		}
	}
	return out
}

// Subjects returns the distinct subjects across questions and learning
// content, in first-seen catalog order.
func (c *Catalog) Subjects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range c.Questions {
		if !seen[q.Subject] {
			seen[q.Subject] = true
			out = append(out, q.Subject)
		}
	}
	for _, l := range c.LearningContent {
		if !seen[l.Subject] {
			seen[l.Subject] = true
			out = append(out, l.Subject)
		}
	}
	return out
}

// QuestionByID looks a question up by its stable id.
func (c *Catalog) QuestionByID(id int) (*Question, bool) {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i], true
		}
	}
	return nil, false
}
