package engine

import (
	"errors"
	"testing"
	"time"

	"denken-plus-api/models"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Questions: []models.Question{
			{ID: 1, Subject: "A", Question: "q1", Options: []string{"x", "y"}, Answer: "x"},
			{ID: 2, Subject: "A", Question: "q2", Options: []string{"x", "y"}, Answer: "y"},
			{ID: 3, Subject: "B", Question: "q3", Options: []string{"x", "y"}, Answer: "x"},
		},
		LearningContent: []models.LearningContent{
			{Subject: "A", Title: "a1"},
			{Subject: "B", Title: "b1"},
			{Subject: "A", Title: "a2"},
		},
		Formulas: []models.Formula{
			{Subject: "A", Title: "f1", Formula: "E=IR"},
		},
	}
}

func bigCatalog(n int) *models.Catalog {
	cat := &models.Catalog{}
	for i := 1; i <= n; i++ {
		cat.Questions = append(cat.Questions, models.Question{
			ID: i, Subject: "A", Options: []string{"x", "y"}, Answer: "x",
		})
	}
	return cat
}

func questionIDs(qs []models.Question) []int {
	ids := make([]int, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}

// --- StartSession ---

func TestStartSessionNilCatalog(t *testing.T) {
	_, err := StartSession(models.ModeQuiz, "A", nil, t0)
	if !errors.Is(err, ErrCatalogNotLoaded) {
		t.Errorf("err = %v, want ErrCatalogNotLoaded", err)
	}
}

func TestStartSessionInvalidMode(t *testing.T) {
	_, err := StartSession("cram", "A", testCatalog(), t0)
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("err = %v, want ErrInvalidMode", err)
	}
}

func TestStartSessionQuizFiltersSubjectInOrder(t *testing.T) {
	s, err := StartSession(models.ModeQuiz, "A", testCatalog(), t0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	ids := questionIDs(s.Questions)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("queue = %v, want [1 2]", ids)
	}
	if s.Position != 0 {
		t.Errorf("Position = %d, want 0", s.Position)
	}
	if s.ID == "" {
		t.Error("session has no id")
	}
}

func TestStartSessionQuizEmptySubject(t *testing.T) {
	_, err := StartSession(models.ModeQuiz, "Math", testCatalog(), t0)
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("err = %v, want ErrEmptyQueue", err)
	}
}

func TestStartSessionDrillShufflesWholeCatalog(t *testing.T) {
	cat := testCatalog()
	// Subject must be ignored for drills.
	s, err := StartSession(models.ModeDrill, "B", cat, t0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if s.Subject != models.SubjectAll {
		t.Errorf("Subject = %q, want %q", s.Subject, models.SubjectAll)
	}
	if s.Length() != len(cat.Questions) {
		t.Fatalf("Length = %d, want %d", s.Length(), len(cat.Questions))
	}
	seen := make(map[int]int)
	for _, id := range questionIDs(s.Questions) {
		seen[id]++
	}
	for _, q := range cat.Questions {
		if seen[q.ID] != 1 {
			t.Errorf("question %d appears %d times, want 1", q.ID, seen[q.ID])
		}
	}
}

func TestStartSessionDrillDoesNotMutateCatalog(t *testing.T) {
	cat := bigCatalog(20)
	if _, err := StartSession(models.ModeDrill, models.SubjectAll, cat, t0); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	for i, q := range cat.Questions {
		if q.ID != i+1 {
			t.Fatalf("catalog order changed at %d: id %d", i, q.ID)
		}
	}
}

func TestStartSessionLearnFiltersContent(t *testing.T) {
	s, err := StartSession(models.ModeLearn, "A", testCatalog(), t0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if len(s.Content) != 2 || s.Content[0].Title != "a1" || s.Content[1].Title != "a2" {
		t.Errorf("content queue = %+v, want [a1 a2]", s.Content)
	}
	if len(s.Questions) != 0 {
		t.Errorf("learn session has %d questions, want 0", len(s.Questions))
	}
}

func TestStartSessionLearnEmpty(t *testing.T) {
	_, err := StartSession(models.ModeLearn, "C", testCatalog(), t0)
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("err = %v, want ErrEmptyQueue", err)
	}
}

// --- Daily set ---

func TestDailySetDeterministicPerDay(t *testing.T) {
	cat := bigCatalog(30)
	a := DailySet(cat, t0)
	b := DailySet(cat, t0.Add(3*time.Hour)) // same calendar day
	if len(a) != DailySetSize {
		t.Fatalf("len = %d, want %d", len(a), DailySetSize)
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same day produced different sets: %v vs %v", questionIDs(a), questionIDs(b))
		}
	}
}

func TestDailySetVariesAcrossDays(t *testing.T) {
	cat := bigCatalog(30)
	base := DailySet(cat, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	varies := false
	for day := 2; day <= 28; day++ {
		other := DailySet(cat, time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC))
		for i := range base {
			if other[i].ID != base[i].ID {
				varies = true
			}
		}
	}
	if !varies {
		t.Error("every day of the month produced the identical set")
	}
}

func TestDailySetSmallCatalog(t *testing.T) {
	cat := testCatalog()
	set := DailySet(cat, t0)
	if len(set) != len(cat.Questions) {
		t.Errorf("len = %d, want whole catalog (%d)", len(set), len(cat.Questions))
	}
}

func TestStartSessionDaily(t *testing.T) {
	s, err := StartSession(models.ModeDaily, "B", bigCatalog(30), t0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if s.Length() != DailySetSize {
		t.Errorf("Length = %d, want %d", s.Length(), DailySetSize)
	}
	if s.Subject != models.SubjectAll {
		t.Errorf("Subject = %q, want %q", s.Subject, models.SubjectAll)
	}
}

// --- Advance ---

func TestAdvanceQuizRequiresAnswer(t *testing.T) {
	s, _ := StartSession(models.ModeQuiz, "A", testCatalog(), t0)
	_, _, err := Advance(s, models.Forward)
	if !errors.Is(err, ErrNotAnswered) {
		t.Errorf("err = %v, want ErrNotAnswered", err)
	}
}

func TestAdvanceQuizToCompletion(t *testing.T) {
	s, _ := StartSession(models.ModeQuiz, "A", testCatalog(), t0)

	s = MarkAnswered(s)
	s, completed, err := Advance(s, models.Forward)
	if err != nil || completed {
		t.Fatalf("first advance: completed=%t err=%v", completed, err)
	}
	if s.Position != 1 {
		t.Errorf("Position = %d, want 1", s.Position)
	}
	if s.Answered {
		t.Error("Answered flag survived the advance")
	}

	s = MarkAnswered(s)
	s, completed, err = Advance(s, models.Forward)
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if !completed || !s.Completed() {
		t.Error("walking past the last item should complete the session")
	}
	if s.CurrentQuestion() != nil {
		t.Error("completed session still has a current item")
	}

	_, _, err = Advance(s, models.Forward)
	if !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("err = %v, want ErrSessionCompleted", err)
	}
}

func TestAdvanceLearnForwardNeedsNoAnswer(t *testing.T) {
	s, _ := StartSession(models.ModeLearn, "A", testCatalog(), t0)
	s, completed, err := Advance(s, models.Forward)
	if err != nil || completed {
		t.Fatalf("advance: completed=%t err=%v", completed, err)
	}
	_, completed, err = Advance(s, models.Forward)
	if err != nil || !completed {
		t.Fatalf("final advance: completed=%t err=%v", completed, err)
	}
}

func TestAdvanceLearnBackwardFloorsAtZero(t *testing.T) {
	s, _ := StartSession(models.ModeLearn, "A", testCatalog(), t0)

	s, _, err := Advance(s, models.Backward)
	if err != nil {
		t.Fatalf("backward at 0: %v", err)
	}
	if s.Position != 0 {
		t.Errorf("Position = %d, want 0 (no-op at start)", s.Position)
	}

	s, _, _ = Advance(s, models.Forward)
	s, _, err = Advance(s, models.Backward)
	if err != nil {
		t.Fatalf("backward: %v", err)
	}
	if s.Position != 0 {
		t.Errorf("Position = %d, want 0", s.Position)
	}
}

func TestAdvanceBackwardOnlyInLearnMode(t *testing.T) {
	s, _ := StartSession(models.ModeQuiz, "A", testCatalog(), t0)
	_, _, err := Advance(s, models.Backward)
	if !errors.Is(err, ErrBackwardNotAllowed) {
		t.Errorf("err = %v, want ErrBackwardNotAllowed", err)
	}
}

func TestAdvanceInvalidDirection(t *testing.T) {
	s, _ := StartSession(models.ModeLearn, "A", testCatalog(), t0)
	_, _, err := Advance(s, "sideways")
	if !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("err = %v, want ErrInvalidDirection", err)
	}
}

func TestCurrentItemByMode(t *testing.T) {
	quiz, _ := StartSession(models.ModeQuiz, "A", testCatalog(), t0)
	if q := quiz.CurrentQuestion(); q == nil || q.ID != 1 {
		t.Errorf("CurrentQuestion = %+v, want id 1", q)
	}
	if quiz.CurrentContent() != nil {
		t.Error("quiz session returned learning content")
	}

	learn, _ := StartSession(models.ModeLearn, "A", testCatalog(), t0)
	if c := learn.CurrentContent(); c == nil || c.Title != "a1" {
		t.Errorf("CurrentContent = %+v, want a1", c)
	}
	if learn.CurrentQuestion() != nil {
		t.Error("learn session returned a question")
	}
}
