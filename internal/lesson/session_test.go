package lesson

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"digitalseekho/internal/models"
	"digitalseekho/internal/progress"
	"digitalseekho/internal/quiz"
	"digitalseekho/internal/storage"
)

type failingStorage struct {
	*storage.Memory
}

func (failingStorage) Set(string, string) error {
	return errors.New("disk full")
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(originalOutput) })
	return &buf
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestSession(t *testing.T, store *progress.Store, levelID int, lessonID string, opts ...SessionOption) *Session {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	opts = append([]SessionOption{WithShuffler(noShuffle)}, opts...)
	s, err := NewSession(c, store, levelID, lessonID, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// playQuiz skips the content and answers every question, correctly or not
func playQuiz(t *testing.T, s *Session, correct bool) {
	t.Helper()
	for !s.InQuiz() {
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	runner, err := s.Quiz()
	if err != nil {
		t.Fatal(err)
	}

	for runner.State() != quiz.StateCompleted {
		var submitErr error
		switch q := runner.(type) {
		case *quiz.TrueFalseQuiz:
			_, submitErr = q.Submit(q.Current().Correct == correct)
		case *quiz.MultipleChoiceQuiz:
			answer := q.Current().CorrectAnswer
			if !correct {
				answer = (answer + 1) % len(q.Current().Options)
			}
			_, submitErr = q.Submit(answer)
		case *quiz.MatchingQuiz:
			matches := quiz.Matches{}
			if correct {
				for _, item := range q.RightItems() {
					matches[item.ID] = item.ID
				}
			}
			_, submitErr = q.Submit(matches)
		default:
			t.Fatalf("unexpected quiz type %T", runner)
		}
		if submitErr != nil {
			t.Fatal(submitErr)
		}
		if err := runner.Next(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSessionSteps(t *testing.T) {
	s := newTestSession(t, progress.NewStore(storage.NewMemory()), 1, "what-is-a-computer")

	if s.Step() != 0 || s.TotalSteps() != 3 {
		t.Fatalf("step %d of %d, want 0 of 3", s.Step(), s.TotalSteps())
	}
	step, ok := s.CurrentStep()
	if !ok || step.Title.English != "A helpful machine" {
		t.Errorf("CurrentStep() = %+v, %v", step, ok)
	}
	if _, err := s.Quiz(); !errors.Is(err, ErrQuizNotMounted) {
		t.Errorf("Quiz() before the last step error = %v", err)
	}

	s.Back()
	if s.Step() != 0 {
		t.Error("Back on the first step should do nothing")
	}

	_ = s.Advance()
	s.Back()
	if s.Step() != 0 {
		t.Errorf("Back() left step at %d", s.Step())
	}

	_ = s.Advance()
	_ = s.Advance()
	if !s.InQuiz() {
		t.Fatal("expected the quiz to be mounted after the content")
	}
	if _, ok := s.CurrentStep(); ok {
		t.Error("no content step while the quiz is mounted")
	}
	if err := s.Advance(); !errors.Is(err, ErrQuizMounted) {
		t.Errorf("Advance past the quiz error = %v", err)
	}
	runner, err := s.Quiz()
	if err != nil || runner.Len() != 3 || runner.Title().English != "Computer Check" {
		t.Errorf("Quiz() = %v, %v", runner, err)
	}
}

func TestSessionPassRecordsAndOffersNext(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := progress.NewStore(storage.NewMemory())
	s := newTestSession(t, store, 1, "what-is-a-computer", WithSessionClock(clock.Now))

	clock.now = clock.now.Add(2 * time.Minute)
	playQuiz(t, s, true)

	if !s.Finished() || s.SaveErr() != nil {
		t.Fatalf("finished = %v, save error = %v", s.Finished(), s.SaveErr())
	}
	result, ok := s.Result()
	if !ok || result.Score != 100 || !result.Passed {
		t.Errorf("result = %+v", result)
	}

	lp := store.GetLessonProgress(1, "what-is-a-computer")
	if lp == nil || !lp.Completed || lp.QuizScore == nil || *lp.QuizScore != 100 {
		t.Fatalf("lesson progress = %+v", lp)
	}
	if lp.TimeSpent != 120000 {
		t.Errorf("time spent = %d, want 120000", lp.TimeSpent)
	}
	if got := store.GetUserProgress().Points; got != 20 {
		t.Errorf("points = %d, want 20", got)
	}

	badges := s.NewBadges()
	if len(badges) != 2 || badges[0] != models.BadgeFirstLesson || badges[1] != models.BadgeSpeedLearner {
		t.Errorf("new badges = %v, want first-lesson and speed-learner", badges)
	}

	next := s.NextLesson()
	if next == nil || next.ID != "computer-parts" {
		t.Errorf("NextLesson() = %v, want computer-parts", next)
	}
}

func TestSessionFailRecordsButDoesNotAdvance(t *testing.T) {
	store := progress.NewStore(storage.NewMemory())
	s := newTestSession(t, store, 1, "mouse-and-keyboard")
	playQuiz(t, s, false)

	result, _ := s.Result()
	if result.Passed || result.Score != 0 {
		t.Errorf("result = %+v, want a failed quiz", result)
	}
	if !store.IsLessonCompleted(1, "mouse-and-keyboard") {
		t.Error("a failed quiz still records the lesson")
	}
	if got := store.GetUserProgress().Points; got != 10 {
		t.Errorf("points = %d, want the base 10 with no bonus", got)
	}
	if s.NextLesson() != nil {
		t.Error("no next lesson after a failed quiz")
	}

	// Retrying is a fresh session; passing replaces the record
	retry := newTestSession(t, store, 1, "mouse-and-keyboard")
	playQuiz(t, retry, true)
	if lp := store.GetLessonProgress(1, "mouse-and-keyboard"); lp == nil || *lp.QuizScore != 100 {
		t.Errorf("retry record = %+v", lp)
	}
	if retry.NextLesson() == nil {
		t.Error("expected a next lesson after passing the retry")
	}
}

func TestSessionMatchingLesson(t *testing.T) {
	store := progress.NewStore(storage.NewMemory())
	s := newTestSession(t, store, 2, "web-browser")
	playQuiz(t, s, true)

	result, _ := s.Result()
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
	if next := s.NextLesson(); next == nil || next.ID != "searching-online" {
		t.Errorf("NextLesson() = %v", next)
	}
}

func TestSessionLastLessonHasNoNext(t *testing.T) {
	s := newTestSession(t, progress.NewStore(storage.NewMemory()), 3, "ai-good-habits")
	playQuiz(t, s, true)

	if !s.Finished() {
		t.Fatal("expected the session to finish")
	}
	if s.NextLesson() != nil {
		t.Error("the last lesson of the course has nothing after it")
	}
}

func TestSessionPassingScoreOption(t *testing.T) {
	s := newTestSession(t, progress.NewStore(storage.NewMemory()), 1, "what-is-a-computer", WithPassingScore(90))
	for !s.InQuiz() {
		_ = s.Advance()
	}
	runner, _ := s.Quiz()
	if runner.PassingScore() != 90 {
		t.Errorf("passing score = %d, want 90", runner.PassingScore())
	}
}

func TestSessionSaveFailure(t *testing.T) {
	store := progress.NewStore(failingStorage{storage.NewMemory()})
	s := newTestSession(t, store, 1, "what-is-a-computer")
	playQuiz(t, s, true)

	if !s.Finished() {
		t.Fatal("the quiz still finishes when saving fails")
	}
	if s.SaveErr() == nil {
		t.Error("expected the save error to be reported")
	}
}

func TestSessionLogsAttemptID(t *testing.T) {
	tests := []struct {
		name    string
		store   *progress.Store
		wantLog string
	}{
		{name: "saved", store: progress.NewStore(storage.NewMemory()), wantLog: "completed with score 100%"},
		{name: "save failed", store: progress.NewStore(failingStorage{storage.NewMemory()}), wantLog: "Warning: attempt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			s := newTestSession(t, tt.store, 1, "what-is-a-computer")
			playQuiz(t, s, true)

			result, ok := s.Result()
			if !ok || result.AttemptID == "" {
				t.Fatalf("result = %+v, want an attempt id", result)
			}
			logged := buf.String()
			if !strings.Contains(logged, result.AttemptID) {
				t.Errorf("log %q does not mention attempt %s", logged, result.AttemptID)
			}
			if !strings.Contains(logged, tt.wantLog) {
				t.Errorf("log %q, want it to contain %q", logged, tt.wantLog)
			}
		})
	}
}

func TestWithSessionClockIgnoresNil(t *testing.T) {
	s := newTestSession(t, progress.NewStore(storage.NewMemory()), 1, "what-is-a-computer", WithSessionClock(nil))
	playQuiz(t, s, true)

	if !s.Finished() {
		t.Error("expected the session to finish with the default clock")
	}
}

func TestNewSessionUnknownLesson(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewSession(c, progress.NewStore(storage.NewMemory()), 1, "no-such-lesson")
	if !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("error = %v, want ErrLessonNotFound", err)
	}
}
