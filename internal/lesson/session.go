package lesson

import (
	"errors"
	"fmt"
	"log"
	"time"

	"digitalseekho/internal/i18n"
	"digitalseekho/internal/models"
	"digitalseekho/internal/progress"
	"digitalseekho/internal/quiz"
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrQuizNotMounted = errors.New("quiz is not mounted yet")
	ErrQuizMounted    = errors.New("lesson content is finished")
)

// Runner is the part of a quiz a session drives regardless of its kind.
// The concrete value is a *quiz.TrueFalseQuiz, *quiz.MultipleChoiceQuiz or *quiz.MatchingQuiz.
type Runner interface {
	ID() string
	Title() i18n.Text
	Description() i18n.Text
	PassingScore() int
	State() quiz.State
	Index() int
	Len() int
	Feedback() (quiz.Feedback, bool)
	Next() error
	Result() (models.QuizResult, bool)
}

func newRunner(q *Quiz, cfg quiz.Config, shuffle quiz.Shuffler) (Runner, error) {
	cfg.Title = q.Title
	cfg.Description = q.Description
	if q.PassingScore != 0 {
		cfg.PassingScore = q.PassingScore
	}

	switch q.Kind {
	case KindTrueFalse:
		return quiz.NewTrueFalse(q.trueFalse, cfg)
	case KindMultipleChoice:
		return quiz.NewMultipleChoice(q.multipleChoice, cfg)
	case KindMatching:
		return quiz.NewMatching(q.matching, cfg, shuffle)
	default:
		return nil, fmt.Errorf("unknown quiz kind %q", q.Kind)
	}
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithPassingScore sets the passing score for lessons whose quiz does not declare one
func WithPassingScore(score int) SessionOption {
	return func(s *Session) {
		s.passingScore = score
	}
}

// WithSessionClock replaces time.Now for measuring time spent. A nil clock is ignored.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithShuffler sets how matching quizzes order their right-hand items
func WithShuffler(shuffle quiz.Shuffler) SessionOption {
	return func(s *Session) {
		s.shuffle = shuffle
	}
}

// Session plays one lesson: its content steps, then its quiz.
// Finishing the quiz always records the lesson; the next lesson is offered only on a pass.
// A retry is a new Session.
type Session struct {
	catalog *Catalog
	lesson  *Lesson
	store   *progress.Store

	passingScore int
	now          func() time.Time
	shuffle      quiz.Shuffler

	startedAt time.Time
	step      int
	runner    Runner

	finished  bool
	result    models.QuizResult
	newBadges []models.BadgeID
	saveErr   error
}

// NewSession starts a lesson from the catalog at its first step
func NewSession(catalog *Catalog, store *progress.Store, levelID int, lessonID string, opts ...SessionOption) (*Session, error) {
	l := catalog.Lesson(levelID, lessonID)
	if l == nil {
		return nil, fmt.Errorf("%w: level %d lesson %q", ErrLessonNotFound, levelID, lessonID)
	}

	s := &Session{
		catalog: catalog,
		lesson:  l,
		store:   store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	runner, err := newRunner(&l.Quiz, quiz.Config{
		PassingScore: s.passingScore,
		OnComplete:   s.onQuizComplete,
		Clock:        s.now,
	}, s.shuffle)
	if err != nil {
		return nil, fmt.Errorf("failed to build quiz for %q: %w", lessonID, err)
	}
	s.runner = runner
	s.startedAt = s.now()

	return s, nil
}

func (s *Session) Lesson() *Lesson {
	return s.lesson
}

// Step is the zero-based position in the lesson. Len(Steps) means the quiz is showing.
func (s *Session) Step() int {
	return s.step
}

// TotalSteps counts the content steps plus the quiz
func (s *Session) TotalSteps() int {
	return len(s.lesson.Steps) + 1
}

// CurrentStep returns the content step being shown, or false once the quiz is mounted
func (s *Session) CurrentStep() (Step, bool) {
	if s.InQuiz() {
		return Step{}, false
	}
	return s.lesson.Steps[s.step], true
}

// InQuiz reports whether the content is done and the quiz is mounted
func (s *Session) InQuiz() bool {
	return s.step >= len(s.lesson.Steps)
}

// Advance moves to the next content step, mounting the quiz after the last one
func (s *Session) Advance() error {
	if s.InQuiz() {
		return ErrQuizMounted
	}
	s.step++
	return nil
}

// Back returns to the previous content step. It has no effect on the first step or once the quiz is mounted.
func (s *Session) Back() {
	if s.step > 0 && !s.InQuiz() {
		s.step--
	}
}

// Quiz returns the mounted quiz
func (s *Session) Quiz() (Runner, error) {
	if !s.InQuiz() {
		return nil, ErrQuizNotMounted
	}
	return s.runner, nil
}

func (s *Session) onQuizComplete(score, correct int, answers []models.QuizAnswer) {
	if s.finished {
		return
	}
	s.finished = true

	// Called from inside the engine once its result is set
	result, ok := s.runner.Result()
	if !ok {
		result = models.QuizResult{Score: score, Correct: correct, Answers: answers, TotalQuestions: len(answers)}
	}
	s.result = result

	timeSpent := s.now().Sub(s.startedAt).Milliseconds()
	s.newBadges, s.saveErr = s.store.CompleteLesson(s.lesson.LevelID, s.lesson.ID, &result, timeSpent)
	if s.saveErr != nil {
		log.Printf("Warning: attempt %s: lesson %s finished but progress was not saved: %v", result.AttemptID, s.lesson.ID, s.saveErr)
		return
	}
	log.Printf("Attempt %s: level %d lesson %s completed with score %d%% (passed=%t)", result.AttemptID, s.lesson.LevelID, s.lesson.ID, result.Score, result.Passed)
}

// Finished reports whether the quiz has completed and the lesson been recorded
func (s *Session) Finished() bool {
	return s.finished
}

// Result is the quiz result once the session is finished
func (s *Session) Result() (models.QuizResult, bool) {
	return s.result, s.finished
}

// NewBadges are the badges earned by finishing this lesson
func (s *Session) NewBadges() []models.BadgeID {
	return append([]models.BadgeID(nil), s.newBadges...)
}

// SaveErr is the error from recording the lesson, if any
func (s *Session) SaveErr() error {
	return s.saveErr
}

// NextLesson is the lesson to offer after a passed quiz.
// It is nil before the quiz finishes, after a failed quiz, and after the last lesson of the course.
func (s *Session) NextLesson() *Lesson {
	if !s.finished || !s.result.Passed {
		return nil
	}
	return s.catalog.Next(s.lesson.LevelID, s.lesson.ID)
}
