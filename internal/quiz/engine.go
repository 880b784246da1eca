package quiz

import (
	"fmt"
	"math"
	"time"

	"digitalseekho/internal/i18n"
	"digitalseekho/internal/models"

	"github.com/google/uuid"
)

// DefaultPassingScore is the percentage needed to pass when none is configured
const DefaultPassingScore = 70

// State is where a quiz is in its question loop
type State int

const (
	StateAnswering State = iota
	StateShowingExplanation
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateAnswering:
		return "answering"
	case StateShowingExplanation:
		return "showing-explanation"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Rules tells the engine how to identify and mark one kind of question
type Rules[Q, A any] struct {
	ID    func(q Q) string
	Check func(q Q, answer A) bool

	// Score returns the question's percentage. When nil a correct answer scores 100 and a wrong one 0.
	Score func(q Q, answer A) int

	// Validate rejects answers that cannot apply to the question, e.g. an option index out of range
	Validate func(q Q, answer A) error
}

// Config holds the presentation and completion settings shared by every quiz kind
type Config struct {
	Title        i18n.Text
	Description  i18n.Text
	PassingScore int // 0 means DefaultPassingScore

	// OnComplete is called exactly once, after the last question's explanation is dismissed
	OnComplete func(score, correct int, answers []models.QuizAnswer)

	Clock func() time.Time
}

// Feedback is what the learner sees after submitting an answer
type Feedback struct {
	QuestionID string
	Correct    bool
	Score      int
}

// Engine runs one pass through a list of questions.
// Each question is answered once, its explanation shown, then the engine moves on.
type Engine[Q, A any] struct {
	id        string
	config    Config
	questions []Q
	rules     Rules[Q, A]

	state     State
	index     int
	answers   []models.QuizAnswer
	scores    []int
	correct   int
	feedback  Feedback
	startedAt time.Time
	result    *models.QuizResult
}

// NewEngine validates the question list and returns an engine waiting on the first question
func NewEngine[Q, A any](questions []Q, rules Rules[Q, A], cfg Config) (*Engine[Q, A], error) {
	if rules.ID == nil || rules.Check == nil {
		return nil, ValidationError{Field: "rules", Message: "ID and Check are required"}
	}
	if len(questions) == 0 {
		return nil, ValidationError{Field: "questions", Message: "quiz has no questions"}
	}
	if cfg.PassingScore < 0 || cfg.PassingScore > 100 {
		return nil, ValidationError{Field: "passingScore", Message: fmt.Sprintf("%d is not a percentage", cfg.PassingScore)}
	}
	if cfg.PassingScore == 0 {
		cfg.PassingScore = DefaultPassingScore
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		id := rules.ID(q)
		if id == "" {
			return nil, ValidationError{Field: fmt.Sprintf("questions[%d].id", i), Message: "question id is required"}
		}
		if seen[id] {
			return nil, ValidationError{Field: fmt.Sprintf("questions[%d].id", i), Message: fmt.Sprintf("duplicate question id %q", id)}
		}
		seen[id] = true
	}

	qs := make([]Q, len(questions))
	copy(qs, questions)

	return &Engine[Q, A]{
		id:        uuid.NewString(),
		config:    cfg,
		questions: qs,
		rules:     rules,
		state:     StateAnswering,
		answers:   make([]models.QuizAnswer, 0, len(qs)),
		scores:    make([]int, 0, len(qs)),
		startedAt: cfg.Clock(),
	}, nil
}

// ID identifies this attempt
func (e *Engine[Q, A]) ID() string {
	return e.id
}

func (e *Engine[Q, A]) Title() i18n.Text {
	return e.config.Title
}

func (e *Engine[Q, A]) Description() i18n.Text {
	return e.config.Description
}

func (e *Engine[Q, A]) PassingScore() int {
	return e.config.PassingScore
}

func (e *Engine[Q, A]) State() State {
	return e.state
}

// Index is the zero-based position of the current question
func (e *Engine[Q, A]) Index() int {
	return e.index
}

// Len is the number of questions in the quiz
func (e *Engine[Q, A]) Len() int {
	return len(e.questions)
}

// Current returns the question being answered or explained
func (e *Engine[Q, A]) Current() Q {
	return e.questions[e.index]
}

// Feedback returns the outcome of the current question once it has been answered
func (e *Engine[Q, A]) Feedback() (Feedback, bool) {
	if e.state != StateShowingExplanation {
		return Feedback{}, false
	}
	return e.feedback, true
}

// Submit marks the answer to the current question. An answered question cannot be answered again.
func (e *Engine[Q, A]) Submit(answer A) (Feedback, error) {
	switch e.state {
	case StateCompleted:
		return Feedback{}, ErrCompleted
	case StateShowingExplanation:
		return Feedback{}, ErrAlreadyAnswered
	}

	q := e.questions[e.index]
	if e.rules.Validate != nil {
		if err := e.rules.Validate(q, answer); err != nil {
			return Feedback{}, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}
	}

	correct := e.rules.Check(q, answer)
	score := 0
	if e.rules.Score != nil {
		score = clampPercent(e.rules.Score(q, answer))
	} else if correct {
		score = 100
	}

	if correct {
		e.correct++
	}
	e.scores = append(e.scores, score)
	e.answers = append(e.answers, models.QuizAnswer{
		QuestionID:     e.rules.ID(q),
		Correct:        correct,
		SelectedAnswer: answer,
	})
	e.feedback = Feedback{QuestionID: e.rules.ID(q), Correct: correct, Score: score}
	e.state = StateShowingExplanation

	return e.feedback, nil
}

// Next dismisses the explanation and moves to the next question, or completes the quiz after the last one
func (e *Engine[Q, A]) Next() error {
	switch e.state {
	case StateCompleted:
		return ErrCompleted
	case StateAnswering:
		return ErrNotAnswered
	}

	if e.index+1 < len(e.questions) {
		e.index++
		e.state = StateAnswering
		return nil
	}

	e.complete()
	return nil
}

// Result returns the final result once the quiz is completed
func (e *Engine[Q, A]) Result() (models.QuizResult, bool) {
	if e.result == nil {
		return models.QuizResult{}, false
	}
	result := *e.result
	result.Answers = append([]models.QuizAnswer(nil), e.result.Answers...)
	return result, true
}

// Answers returns the answer log so far, in question order
func (e *Engine[Q, A]) Answers() []models.QuizAnswer {
	return append([]models.QuizAnswer(nil), e.answers...)
}

func (e *Engine[Q, A]) complete() {
	total := 0
	for _, s := range e.scores {
		total += s
	}
	score := int(math.Round(float64(total) / float64(len(e.questions))))

	e.result = &models.QuizResult{
		AttemptID:      e.id,
		Score:          score,
		TotalQuestions: len(e.questions),
		Correct:        e.correct,
		Passed:         score >= e.config.PassingScore,
		TimeSpent:      e.config.Clock().Sub(e.startedAt).Milliseconds(),
		Answers:        e.Answers(),
	}
	e.state = StateCompleted

	if e.config.OnComplete != nil {
		e.config.OnComplete(score, e.correct, e.Answers())
	}
}

// percentOf returns round(100 * part / whole)
func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
