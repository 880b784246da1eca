package lesson

import (
	"encoding/json"

	"digitalseekho/internal/i18n"
	"digitalseekho/internal/quiz"
)

// QuizKind names the kind of quiz that closes a lesson
type QuizKind string

const (
	KindTrueFalse      QuizKind = "true-false"
	KindMultipleChoice QuizKind = "multiple-choice"
	KindMatching       QuizKind = "matching"
)

// Level groups the lessons that earn one level badge
type Level struct {
	ID          int       `json:"id"`
	Title       i18n.Text `json:"title"`
	Description i18n.Text `json:"description"`
	Lessons     []*Lesson `json:"lessons"`
}

// Lesson is a run of content steps followed by one quiz
type Lesson struct {
	ID      string    `json:"id"`
	LevelID int       `json:"-"`
	Title   i18n.Text `json:"title"`
	Icon    string    `json:"icon"`
	Steps   []Step    `json:"steps"`
	Quiz    Quiz      `json:"quiz"`
}

// Step is one screen of lesson content
type Step struct {
	Title i18n.Text   `json:"title"`
	Body  i18n.Text   `json:"body"`
	Tips  []i18n.Text `json:"tips,omitempty"`
}

// Quiz is the quiz definition as stored. Questions are decoded according to Kind.
type Quiz struct {
	Kind         QuizKind        `json:"kind"`
	Title        i18n.Text       `json:"title"`
	Description  i18n.Text       `json:"description"`
	PassingScore int             `json:"passingScore,omitempty"`
	Questions    json.RawMessage `json:"questions"`

	trueFalse      []quiz.TrueFalseQuestion
	multipleChoice []quiz.MultipleChoiceQuestion
	matching       []quiz.MatchQuestion
}

// QuestionCount is the number of questions in the quiz
func (q *Quiz) QuestionCount() int {
	switch q.Kind {
	case KindTrueFalse:
		return len(q.trueFalse)
	case KindMultipleChoice:
		return len(q.multipleChoice)
	case KindMatching:
		return len(q.matching)
	}
	return 0
}
