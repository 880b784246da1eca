package quiz

import (
	"fmt"

	"digitalseekho/internal/i18n"
)

// MultipleChoiceQuestion asks the learner to pick one option by index
type MultipleChoiceQuestion struct {
	ID            string      `json:"id"`
	Question      i18n.Text   `json:"question"`
	Options       []i18n.Text `json:"options"`
	CorrectAnswer int         `json:"correctAnswer"`
	Explanation   i18n.Text   `json:"explanation"`
}

// MultipleChoiceQuiz is a quiz answered with an option index per question
type MultipleChoiceQuiz = Engine[MultipleChoiceQuestion, int]

var multipleChoiceRules = Rules[MultipleChoiceQuestion, int]{
	ID: func(q MultipleChoiceQuestion) string {
		return q.ID
	},
	Check: func(q MultipleChoiceQuestion, selected int) bool {
		return selected == q.CorrectAnswer
	},
	Validate: func(q MultipleChoiceQuestion, selected int) error {
		if selected < 0 || selected >= len(q.Options) {
			return fmt.Errorf("option %d does not exist", selected)
		}
		return nil
	},
}

// NewMultipleChoice creates a multiple-choice quiz.
// Every question needs at least two options and a correct index that points at one of them.
func NewMultipleChoice(questions []MultipleChoiceQuestion, cfg Config) (*MultipleChoiceQuiz, error) {
	for i, q := range questions {
		if len(q.Options) < 2 {
			return nil, ValidationError{
				Field:   fmt.Sprintf("questions[%d].options", i),
				Message: "at least two options are required",
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, ValidationError{
				Field:   fmt.Sprintf("questions[%d].correctAnswer", i),
				Message: fmt.Sprintf("index %d is outside %d options", q.CorrectAnswer, len(q.Options)),
			}
		}
	}
	return NewEngine(questions, multipleChoiceRules, cfg)
}
