package quiz

import "digitalseekho/internal/i18n"

// TrueFalseQuestion is a statement the learner marks true or false
type TrueFalseQuestion struct {
	ID          string    `json:"id"`
	Statement   i18n.Text `json:"statement"`
	Correct     bool      `json:"correct"`
	Explanation i18n.Text `json:"explanation"`
}

// TrueFalseQuiz is a quiz answered with a boolean per question
type TrueFalseQuiz = Engine[TrueFalseQuestion, bool]

var trueFalseRules = Rules[TrueFalseQuestion, bool]{
	ID: func(q TrueFalseQuestion) string {
		return q.ID
	},
	Check: func(q TrueFalseQuestion, answer bool) bool {
		return answer == q.Correct
	},
}

// NewTrueFalse creates a true/false quiz
func NewTrueFalse(questions []TrueFalseQuestion, cfg Config) (*TrueFalseQuiz, error) {
	return NewEngine(questions, trueFalseRules, cfg)
}
