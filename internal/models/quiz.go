package models

// QuizResult is the outcome of one pass through a quiz.
// It is not stored on its own; only Score is folded into LessonProgress.
type QuizResult struct {
	AttemptID      string       `json:"attemptId"`
	Score          int          `json:"score"` // Percentage 0-100
	TotalQuestions int          `json:"totalQuestions"`
	Correct        int          `json:"correct"`
	Passed         bool         `json:"passed"`
	TimeSpent      int64        `json:"timeSpent"` // Milliseconds
	Answers        []QuizAnswer `json:"answers"`
}

// QuizAnswer is one entry in the ordered answer log
type QuizAnswer struct {
	QuestionID     string `json:"questionId"`
	Correct        bool   `json:"correct"`
	SelectedAnswer any    `json:"selectedAnswer"`
}
