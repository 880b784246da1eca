package quiz

import (
	"errors"
	"math/rand"
	"testing"

	"digitalseekho/internal/i18n"
)

func mcQuestions() []MultipleChoiceQuestion {
	options := []i18n.Text{{English: "Mouse"}, {English: "Monitor"}, {English: "Keyboard"}}
	return []MultipleChoiceQuestion{
		{ID: "mc1", Question: i18n.Text{English: "Which one shows pictures?"}, Options: options, CorrectAnswer: 1},
		{ID: "mc2", Question: i18n.Text{English: "Which one do you type on?"}, Options: options, CorrectAnswer: 2},
	}
}

func TestMultipleChoice(t *testing.T) {
	var done completion
	q, err := NewMultipleChoice(mcQuestions(), Config{OnComplete: done.record})
	if err != nil {
		t.Fatal(err)
	}

	fb, err := q.Submit(1)
	if err != nil || !fb.Correct {
		t.Fatalf("Submit(1) = %+v, %v", fb, err)
	}
	_ = q.Next()

	fb, err = q.Submit(0)
	if err != nil || fb.Correct {
		t.Fatalf("Submit(0) = %+v, %v", fb, err)
	}
	_ = q.Next()

	if done.calls != 1 || done.score != 50 || done.correct != 1 {
		t.Errorf("OnComplete(%d, %d) called %d times, want (50, 1) once", done.score, done.correct, done.calls)
	}
	if done.answers[1].SelectedAnswer != 0 {
		t.Errorf("selected answer = %v, want 0", done.answers[1].SelectedAnswer)
	}
}

func TestMultipleChoiceRejectsOutOfRangeAnswer(t *testing.T) {
	q, err := NewMultipleChoice(mcQuestions(), Config{})
	if err != nil {
		t.Fatal(err)
	}

	for _, selected := range []int{-1, 3} {
		if _, err := q.Submit(selected); !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("Submit(%d) error = %v, want ErrInvalidAnswer", selected, err)
		}
	}
	if q.State() != StateAnswering {
		t.Errorf("an invalid answer must not advance the quiz, state = %s", q.State())
	}
}

func TestNewMultipleChoiceValidation(t *testing.T) {
	tests := []struct {
		name     string
		question MultipleChoiceQuestion
	}{
		{
			name:     "single option",
			question: MultipleChoiceQuestion{ID: "x", Options: []i18n.Text{{English: "only"}}},
		},
		{
			name:     "correct index past the end",
			question: MultipleChoiceQuestion{ID: "x", Options: []i18n.Text{{English: "a"}, {English: "b"}}, CorrectAnswer: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMultipleChoice([]MultipleChoiceQuestion{tt.question}, Config{})
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func matchQuestions() []MatchQuestion {
	return []MatchQuestion{
		{
			ID: "m1",
			Pairs: []MatchPair{
				{ID: "cpu", Left: i18n.Text{English: "CPU"}, Right: i18n.Text{English: "Brain of the computer"}},
				{ID: "ram", Left: i18n.Text{English: "RAM"}, Right: i18n.Text{English: "Short-term memory"}},
				{ID: "ssd", Left: i18n.Text{English: "SSD"}, Right: i18n.Text{English: "Long-term storage"}},
				{ID: "psu", Left: i18n.Text{English: "PSU"}, Right: i18n.Text{English: "Power supply"}},
			},
		},
		{
			ID: "m2",
			Pairs: []MatchPair{
				{ID: "ctrl-c", Left: i18n.Text{English: "Ctrl+C"}, Right: i18n.Text{English: "Copy"}},
				{ID: "ctrl-v", Left: i18n.Text{English: "Ctrl+V"}, Right: i18n.Text{English: "Paste"}},
			},
		},
	}
}

func reverse(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func noShuffle(int, func(i, j int)) {}

func TestMatchingScoresByIDNotPosition(t *testing.T) {
	shufflers := map[string]Shuffler{
		"identity": noShuffle,
		"reversed": reverse,
		"seeded":   rand.New(rand.NewSource(7)).Shuffle,
	}

	for name, shuffle := range shufflers {
		t.Run(name, func(t *testing.T) {
			q, err := NewMatching(matchQuestions(), Config{}, shuffle)
			if err != nil {
				t.Fatal(err)
			}

			// Drop every right item on the left item with the same ID, whatever position it is shown at
			matches := Matches{}
			for _, item := range q.RightItems() {
				matches[item.ID] = item.ID
			}
			fb, err := q.Submit(matches)
			if err != nil {
				t.Fatal(err)
			}
			if !fb.Correct || fb.Score != 100 {
				t.Errorf("feedback = %+v, want fully correct", fb)
			}
		})
	}
}

func TestMatchingShuffleIsStable(t *testing.T) {
	q, err := NewMatching(matchQuestions(), Config{}, rand.New(rand.NewSource(3)).Shuffle)
	if err != nil {
		t.Fatal(err)
	}

	first := q.RightItems()
	second := q.RightItems()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("right items changed between reads: %v vs %v", first, second)
		}
	}

	reversed, err := NewMatching(matchQuestions(), Config{}, reverse)
	if err != nil {
		t.Fatal(err)
	}
	items := reversed.RightItemsFor(0)
	if items[0].ID != "psu" || items[3].ID != "cpu" {
		t.Errorf("expected the injected shuffle to be used, got %v", items)
	}
	if reversed.RightItemsFor(5) != nil {
		t.Error("out of range question should have no items")
	}
}

func TestMatchingPartialScore(t *testing.T) {
	var done completion
	q, err := NewMatching(matchQuestions(), Config{OnComplete: done.record}, reverse)
	if err != nil {
		t.Fatal(err)
	}

	// Question 1: cpu and ram right, ssd and psu swapped -> 50%
	fb, err := q.Submit(Matches{"cpu": "cpu", "ram": "ram", "ssd": "psu", "psu": "ssd"})
	if err != nil {
		t.Fatal(err)
	}
	if fb.Correct || fb.Score != 50 {
		t.Errorf("feedback = %+v, want 50%% and not correct", fb)
	}
	_ = q.Next()

	// Question 2: one of two placed, the other left empty -> 50%
	fb, err = q.Submit(Matches{"ctrl-c": "ctrl-c"})
	if err != nil {
		t.Fatal(err)
	}
	if fb.Score != 50 {
		t.Errorf("score = %d, want 50", fb.Score)
	}
	_ = q.Next()

	if done.calls != 1 {
		t.Fatalf("OnComplete called %d times", done.calls)
	}
	if done.score != 50 || done.correct != 0 {
		t.Errorf("OnComplete(%d, %d), want (50, 0)", done.score, done.correct)
	}
}

func TestMatchingAverageOfQuestionScores(t *testing.T) {
	q, err := NewMatching(matchQuestions(), Config{}, noShuffle)
	if err != nil {
		t.Fatal(err)
	}

	// 3 of 4 -> 75, then 2 of 2 -> 100; average 87.5 rounds to 88
	if _, err := q.Submit(Matches{"cpu": "cpu", "ram": "ram", "ssd": "ssd"}); err != nil {
		t.Fatal(err)
	}
	_ = q.Next()
	if _, err := q.Submit(Matches{"ctrl-c": "ctrl-c", "ctrl-v": "ctrl-v"}); err != nil {
		t.Fatal(err)
	}
	_ = q.Next()

	result, ok := q.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Score != 88 || result.Correct != 1 || !result.Passed {
		t.Errorf("result = %+v, want score 88, 1 correct, passed", result)
	}
}

func TestMatchingRejectsInvalidDrops(t *testing.T) {
	tests := []struct {
		name    string
		matches Matches
	}{
		{name: "unknown left item", matches: Matches{"gpu": "cpu"}},
		{name: "unknown right item", matches: Matches{"cpu": "gpu"}},
		{name: "right item used twice", matches: Matches{"cpu": "ram", "ram": "ram"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewMatching(matchQuestions(), Config{}, noShuffle)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := q.Submit(tt.matches); !errors.Is(err, ErrInvalidAnswer) {
				t.Errorf("error = %v, want ErrInvalidAnswer", err)
			}
		})
	}
}

func TestMatchingAnswerLogIsCopied(t *testing.T) {
	q, err := NewMatching(matchQuestions()[1:], Config{}, noShuffle)
	if err != nil {
		t.Fatal(err)
	}

	matches := Matches{"ctrl-c": "ctrl-c", "ctrl-v": "ctrl-v"}
	if _, err := q.Submit(matches); err != nil {
		t.Fatal(err)
	}
	matches["ctrl-c"] = "ctrl-v"

	logged := q.Answers()[0].SelectedAnswer.(Matches)
	if logged["ctrl-c"] != "ctrl-c" {
		t.Error("changing the caller's map altered the answer log")
	}
}

func TestNewMatchingValidation(t *testing.T) {
	tests := []struct {
		name      string
		questions []MatchQuestion
	}{
		{name: "no questions", questions: nil},
		{name: "no pairs", questions: []MatchQuestion{{ID: "m"}}},
		{name: "pair without id", questions: []MatchQuestion{{ID: "m", Pairs: []MatchPair{{ID: ""}}}}},
		{name: "duplicate pair id", questions: []MatchQuestion{{ID: "m", Pairs: []MatchPair{{ID: "a"}, {ID: "a"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatching(tt.questions, Config{}, nil)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}
