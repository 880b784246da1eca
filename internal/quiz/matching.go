package quiz

import (
	"fmt"
	"maps"
	"math/rand"

	"digitalseekho/internal/i18n"
)

// MatchPair is a left item and the right item that belongs with it, sharing one ID
type MatchPair struct {
	ID    string    `json:"id"`
	Left  i18n.Text `json:"left"`
	Right i18n.Text `json:"right"`
}

// MatchQuestion asks the learner to drop each right item onto its left partner
type MatchQuestion struct {
	ID          string      `json:"id"`
	Prompt      i18n.Text   `json:"prompt"`
	Pairs       []MatchPair `json:"pairs"`
	Explanation i18n.Text   `json:"explanation"`
}

// MatchItem is a right-hand item as shown to the learner
type MatchItem struct {
	ID   string
	Text i18n.Text
}

// Matches maps a left pair ID to the ID of the right item dropped on it
type Matches map[string]string

// Shuffler reorders n items by calling swap, with the same contract as rand.Shuffle
type Shuffler func(n int, swap func(i, j int))

var matchingRules = Rules[MatchQuestion, Matches]{
	ID: func(q MatchQuestion) string {
		return q.ID
	},
	Check: func(q MatchQuestion, m Matches) bool {
		return correctPairs(q, m) == len(q.Pairs)
	},
	Score: func(q MatchQuestion, m Matches) int {
		return percentOf(correctPairs(q, m), len(q.Pairs))
	},
	Validate: validateMatches,
}

// correctPairs counts left items holding the right item with the same ID.
// Display order plays no part, only IDs.
func correctPairs(q MatchQuestion, m Matches) int {
	correct := 0
	for _, p := range q.Pairs {
		if m[p.ID] == p.ID {
			correct++
		}
	}
	return correct
}

// validateMatches rejects unknown IDs and a right item dropped in two places.
// Left items may be left empty; they score as wrong.
func validateMatches(q MatchQuestion, m Matches) error {
	known := make(map[string]bool, len(q.Pairs))
	for _, p := range q.Pairs {
		known[p.ID] = true
	}

	used := make(map[string]string, len(m))
	for left, right := range m {
		if !known[left] {
			return fmt.Errorf("unknown left item %q", left)
		}
		if !known[right] {
			return fmt.Errorf("unknown right item %q", right)
		}
		if other, ok := used[right]; ok {
			return fmt.Errorf("right item %q dropped on both %q and %q", right, other, left)
		}
		used[right] = left
	}
	return nil
}

// MatchingQuiz is a drag-and-drop matching quiz.
// The right-hand items of every question are shuffled once, when the quiz is created.
type MatchingQuiz struct {
	*Engine[MatchQuestion, Matches]
	rightItems [][]MatchItem
}

// NewMatching creates a matching quiz. A nil shuffle uses math/rand.
func NewMatching(questions []MatchQuestion, cfg Config, shuffle Shuffler) (*MatchingQuiz, error) {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	rightItems := make([][]MatchItem, len(questions))
	for i, q := range questions {
		if len(q.Pairs) == 0 {
			return nil, ValidationError{Field: fmt.Sprintf("questions[%d].pairs", i), Message: "at least one pair is required"}
		}

		seen := make(map[string]bool, len(q.Pairs))
		items := make([]MatchItem, 0, len(q.Pairs))
		for j, p := range q.Pairs {
			if p.ID == "" {
				return nil, ValidationError{Field: fmt.Sprintf("questions[%d].pairs[%d].id", i, j), Message: "pair id is required"}
			}
			if seen[p.ID] {
				return nil, ValidationError{Field: fmt.Sprintf("questions[%d].pairs[%d].id", i, j), Message: fmt.Sprintf("duplicate pair id %q", p.ID)}
			}
			seen[p.ID] = true
			items = append(items, MatchItem{ID: p.ID, Text: p.Right})
		}

		shuffle(len(items), func(a, b int) {
			items[a], items[b] = items[b], items[a]
		})
		rightItems[i] = items
	}

	engine, err := NewEngine(questions, matchingRules, cfg)
	if err != nil {
		return nil, err
	}

	return &MatchingQuiz{Engine: engine, rightItems: rightItems}, nil
}

// RightItems returns the shuffled right-hand items for the current question
func (m *MatchingQuiz) RightItems() []MatchItem {
	return m.RightItemsFor(m.Index())
}

// RightItemsFor returns the shuffled right-hand items for question i
func (m *MatchingQuiz) RightItemsFor(i int) []MatchItem {
	if i < 0 || i >= len(m.rightItems) {
		return nil
	}
	return append([]MatchItem(nil), m.rightItems[i]...)
}

// Submit records the learner's drops for the current question.
// The map is copied so later changes by the caller do not alter the answer log.
func (m *MatchingQuiz) Submit(matches Matches) (Feedback, error) {
	return m.Engine.Submit(maps.Clone(matches))
}
