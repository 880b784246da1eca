package models

import "time"

// UserProgress is everything a learner has achieved on this device
type UserProgress struct {
	Lessons      []LessonProgress `json:"lessons"`
	Points       int              `json:"points"`
	Badges       []BadgeID        `json:"badges"`
	CurrentLevel int              `json:"currentLevel"`
	LastActive   time.Time        `json:"lastActive"`
}

// LessonProgress records one completed lesson, keyed by level and lesson ID
type LessonProgress struct {
	LevelID     int       `json:"levelId"`
	LessonID    string    `json:"lessonId"`
	Completed   bool      `json:"completed"`
	QuizScore   *int      `json:"quizScore,omitempty"` // Percentage, nil when the lesson had no quiz
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   int64     `json:"timeSpent"` // Milliseconds
}

// HasBadge reports whether the badge has already been awarded
func (p *UserProgress) HasBadge(id BadgeID) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// CompletedLessons counts completed lessons in one level
func (p *UserProgress) CompletedLessons(levelID int) int {
	count := 0
	for _, l := range p.Lessons {
		if l.Completed && l.LevelID == levelID {
			count++
		}
	}
	return count
}

// TotalCompleted counts completed lessons across every level
func (p *UserProgress) TotalCompleted() int {
	count := 0
	for _, l := range p.Lessons {
		if l.Completed {
			count++
		}
	}
	return count
}

// FindLesson returns the record for a lesson, or nil if it has not been completed
func (p *UserProgress) FindLesson(levelID int, lessonID string) *LessonProgress {
	for i := range p.Lessons {
		if p.Lessons[i].LevelID == levelID && p.Lessons[i].LessonID == lessonID {
			return &p.Lessons[i]
		}
	}
	return nil
}
