package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"digitalseekho/internal/models"
)

// DefaultStorageKey is the key the progress record is stored under
const DefaultStorageKey = "computer-course-progress"

const (
	basePoints   = 10
	defaultLevel = 1
	maxQuizScore = 100
)

// ErrInvalidLesson is returned when a completion names no lesson or a level below 1
var ErrInvalidLesson = errors.New("invalid lesson")

// Storage is the string key/value store the progress record lives in.
// Get reports ok=false when the key has never been written.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Store owns a learner's persisted progress record
type Store struct {
	storage Storage
	key     string
	now     func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a progress store on top of the given storage backend.
// storage is required; a nil backend panics here rather than on first use.
func NewStore(storage Storage, opts ...Option) *Store {
	if storage == nil {
		panic("progress: NewStore called with nil storage")
	}
	s := &Store{
		storage: storage,
		key:     DefaultStorageKey,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key this store reads and writes
func (s *Store) Key() string {
	return s.key
}

// GetUserProgress loads the progress record.
// A missing, unreadable or incomplete record yields a fresh default record.
func (s *Store) GetUserProgress() *models.UserProgress {
	raw, ok, err := s.storage.Get(s.key)
	if err != nil {
		log.Printf("Warning: failed to read progress: %v", err)
		return s.defaultProgress()
	}
	if !ok {
		return s.defaultProgress()
	}

	progress, err := DecodeProgress(raw)
	if err != nil {
		log.Printf("Warning: discarding unreadable progress: %v", err)
		return s.defaultProgress()
	}
	return progress
}

// SaveUserProgress stamps LastActive and overwrites the stored record.
// Failures are logged and returned; callers may ignore them.
func (s *Store) SaveUserProgress(progress *models.UserProgress) error {
	progress.LastActive = s.now()

	data, err := EncodeProgress(progress)
	if err != nil {
		log.Printf("Warning: failed to encode progress: %v", err)
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	if err := s.storage.Set(s.key, data); err != nil {
		log.Printf("Warning: failed to save progress: %v", err)
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// IsLessonCompleted reports whether the lesson has a completed record
func (s *Store) IsLessonCompleted(levelID int, lessonID string) bool {
	lesson := s.GetUserProgress().FindLesson(levelID, lessonID)
	return lesson != nil && lesson.Completed
}

// CompleteLesson records a lesson completion, awards points and any newly earned badges, and saves.
// A repeat completion replaces the earlier record. The returned badges are the ones awarded by
// this call; they are returned even when saving fails.
// An empty lessonID or a levelID below 1 is rejected before anything is read or written.
func (s *Store) CompleteLesson(levelID int, lessonID string, result *models.QuizResult, timeSpent int64) ([]models.BadgeID, error) {
	if lessonID == "" {
		return nil, fmt.Errorf("%w: lesson id is required", ErrInvalidLesson)
	}
	if levelID < 1 {
		return nil, fmt.Errorf("%w: level %d", ErrInvalidLesson, levelID)
	}

	progress := s.GetUserProgress()

	lessons := make([]models.LessonProgress, 0, len(progress.Lessons)+1)
	for _, l := range progress.Lessons {
		if l.LevelID == levelID && l.LessonID == lessonID {
			continue
		}
		lessons = append(lessons, l)
	}

	if timeSpent < 0 {
		timeSpent = 0
	}
	record := models.LessonProgress{
		LevelID:     levelID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: s.now(),
		TimeSpent:   timeSpent,
	}
	if result != nil {
		score := clampScore(result.Score)
		record.QuizScore = &score
	}
	progress.Lessons = append(lessons, record)

	progress.Points += lessonPoints(result)
	if levelID > progress.CurrentLevel {
		progress.CurrentLevel = levelID
	}

	earned := EvaluateBadges(progress)
	progress.Badges = append(progress.Badges, earned...)

	return earned, s.SaveUserProgress(progress)
}

// GetLessonProgress returns the record for a lesson, or nil if it has not been completed
func (s *Store) GetLessonProgress(levelID int, lessonID string) *models.LessonProgress {
	lesson := s.GetUserProgress().FindLesson(levelID, lessonID)
	if lesson == nil {
		return nil
	}
	found := *lesson
	return &found
}

// GetLevelProgress returns the percentage of a level's lessons that are complete
func (s *Store) GetLevelProgress(levelID, totalLessons int) int {
	if levelID < 1 || totalLessons <= 0 {
		return 0
	}
	return LevelPercent(s.GetUserProgress().CompletedLessons(levelID), totalLessons)
}

// LevelPercent is round(100 * completed / total), capped at 100
func LevelPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	percent := int(math.Round(100 * float64(completed) / float64(total)))
	if percent > 100 {
		percent = 100
	}
	return percent
}

// GetBadgeInfo looks up a badge in the catalog
func (s *Store) GetBadgeInfo(id models.BadgeID) (models.Badge, bool) {
	return GetBadgeInfo(id)
}

// GetAllBadges returns the badge catalog
func (s *Store) GetAllBadges() []models.Badge {
	return GetAllBadges()
}

// ResetProgress deletes the stored record
func (s *Store) ResetProgress() error {
	if err := s.storage.Remove(s.key); err != nil {
		log.Printf("Warning: failed to reset progress: %v", err)
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	return nil
}

func (s *Store) defaultProgress() *models.UserProgress {
	return &models.UserProgress{
		Lessons:      []models.LessonProgress{},
		Points:       0,
		Badges:       []models.BadgeID{},
		CurrentLevel: defaultLevel,
		LastActive:   s.now(),
	}
}

// lessonPoints is the base award plus a bonus of a tenth of the score when the quiz was passed
func lessonPoints(result *models.QuizResult) int {
	points := basePoints
	if result != nil && result.Passed {
		// Integer division is floor(score * 0.1) for scores in [0,100]
		points += clampScore(result.Score) / 10
	}
	return points
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxQuizScore {
		return maxQuizScore
	}
	return score
}

// storedProgress mirrors UserProgress with pointer fields so absent keys can be detected
type storedProgress struct {
	Lessons      *[]models.LessonProgress `json:"lessons"`
	Points       *int                     `json:"points"`
	Badges       *[]models.BadgeID        `json:"badges"`
	CurrentLevel *int                     `json:"currentLevel"`
	LastActive   time.Time                `json:"lastActive"`
}

// errIncompleteProgress is returned for records that parse but are missing fields or break invariants
var errIncompleteProgress = errors.New("incomplete progress record")

// DecodeProgress parses a stored progress record
func DecodeProgress(raw string) (*models.UserProgress, error) {
	var stored storedProgress
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to parse progress: %w", err)
	}

	if stored.Lessons == nil || stored.Points == nil || stored.Badges == nil || stored.CurrentLevel == nil {
		return nil, fmt.Errorf("%w: missing fields", errIncompleteProgress)
	}
	if *stored.Points < 0 {
		return nil, fmt.Errorf("%w: negative points", errIncompleteProgress)
	}

	seen := make(map[string]bool, len(*stored.Lessons))
	for _, l := range *stored.Lessons {
		if l.LessonID == "" {
			return nil, fmt.Errorf("%w: lesson without id", errIncompleteProgress)
		}
		if l.QuizScore != nil && (*l.QuizScore < 0 || *l.QuizScore > maxQuizScore) {
			return nil, fmt.Errorf("%w: quiz score %d out of range", errIncompleteProgress, *l.QuizScore)
		}
		key := fmt.Sprintf("%d/%s", l.LevelID, l.LessonID)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate lesson %s", errIncompleteProgress, key)
		}
		seen[key] = true
	}

	return &models.UserProgress{
		Lessons:      *stored.Lessons,
		Points:       *stored.Points,
		Badges:       *stored.Badges,
		CurrentLevel: *stored.CurrentLevel,
		LastActive:   stored.LastActive,
	}, nil
}

// EncodeProgress serializes a progress record in its stored form
func EncodeProgress(progress *models.UserProgress) (string, error) {
	out := *progress
	if out.Lessons == nil {
		out.Lessons = []models.LessonProgress{}
	}
	if out.Badges == nil {
		out.Badges = []models.BadgeID{}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
