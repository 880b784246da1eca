package models

import "digitalseekho/internal/i18n"

// BadgeID identifies an achievement in the badge catalog
type BadgeID string

const (
	BadgeFirstLesson    BadgeID = "first-lesson"
	BadgeLevel1Complete BadgeID = "level-1-complete"
	BadgeLevel2Complete BadgeID = "level-2-complete"
	BadgeLevel3Complete BadgeID = "level-3-complete"
	BadgeQuizMaster     BadgeID = "quiz-master"
	BadgeSpeedLearner   BadgeID = "speed-learner"
)

// Badge describes an achievement a learner can earn
type Badge struct {
	ID          BadgeID   `json:"id"`
	Name        i18n.Text `json:"name"`
	Icon        string    `json:"icon"`
	Requirement i18n.Text `json:"requirement"`
}
