package progress

import (
	"digitalseekho/internal/i18n"
	"digitalseekho/internal/models"
)

const (
	quizMasterScore     = 90
	quizMasterLessons   = 5
	speedLearnerLimitMs = 10 * 60 * 1000
)

// badgeCatalog lists every badge in display order
var badgeCatalog = []models.Badge{
	{
		ID:          models.BadgeFirstLesson,
		Name:        i18n.Text{English: "First Step", Urdu: "پہلا قدم"},
		Icon:        "🎯",
		Requirement: i18n.Text{English: "Complete your first lesson", Urdu: "اپنا پہلا سبق مکمل کریں"},
	},
	{
		ID:          models.BadgeLevel1Complete,
		Name:        i18n.Text{English: "Computer Basics Graduate", Urdu: "کمپیوٹر کی بنیادی باتوں کا ماہر"},
		Icon:        "💻",
		Requirement: i18n.Text{English: "Complete all Level 1 lessons", Urdu: "لیول 1 کے تمام اسباق مکمل کریں"},
	},
	{
		ID:          models.BadgeLevel2Complete,
		Name:        i18n.Text{English: "Internet Explorer", Urdu: "انٹرنیٹ کا مسافر"},
		Icon:        "🌐",
		Requirement: i18n.Text{English: "Complete all Level 2 lessons", Urdu: "لیول 2 کے تمام اسباق مکمل کریں"},
	},
	{
		ID:          models.BadgeLevel3Complete,
		Name:        i18n.Text{English: "AI Explorer", Urdu: "اے آئی کا کھوجی"},
		Icon:        "🤖",
		Requirement: i18n.Text{English: "Complete all Level 3 lessons", Urdu: "لیول 3 کے تمام اسباق مکمل کریں"},
	},
	{
		ID:          models.BadgeQuizMaster,
		Name:        i18n.Text{English: "Quiz Master", Urdu: "کوئز ماسٹر"},
		Icon:        "🏆",
		Requirement: i18n.Text{English: "Score 90% or more on 5 quizzes", Urdu: "5 کوئز میں 90% یا زیادہ اسکور کریں"},
	},
	{
		ID:          models.BadgeSpeedLearner,
		Name:        i18n.Text{English: "Speed Learner", Urdu: "تیز رفتار سیکھنے والا"},
		Icon:        "⚡",
		Requirement: i18n.Text{English: "Complete a lesson in under 10 minutes", Urdu: "ایک سبق 10 منٹ سے کم میں مکمل کریں"},
	},
}

// levelBadges maps each level badge to the number of lessons that level needs
var levelBadges = []struct {
	badge   models.BadgeID
	levelID int
	lessons int
}{
	{badge: models.BadgeLevel1Complete, levelID: 1, lessons: 4},
	{badge: models.BadgeLevel2Complete, levelID: 2, lessons: 5},
	{badge: models.BadgeLevel3Complete, levelID: 3, lessons: 3},
}

// EvaluateBadges returns the badges the snapshot qualifies for that it does not already hold.
// Every rule is recomputed from the full lesson list, so calling it twice on the
// same snapshot gives the same answer.
func EvaluateBadges(p *models.UserProgress) []models.BadgeID {
	var earned []models.BadgeID
	award := func(id models.BadgeID, qualifies bool) {
		if qualifies && !p.HasBadge(id) {
			earned = append(earned, id)
		}
	}

	award(models.BadgeFirstLesson, p.TotalCompleted() == 1)

	for _, lb := range levelBadges {
		award(lb.badge, p.CompletedLessons(lb.levelID) >= lb.lessons)
	}

	highScores := 0
	fastLessons := 0
	for _, l := range p.Lessons {
		if !l.Completed {
			continue
		}
		if l.QuizScore != nil && *l.QuizScore >= quizMasterScore {
			highScores++
		}
		if l.TimeSpent < speedLearnerLimitMs {
			fastLessons++
		}
	}
	award(models.BadgeQuizMaster, highScores >= quizMasterLessons)
	award(models.BadgeSpeedLearner, fastLessons >= 1)

	return earned
}

// GetBadgeInfo looks up a badge in the catalog
func GetBadgeInfo(id models.BadgeID) (models.Badge, bool) {
	for _, b := range badgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

// GetAllBadges returns a copy of the badge catalog
func GetAllBadges() []models.Badge {
	badges := make([]models.Badge, len(badgeCatalog))
	copy(badges, badgeCatalog)
	return badges
}
