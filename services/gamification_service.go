package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
	"github.com/skillkart/skillkart-backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	xpPerTopicCompletion = 5

	topicsForKnowledgeNinja = 10
	xpForSkillSamurai       = 500
	badgesForCollector      = 5
	postsForDynamo          = 5
)

const (
	BadgeTrailblazer      = "Trailblazer"
	BadgeWeekOneWarrior   = "Week One Warrior"
	BadgeMastermind       = "Mastermind"
	BadgeKnowledgeNinja   = "Knowledge Ninja"
	BadgeSkillSamurai     = "Skill Samurai"
	BadgeDiscussionDynamo = "Discussion Dynamo"
	BadgeCollector        = "Badge Collector"
)

// AccrualResult is what a successful completion reports back to the caller.
type AccrualResult struct {
	XP     int                `json:"xp"`
	Badges []string           `json:"badges"`
	Streak models.DailyStreak `json:"dailyStreak"`
}

// Level converts cumulative XP into the displayed level, 100 XP per level.
func Level(xp int) int {
	return xp/100 + 1
}

// AdvanceStreak applies the calendar-day streak rules: same day leaves the
// count alone, the day after the last activity extends it by one, any wider
// gap (or no history) restarts at one. Returns the new count and streak date.
func AdvanceStreak(current int, last *time.Time, now time.Time) (int, time.Time) {
	today := utils.StartOfDay(now)
	if last == nil {
		return 1, today
	}
	switch {
	case utils.SameCalendarDay(*last, now):
		if current < 1 {
			return 1, today
		}
		return current, today
	case utils.IsYesterdayOf(*last, now):
		return current + 1, today
	default:
		return 1, today
	}
}

// EvaluateBadges returns the badge names newly earned given the counters
// after this completion. Badge Collector is evaluated last against the set
// excluding itself, so its grant never depends on its own presence.
func EvaluateBadges(held []string, completedTotal, xp int, weekOneDone, roadmapDone bool) []string {
	has := make(map[string]bool, len(held))
	for _, name := range held {
		has[name] = true
	}

	var grants []string
	grant := func(name string, cond bool) {
		if cond && !has[name] {
			has[name] = true
			grants = append(grants, name)
		}
	}

	grant(BadgeTrailblazer, true)
	grant(BadgeWeekOneWarrior, weekOneDone)
	grant(BadgeMastermind, roadmapDone)
	grant(BadgeKnowledgeNinja, completedTotal >= topicsForKnowledgeNinja)
	grant(BadgeSkillSamurai, xp >= xpForSkillSamurai)

	others := 0
	for name := range has {
		if name != BadgeCollector {
			others++
		}
	}
	grant(BadgeCollector, others >= badgesForCollector)

	return grants
}

// WeekComplete reports whether every topic of the given week is in done.
// A week with no topics does not count as complete.
func WeekComplete(roadmap models.RoadmapTemplate, week int, done map[uuid.UUID]bool) bool {
	found := false
	for _, module := range roadmap.Modules {
		if module.WeekNumber != week {
			continue
		}
		for _, topic := range module.Topics {
			found = true
			if !done[topic.ID] {
				return false
			}
		}
	}
	return found
}

// RoadmapComplete reports whether every topic of every module is in done.
func RoadmapComplete(roadmap models.RoadmapTemplate, done map[uuid.UUID]bool) bool {
	found := false
	for _, module := range roadmap.Modules {
		for _, topic := range module.Topics {
			found = true
			if !done[topic.ID] {
				return false
			}
		}
	}
	return found
}

// AccrualStore is the slice of persistence the accrual routine touches.
// Production wraps a single transaction; tests substitute a fake.
type AccrualStore interface {
	RoadmapWithTopics(roadmapID uuid.UUID) (*models.RoadmapTemplate, error)
	UserWithBadges(userID uuid.UUID) (*models.User, error)
	ProgressFor(userID, roadmapID uuid.UUID) (*models.UserRoadmapProgress, error)
	// MarkCompleted flips the completion entry for (progress, topic) and
	// reports false when the topic was already completed.
	MarkCompleted(progress *models.UserRoadmapProgress, topicID uuid.UUID, now time.Time) (bool, error)
	CompletedCount(userID uuid.UUID) (int, error)
	CompletedTopicIDs(progressID uuid.UUID) ([]uuid.UUID, error)
	GrantBadges(user *models.User, names []string) error
	SaveCounters(user *models.User) error
}

// accrueCompletion runs the completion + streak + XP + badge pipeline against
// a store. The duplicate check happens before any mutation, so a conflicting
// call leaves every counter untouched.
func accrueCompletion(store AccrualStore, userID, roadmapID, topicID uuid.UUID, now time.Time) (*AccrualResult, *models.User, *models.RoadmapTemplate, bool, error) {
	roadmap, err := store.RoadmapWithTopics(roadmapID)
	if err != nil {
		return nil, nil, nil, false, err
	}
	if !roadmap.HasTopic(topicID) {
		return nil, nil, nil, false, ErrTopicNotFound
	}

	user, err := store.UserWithBadges(userID)
	if err != nil {
		return nil, nil, nil, false, err
	}

	progress, err := store.ProgressFor(userID, roadmapID)
	if err != nil {
		return nil, nil, nil, false, err
	}

	fresh, err := store.MarkCompleted(progress, topicID, now)
	if err != nil {
		return nil, nil, nil, false, err
	}
	if !fresh {
		return nil, nil, nil, false, ErrTopicAlreadyCompleted
	}

	streak, streakDate := AdvanceStreak(user.CurrentStreak, user.LastStreakDate, now)
	user.CurrentStreak = streak
	user.LastStreakDate = &streakDate
	user.XP += xpPerTopicCompletion

	completedTotal, err := store.CompletedCount(userID)
	if err != nil {
		return nil, nil, nil, false, err
	}

	doneIDs, err := store.CompletedTopicIDs(progress.ID)
	if err != nil {
		return nil, nil, nil, false, err
	}
	done := make(map[uuid.UUID]bool, len(doneIDs))
	for _, id := range doneIDs {
		done[id] = true
	}

	weekOneDone := WeekComplete(*roadmap, 1, done)
	roadmapDone := RoadmapComplete(*roadmap, done)

	held := badgeNames(user.Badges)
	grants := EvaluateBadges(held, completedTotal, user.XP, weekOneDone, roadmapDone)
	if err := store.GrantBadges(user, grants); err != nil {
		return nil, nil, nil, false, err
	}

	if err := store.SaveCounters(user); err != nil {
		return nil, nil, nil, false, err
	}

	result := &AccrualResult{
		XP:     user.XP,
		Badges: append(held, grants...),
		Streak: user.Streak(),
	}
	return result, user, roadmap, roadmapDone, nil
}

// CompleteTopic records a topic completion and accrues streak, XP and badges
// in a single transaction. The completion write is a conditional update plus
// an ON CONFLICT DO NOTHING insert against the (progress, topic) unique
// index, so two concurrent requests for the same topic cannot both pass and
// XP is granted at most once per topic.
func CompleteTopic(userID, roadmapID, topicID uuid.UUID, now time.Time) (*AccrualResult, error) {
	var result *AccrualResult
	var certUser *models.User
	var certRoadmap *models.RoadmapTemplate
	roadmapDone := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		r, user, roadmap, done, err := accrueCompletion(&gormAccrualStore{tx: tx}, userID, roadmapID, topicID, now)
		if err != nil {
			return err
		}
		result, certUser, certRoadmap, roadmapDone = r, user, roadmap, done
		return nil
	})
	if err != nil {
		return nil, err
	}

	if roadmapDone {
		go CheckAndGenerateCertificate(*certUser, *certRoadmap)
	}

	return result, nil
}

// gormAccrualStore runs the accrual against one transaction.
type gormAccrualStore struct {
	tx *gorm.DB
}

func (s *gormAccrualStore) RoadmapWithTopics(roadmapID uuid.UUID) (*models.RoadmapTemplate, error) {
	var roadmap models.RoadmapTemplate
	if err := s.tx.Preload("Modules.Topics").First(&roadmap, "id = ?", roadmapID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, err
	}
	return &roadmap, nil
}

func (s *gormAccrualStore) UserWithBadges(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.tx.Preload("Badges").First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormAccrualStore) ProgressFor(userID, roadmapID uuid.UUID) (*models.UserRoadmapProgress, error) {
	var progress models.UserRoadmapProgress
	if err := s.tx.Where(models.UserRoadmapProgress{UserID: userID, RoadmapTemplateID: roadmapID}).
		FirstOrCreate(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *gormAccrualStore) MarkCompleted(progress *models.UserRoadmapProgress, topicID uuid.UUID, now time.Time) (bool, error) {
	res := s.tx.Model(&models.TopicCompletion{}).
		Where("progress_id = ? AND topic_id = ? AND is_completed = ?", progress.ID, topicID, false).
		Updates(map[string]interface{}{"is_completed": true, "completed_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		completion := models.TopicCompletion{
			ProgressID:  progress.ID,
			TopicID:     topicID,
			IsCompleted: true,
			CompletedAt: &now,
		}
		ins := s.tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
		if ins.Error != nil {
			return false, ins.Error
		}
		if ins.RowsAffected == 0 {
			return false, nil
		}
	}
	if err := s.tx.Model(progress).Update("updated_at", now).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *gormAccrualStore) CompletedCount(userID uuid.UUID) (int, error) {
	var total int64
	err := s.tx.Model(&models.TopicCompletion{}).
		Joins("JOIN user_roadmap_progresses ON user_roadmap_progresses.id = topic_completions.progress_id").
		Where("user_roadmap_progresses.user_id = ? AND topic_completions.is_completed = ?", userID, true).
		Count(&total).Error
	return int(total), err
}

func (s *gormAccrualStore) CompletedTopicIDs(progressID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.tx.Model(&models.TopicCompletion{}).
		Where("progress_id = ? AND is_completed = ?", progressID, true).
		Pluck("topic_id", &ids).Error
	return ids, err
}

func (s *gormAccrualStore) GrantBadges(user *models.User, names []string) error {
	return appendBadges(s.tx, user, names)
}

func (s *gormAccrualStore) SaveCounters(user *models.User) error {
	return s.tx.Model(user).
		Select("xp", "current_streak", "last_streak_date").
		Updates(models.User{
			XP:             user.XP,
			CurrentStreak:  user.CurrentStreak,
			LastStreakDate: user.LastStreakDate,
		}).Error
}

// AwardForumActivity grants the forum-participation badge once a user has
// authored enough threads and replies, then rechecks Badge Collector.
// Called asynchronously after thread or reply creation.
func AwardForumActivity(userID uuid.UUID) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Preload("Badges").First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		var threads, replies int64
		if err := tx.Model(&models.DiscussionThread{}).Where("created_by_id = ?", userID).Count(&threads).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ThreadReply{}).Where("user_id = ?", userID).Count(&replies).Error; err != nil {
			return err
		}
		if threads+replies < postsForDynamo {
			return nil
		}

		has := make(map[string]bool, len(user.Badges))
		for _, badge := range user.Badges {
			has[badge.Name] = true
		}

		var grants []string
		if !has[BadgeDiscussionDynamo] {
			has[BadgeDiscussionDynamo] = true
			grants = append(grants, BadgeDiscussionDynamo)
		}
		others := 0
		for name := range has {
			if name != BadgeCollector {
				others++
			}
		}
		if !has[BadgeCollector] && others >= badgesForCollector {
			grants = append(grants, BadgeCollector)
		}

		return appendBadges(tx, &user, grants)
	})
	if err != nil {
		log.Printf("🔥 Failed to award forum activity badge to user %s: %v", userID, err)
	}
}

func badgeNames(badges []*models.Badge) []string {
	names := make([]string, 0, len(badges))
	for _, badge := range badges {
		names = append(names, badge.Name)
	}
	return names
}

func appendBadges(tx *gorm.DB, user *models.User, names []string) error {
	for _, name := range names {
		var badge models.Badge
		if err := tx.Where("name = ?", name).First(&badge).Error; err != nil {
			log.Printf("Warning: Badge %q not found in database. Cannot award.", name)
			continue
		}
		if err := tx.Model(user).Association("Badges").Append(&badge); err != nil {
			return err
		}
	}
	return nil
}
