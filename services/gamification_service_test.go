package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 250, want: 3},
		{xp: 500, want: 6},
	}

	for _, tt := range tests {
		if got := Level(tt.xp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestAdvanceStreak(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
	yesterday := day(2025, time.March, 9)
	sameDay := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	lastWeek := day(2025, time.March, 3)

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{name: "first ever completion", current: 0, last: nil, want: 1},
		{name: "consecutive day extends", current: 3, last: &yesterday, want: 4},
		{name: "same day unchanged", current: 3, last: &sameDay, want: 3},
		{name: "gap resets to one", current: 7, last: &lastWeek, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, date := AdvanceStreak(tt.current, tt.last, now)
			if got != tt.want {
				t.Errorf("AdvanceStreak = %d, want %d", got, tt.want)
			}
			if !date.Equal(day(2025, time.March, 10)) {
				t.Errorf("streak date = %v, want start of today", date)
			}
		})
	}
}

func TestAdvanceStreakMonotonicOverConsecutiveDays(t *testing.T) {
	var last *time.Time
	current := 0
	start := day(2025, time.June, 1)

	for i := 0; i < 5; i++ {
		now := start.AddDate(0, 0, i).Add(10 * time.Hour)
		next, date := AdvanceStreak(current, last, now)
		if next != i+1 {
			t.Fatalf("day %d: streak = %d, want %d", i, next, i+1)
		}
		current = next
		last = &date
	}
}

func TestEvaluateBadgesTrailblazerAlways(t *testing.T) {
	grants := EvaluateBadges(nil, 1, 5, false, false)
	if len(grants) != 1 || grants[0] != BadgeTrailblazer {
		t.Fatalf("expected only Trailblazer on first completion, got %v", grants)
	}

	// Already held: never granted twice.
	grants = EvaluateBadges([]string{BadgeTrailblazer}, 2, 10, false, false)
	if len(grants) != 0 {
		t.Errorf("expected no new grants, got %v", grants)
	}
}

func TestEvaluateBadgesXPThreshold(t *testing.T) {
	held := []string{BadgeTrailblazer}

	if grants := EvaluateBadges(held, 3, 495, false, false); contains(grants, BadgeSkillSamurai) {
		t.Errorf("Skill Samurai granted below threshold: %v", grants)
	}
	// The 495 -> 500 crossing: one completion tips the threshold.
	if grants := EvaluateBadges(held, 3, 500, false, false); !contains(grants, BadgeSkillSamurai) {
		t.Errorf("Skill Samurai missing at 500 XP: %v", grants)
	}
}

func TestEvaluateBadgesTopicCount(t *testing.T) {
	held := []string{BadgeTrailblazer}

	if grants := EvaluateBadges(held, 9, 45, false, false); contains(grants, BadgeKnowledgeNinja) {
		t.Errorf("Knowledge Ninja granted below 10 topics: %v", grants)
	}
	if grants := EvaluateBadges(held, 10, 50, false, false); !contains(grants, BadgeKnowledgeNinja) {
		t.Errorf("Knowledge Ninja missing at 10 topics: %v", grants)
	}
}

func TestEvaluateBadgesCompletionMilestones(t *testing.T) {
	grants := EvaluateBadges([]string{BadgeTrailblazer}, 4, 20, true, false)
	if !contains(grants, BadgeWeekOneWarrior) {
		t.Errorf("Week One Warrior missing: %v", grants)
	}

	grants = EvaluateBadges([]string{BadgeTrailblazer, BadgeWeekOneWarrior}, 12, 60, true, true)
	if !contains(grants, BadgeMastermind) {
		t.Errorf("Mastermind missing: %v", grants)
	}
}

func TestEvaluateBadgesCollectorExcludesItself(t *testing.T) {
	// Four held plus Skill Samurai granted in the same call makes five others.
	held := []string{BadgeTrailblazer, BadgeWeekOneWarrior, BadgeMastermind, BadgeKnowledgeNinja}
	grants := EvaluateBadges(held, 12, 500, false, false)
	if !contains(grants, BadgeSkillSamurai) {
		t.Fatalf("Skill Samurai missing: %v", grants)
	}
	if !contains(grants, BadgeCollector) {
		t.Errorf("Badge Collector missing with five other badges: %v", grants)
	}

	// Holding the collector itself must not count toward its own condition.
	held = []string{BadgeCollector, BadgeWeekOneWarrior, BadgeMastermind, BadgeKnowledgeNinja}
	grants = EvaluateBadges(held, 12, 50, false, false)
	if contains(grants, BadgeCollector) {
		t.Errorf("Badge Collector already held, re-granted: %v", grants)
	}

	// Three others plus Trailblazer is only four: no collector.
	held = []string{BadgeWeekOneWarrior, BadgeMastermind, BadgeKnowledgeNinja}
	grants = EvaluateBadges(held, 2, 10, false, false)
	if contains(grants, BadgeCollector) {
		t.Errorf("Badge Collector granted with only four other badges: %v", grants)
	}
}

func TestWeekAndRoadmapComplete(t *testing.T) {
	topicA := uuid.New()
	topicB := uuid.New()
	topicC := uuid.New()
	roadmap := models.RoadmapTemplate{
		Modules: []models.Module{
			{WeekNumber: 1, Topics: []models.Topic{{ID: topicA}, {ID: topicB}}},
			{WeekNumber: 2, Topics: []models.Topic{{ID: topicC}}},
		},
	}

	done := map[uuid.UUID]bool{topicA: true}
	if WeekComplete(roadmap, 1, done) {
		t.Error("week 1 should not be complete with one topic left")
	}

	done[topicB] = true
	if !WeekComplete(roadmap, 1, done) {
		t.Error("week 1 should be complete")
	}
	if RoadmapComplete(roadmap, done) {
		t.Error("roadmap should not be complete with week 2 open")
	}

	done[topicC] = true
	if !RoadmapComplete(roadmap, done) {
		t.Error("roadmap should be complete")
	}

	if WeekComplete(roadmap, 3, done) {
		t.Error("a week with no topics must not count as complete")
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
