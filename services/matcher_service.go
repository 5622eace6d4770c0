package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TimeRange is the learner's weekly time budget in hours. The max bound
// accepts the literal JSON string "Infinity" as sent by the preference form.
type TimeRange struct {
	Min          int
	Max          int
	MaxUnbounded bool
}

func (t *TimeRange) UnmarshalJSON(data []byte) error {
	var raw struct {
		Min *int            `json:"min"`
		Max json.RawMessage `json:"max"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Min == nil {
		return errors.New("availableWeeklyTime.min is required")
	}
	t.Min = *raw.Min

	if len(raw.Max) == 0 || string(raw.Max) == "null" {
		return errors.New("availableWeeklyTime.max is required")
	}
	var sentinel string
	if err := json.Unmarshal(raw.Max, &sentinel); err == nil {
		if sentinel != "Infinity" {
			return fmt.Errorf("availableWeeklyTime.max must be a number or \"Infinity\", got %q", sentinel)
		}
		t.MaxUnbounded = true
		return nil
	}
	return json.Unmarshal(raw.Max, &t.Max)
}

func (t TimeRange) Validate() error {
	if t.Min < 1 {
		return errors.New("availableWeeklyTime.min must be at least 1 hour")
	}
	if !t.MaxUnbounded && t.Max < t.Min {
		return errors.New("availableWeeklyTime.max must not be below min")
	}
	return nil
}

// RequiredWeeks converts a total hour estimate into weeks at the given pace.
func RequiredWeeks(totalHours, hoursPerWeek int) int {
	if hoursPerWeek < 1 {
		return 0
	}
	return (totalHours + hoursPerWeek - 1) / hoursPerWeek
}

// GoalsIntersect reports whether the template shares at least one goal tag
// with the learner's goals.
func GoalsIntersect(templateTags []string, goals []string) bool {
	for _, tag := range templateTags {
		for _, goal := range goals {
			if tag == goal {
				return true
			}
		}
	}
	return false
}

// FitsTimeRange decides whether a template fits the learner's weekly budget.
// Working max hours per week finishes in the fewest weeks, min hours in the
// most, so the plan's required weeks must land inside [weeksAtMax, weeksAtMin]
// and must not exceed the template's declared week count when it has one.
func FitsTimeRange(tpl models.RoadmapTemplate, tr TimeRange) bool {
	total := tpl.TotalEstimatedHours()
	weeks := RequiredWeeks(total, tr.Min)

	if tpl.EstimatedWeeks > 0 && weeks > tpl.EstimatedWeeks {
		return false
	}
	if tr.MaxUnbounded {
		return true
	}
	weeksAtMax := RequiredWeeks(total, tr.Max)
	return weeksAtMax <= weeks
}

// weekDistance scores a template for the closest-match fallback. Templates
// that declare no week count impose no constraint, so they score zero.
func weekDistance(tpl models.RoadmapTemplate, tr TimeRange) int {
	if tpl.EstimatedWeeks == 0 {
		return 0
	}
	d := RequiredWeeks(tpl.TotalEstimatedHours(), tr.Min) - tpl.EstimatedWeeks
	if d < 0 {
		d = -d
	}
	return d
}

// MatchRoadmaps filters the interest-matched candidates down to those that
// share a goal tag and fit the time budget. When nothing fits, the closest
// remaining candidate by week distance is returned instead; an empty
// candidate set yields an empty result.
func MatchRoadmaps(candidates []models.RoadmapTemplate, goals []string, tr TimeRange) []models.RoadmapTemplate {
	var pool []models.RoadmapTemplate
	for _, tpl := range candidates {
		if GoalsIntersect(tpl.GoalTags, goals) {
			pool = append(pool, tpl)
		}
	}

	var matched []models.RoadmapTemplate
	for _, tpl := range pool {
		if FitsTimeRange(tpl, tr) {
			matched = append(matched, tpl)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	var closest *models.RoadmapTemplate
	best := 0
	for i := range pool {
		d := weekDistance(pool[i], tr)
		if closest == nil || d < best {
			closest = &pool[i]
			best = d
		}
	}
	if closest == nil {
		return nil
	}
	return []models.RoadmapTemplate{*closest}
}

// GeneratePersonalizedRoadmaps runs the matcher against the catalog.
func GeneratePersonalizedRoadmaps(interest string, goals []string, tr TimeRange) ([]models.RoadmapTemplate, error) {
	var candidates []models.RoadmapTemplate
	err := database.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("modules.week_number ASC") }).
		Preload("Modules.Topics").
		Preload("Modules.Topics.Resources", func(db *gorm.DB) *gorm.DB { return db.Order("topic_resources.position ASC") }).
		Where("interest = ?", interest).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	return MatchRoadmaps(candidates, goals, tr), nil
}

// FollowRoadmap attaches a roadmap to the user's active list. The unique
// index on (user_id, roadmap_template_id) makes the follow idempotent under
// concurrent requests.
func FollowRoadmap(userID, roadmapID uuid.UUID) error {
	var roadmap models.RoadmapTemplate
	if err := database.DB.First(&roadmap, "id = ?", roadmapID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoadmapNotFound
		}
		return err
	}

	follow := models.ActiveRoadmap{
		UserID:            userID,
		RoadmapTemplateID: roadmapID,
		StartedAt:         time.Now(),
		CurrentWeek:       1,
	}
	res := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyFollowing
	}
	return nil
}
