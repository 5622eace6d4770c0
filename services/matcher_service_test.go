package services

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/models"
)

func buildTemplate(title string, estimatedWeeks int, goalTags []string, topicHours ...int) models.RoadmapTemplate {
	tpl := models.RoadmapTemplate{
		ID:             uuid.New(),
		Title:          title,
		Interest:       "Web Development",
		GoalTags:       goalTags,
		EstimatedWeeks: estimatedWeeks,
	}
	module := models.Module{ID: uuid.New(), WeekNumber: 1}
	for _, hours := range topicHours {
		module.Topics = append(module.Topics, models.Topic{ID: uuid.New(), Title: "t", EstimatedTime: hours})
	}
	tpl.Modules = []models.Module{module}
	return tpl
}

func TestTimeRangeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     bool
		wantMin     int
		wantMax     int
		wantUnbound bool
	}{
		{name: "bounded", input: `{"min":10,"max":15}`, wantMin: 10, wantMax: 15},
		{name: "infinity sentinel", input: `{"min":5,"max":"Infinity"}`, wantMin: 5, wantUnbound: true},
		{name: "missing min", input: `{"max":15}`, wantErr: true},
		{name: "missing max", input: `{"min":10}`, wantErr: true},
		{name: "bad sentinel", input: `{"min":10,"max":"lots"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr TimeRange
			err := json.Unmarshal([]byte(tt.input), &tr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", tr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.Min != tt.wantMin || tr.Max != tt.wantMax || tr.MaxUnbounded != tt.wantUnbound {
				t.Errorf("got %+v, want min=%d max=%d unbounded=%v", tr, tt.wantMin, tt.wantMax, tt.wantUnbound)
			}
		})
	}
}

func TestTimeRangeValidate(t *testing.T) {
	if err := (TimeRange{Min: 0, Max: 10}).Validate(); err == nil {
		t.Error("expected error for zero min")
	}
	if err := (TimeRange{Min: 10, Max: 5}).Validate(); err == nil {
		t.Error("expected error for max below min")
	}
	if err := (TimeRange{Min: 10, MaxUnbounded: true}).Validate(); err != nil {
		t.Errorf("unexpected error for unbounded max: %v", err)
	}
}

func TestRequiredWeeks(t *testing.T) {
	tests := []struct {
		total, perWeek, want int
	}{
		{80, 10, 8},
		{81, 10, 9},
		{80, 15, 6},
		{1, 10, 1},
		{0, 10, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := RequiredWeeks(tt.total, tt.perWeek); got != tt.want {
			t.Errorf("RequiredWeeks(%d, %d) = %d, want %d", tt.total, tt.perWeek, got, tt.want)
		}
	}
}

func TestFitsTimeRange(t *testing.T) {
	// 80 hours at 10h/week needs 8 weeks; the template allows 10.
	tpl := buildTemplate("Frontend Path", 10, []string{"Get a job"}, 40, 40)

	if !FitsTimeRange(tpl, TimeRange{Min: 10, Max: 15}) {
		t.Error("expected 8-week plan to fit a 10-week template at 10-15h/week")
	}

	// 4h/week needs 20 weeks, beyond the declared 10.
	if FitsTimeRange(tpl, TimeRange{Min: 4, Max: 8}) {
		t.Error("expected plan exceeding the template's week count to be rejected")
	}

	// Unbounded max accepts anything within the declared week count.
	if !FitsTimeRange(tpl, TimeRange{Min: 10, MaxUnbounded: true}) {
		t.Error("expected unbounded max to accept the plan")
	}
	if FitsTimeRange(tpl, TimeRange{Min: 4, MaxUnbounded: true}) {
		t.Error("expected the week-count cap to hold even with unbounded max")
	}

	// No declared week count: only the budget window applies.
	open := buildTemplate("Open Path", 0, []string{"Get a job"}, 40, 40)
	if !FitsTimeRange(open, TimeRange{Min: 4, Max: 8}) {
		t.Error("expected template without estimated weeks to fit")
	}
}

func TestGoalsIntersect(t *testing.T) {
	tags := []string{"Get a job", "Build a portfolio project"}
	if !GoalsIntersect(tags, []string{"Crack interviews", "Get a job"}) {
		t.Error("expected overlap to be detected")
	}
	if GoalsIntersect(tags, []string{"Switch career"}) {
		t.Error("expected disjoint goals to miss")
	}
	if GoalsIntersect(tags, nil) {
		t.Error("expected empty goals to miss")
	}
}

func TestMatchRoadmapsFiltersByGoalAndTime(t *testing.T) {
	fits := buildTemplate("Fits", 10, []string{"Get a job"}, 40, 40)
	wrongGoal := buildTemplate("Wrong Goal", 10, []string{"Switch career"}, 40, 40)
	tooLong := buildTemplate("Too Long", 3, []string{"Get a job"}, 40, 40)

	got := MatchRoadmaps(
		[]models.RoadmapTemplate{fits, wrongGoal, tooLong},
		[]string{"Get a job"},
		TimeRange{Min: 10, Max: 15},
	)

	if len(got) != 1 || got[0].Title != "Fits" {
		t.Fatalf("expected exactly the fitting template, got %d result(s)", len(got))
	}
}

func TestMatchRoadmapsEmptyCatalog(t *testing.T) {
	got := MatchRoadmaps(nil, []string{"Get a job"}, TimeRange{Min: 10, Max: 15})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestMatchRoadmapsFallbackPicksClosest(t *testing.T) {
	// Neither fits: both declare fewer weeks than the 8 the budget needs.
	near := buildTemplate("Near Miss", 7, []string{"Get a job"}, 40, 40) // distance 1
	far := buildTemplate("Far Miss", 2, []string{"Get a job"}, 40, 40)   // distance 6

	got := MatchRoadmaps(
		[]models.RoadmapTemplate{far, near},
		[]string{"Get a job"},
		TimeRange{Min: 10, Max: 15},
	)

	if len(got) != 1 {
		t.Fatalf("expected a single fallback result, got %d", len(got))
	}
	if got[0].Title != "Near Miss" {
		t.Errorf("expected the closest template by week distance, got %q", got[0].Title)
	}
}

func TestMatchRoadmapsFallbackIgnoresGoalMisses(t *testing.T) {
	wrongGoal := buildTemplate("Wrong Goal", 7, []string{"Switch career"}, 40, 40)

	got := MatchRoadmaps(
		[]models.RoadmapTemplate{wrongGoal},
		[]string{"Get a job"},
		TimeRange{Min: 10, Max: 15},
	)

	if len(got) != 0 {
		t.Fatalf("fallback must only consider goal-matched candidates, got %d", len(got))
	}
}
