package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/models"
)

// fakeAccrualStore keeps the completion ledger in a map so the accrual
// pipeline can be exercised without a database.
type fakeAccrualStore struct {
	roadmap  *models.RoadmapTemplate
	user     *models.User
	progress *models.UserRoadmapProgress

	completed    map[uuid.UUID]bool
	markCalls    int
	counterSaves int
	granted      []string
}

func newFakeAccrualStore(roadmap *models.RoadmapTemplate, user *models.User) *fakeAccrualStore {
	return &fakeAccrualStore{
		roadmap:   roadmap,
		user:      user,
		progress:  &models.UserRoadmapProgress{ID: uuid.New(), UserID: user.ID},
		completed: map[uuid.UUID]bool{},
	}
}

func (s *fakeAccrualStore) RoadmapWithTopics(roadmapID uuid.UUID) (*models.RoadmapTemplate, error) {
	if s.roadmap == nil {
		return nil, ErrRoadmapNotFound
	}
	return s.roadmap, nil
}

func (s *fakeAccrualStore) UserWithBadges(userID uuid.UUID) (*models.User, error) {
	return s.user, nil
}

func (s *fakeAccrualStore) ProgressFor(userID, roadmapID uuid.UUID) (*models.UserRoadmapProgress, error) {
	return s.progress, nil
}

func (s *fakeAccrualStore) MarkCompleted(progress *models.UserRoadmapProgress, topicID uuid.UUID, now time.Time) (bool, error) {
	s.markCalls++
	if s.completed[topicID] {
		return false, nil
	}
	s.completed[topicID] = true
	return true, nil
}

func (s *fakeAccrualStore) CompletedCount(userID uuid.UUID) (int, error) {
	return len(s.completed), nil
}

func (s *fakeAccrualStore) CompletedTopicIDs(progressID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *fakeAccrualStore) GrantBadges(user *models.User, names []string) error {
	for _, name := range names {
		s.granted = append(s.granted, name)
		user.Badges = append(user.Badges, &models.Badge{Name: name})
	}
	return nil
}

func (s *fakeAccrualStore) SaveCounters(user *models.User) error {
	s.counterSaves++
	return nil
}

func accrualFixture(t *testing.T) (*models.RoadmapTemplate, uuid.UUID, uuid.UUID) {
	t.Helper()
	topicA := uuid.New()
	topicB := uuid.New()
	roadmap := &models.RoadmapTemplate{
		ID:    uuid.New(),
		Title: "Backend Development",
		Modules: []models.Module{
			{
				ID:         uuid.New(),
				WeekNumber: 1,
				Topics: []models.Topic{
					{ID: topicA, Title: "HTTP Basics"},
					{ID: topicB, Title: "Routing"},
				},
			},
		},
	}
	return roadmap, topicA, topicB
}

func TestCompleteTopicFirstCompletionAwardsFiveXP(t *testing.T) {
	roadmap, topicA, _ := accrualFixture(t)
	user := &models.User{ID: uuid.New(), Name: "Asha"}
	store := newFakeAccrualStore(roadmap, user)
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	result, _, _, roadmapDone, err := accrueCompletion(store, user.ID, roadmap.ID, topicA, now)
	if err != nil {
		t.Fatalf("accrueCompletion: %v", err)
	}
	if result.XP != 5 {
		t.Errorf("XP = %d, want 5", result.XP)
	}
	if user.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", user.CurrentStreak)
	}
	if !contains(result.Badges, BadgeTrailblazer) {
		t.Errorf("badges = %v, want %q granted on first completion", result.Badges, BadgeTrailblazer)
	}
	if roadmapDone {
		t.Error("roadmap reported complete after one of two topics")
	}
	if store.counterSaves != 1 {
		t.Errorf("counter saves = %d, want 1", store.counterSaves)
	}
}

func TestCompleteTopicRepeatIsConflictAndLeavesStateAlone(t *testing.T) {
	roadmap, topicA, _ := accrualFixture(t)
	user := &models.User{ID: uuid.New(), Name: "Asha"}
	store := newFakeAccrualStore(roadmap, user)
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	if _, _, _, _, err := accrueCompletion(store, user.ID, roadmap.ID, topicA, now); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	xp, streak, badges, saves := user.XP, user.CurrentStreak, len(user.Badges), store.counterSaves

	_, _, _, _, err := accrueCompletion(store, user.ID, roadmap.ID, topicA, now.Add(time.Hour))
	if !errors.Is(err, ErrTopicAlreadyCompleted) {
		t.Fatalf("repeat completion error = %v, want ErrTopicAlreadyCompleted", err)
	}
	if user.XP != xp {
		t.Errorf("XP = %d after conflict, want %d", user.XP, xp)
	}
	if user.CurrentStreak != streak {
		t.Errorf("streak = %d after conflict, want %d", user.CurrentStreak, streak)
	}
	if len(user.Badges) != badges {
		t.Errorf("badge count = %d after conflict, want %d", len(user.Badges), badges)
	}
	if store.counterSaves != saves {
		t.Errorf("counter saves = %d after conflict, want %d", store.counterSaves, saves)
	}
}

func TestCompleteTopicXPGrowsByFivePerDistinctTopic(t *testing.T) {
	roadmap, topicA, topicB := accrualFixture(t)
	user := &models.User{ID: uuid.New(), Name: "Asha"}
	store := newFakeAccrualStore(roadmap, user)
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	if _, _, _, _, err := accrueCompletion(store, user.ID, roadmap.ID, topicA, now); err != nil {
		t.Fatalf("first topic: %v", err)
	}
	result, _, _, roadmapDone, err := accrueCompletion(store, user.ID, roadmap.ID, topicB, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second topic: %v", err)
	}
	if result.XP != 10 {
		t.Errorf("XP = %d after two topics, want 10", result.XP)
	}
	if user.CurrentStreak != 1 {
		t.Errorf("streak = %d for same-day completions, want 1", user.CurrentStreak)
	}
	if !roadmapDone {
		t.Error("roadmap not reported complete after final topic")
	}
	if !contains(result.Badges, BadgeWeekOneWarrior) || !contains(result.Badges, BadgeMastermind) {
		t.Errorf("badges = %v, want week and roadmap completion badges", result.Badges)
	}
}

func TestCompleteTopicUnknownTopicMutatesNothing(t *testing.T) {
	roadmap, _, _ := accrualFixture(t)
	user := &models.User{ID: uuid.New(), Name: "Asha"}
	store := newFakeAccrualStore(roadmap, user)

	_, _, _, _, err := accrueCompletion(store, user.ID, roadmap.ID, uuid.New(), time.Now())
	if !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("error = %v, want ErrTopicNotFound", err)
	}
	if store.markCalls != 0 {
		t.Errorf("ledger touched %d times for unknown topic, want 0", store.markCalls)
	}
	if user.XP != 0 || store.counterSaves != 0 {
		t.Errorf("state mutated for unknown topic: xp=%d saves=%d", user.XP, store.counterSaves)
	}
}

func TestCompleteTopicUnknownRoadmap(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Asha"}
	store := newFakeAccrualStore(&models.RoadmapTemplate{}, user)
	store.roadmap = nil

	_, _, _, _, err := accrueCompletion(store, user.ID, uuid.New(), uuid.New(), time.Now())
	if !errors.Is(err, ErrRoadmapNotFound) {
		t.Fatalf("error = %v, want ErrRoadmapNotFound", err)
	}
}

func TestCompleteTopicCrossesXPThreshold(t *testing.T) {
	roadmap, topicA, _ := accrualFixture(t)
	user := &models.User{
		ID:     uuid.New(),
		Name:   "Asha",
		XP:     495,
		Badges: []*models.Badge{{Name: BadgeTrailblazer}},
	}
	store := newFakeAccrualStore(roadmap, user)

	result, _, _, _, err := accrueCompletion(store, user.ID, roadmap.ID, topicA, time.Now())
	if err != nil {
		t.Fatalf("accrueCompletion: %v", err)
	}
	if result.XP != 500 {
		t.Errorf("XP = %d, want 500", result.XP)
	}
	if !contains(store.granted, BadgeSkillSamurai) {
		t.Errorf("granted = %v, want %q at 500 XP", store.granted, BadgeSkillSamurai)
	}
}
