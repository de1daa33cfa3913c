package service

import (
	"fmt"
	"testing"

	"nutricoach_backend/internal/model"
	"nutricoach_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memUserStore struct {
	users map[uint]*model.User
}

func (s *memUserStore) FindByID(id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type memGoalStore struct {
	goals map[uint][]model.UserGoal
	next  int
}

func newMemGoalStore() *memGoalStore {
	return &memGoalStore{goals: make(map[uint][]model.UserGoal)}
}

func (s *memGoalStore) FindByUserID(userID uint) ([]model.UserGoal, error) {
	out := make([]model.UserGoal, len(s.goals[userID]))
	copy(out, s.goals[userID])
	return out, nil
}

func (s *memGoalStore) Create(goal *model.UserGoal) error {
	s.next++
	if goal.Ref == "" {
		goal.Ref = fmt.Sprintf("ref-%d", s.next)
	}
	s.goals[goal.UserID] = append(s.goals[goal.UserID], *goal)
	return nil
}

func (s *memGoalStore) Update(goal *model.UserGoal) error {
	list := s.goals[goal.UserID]
	for i := range list {
		if list[i].Ref == goal.Ref {
			list[i] = *goal
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestGoalService(goals *memGoalStore) *GoalService {
	catalog := NewGoalCatalog()
	users := &memUserStore{users: map[uint]*model.User{1: {Name: "Dana"}}}
	return NewGoalService(users, goals, catalog,
		NewCatalogClassifier(catalog), NewProxyResolver(catalog, nil))
}

func TestAddGoal_StandardGoalFromCatalog(t *testing.T) {
	store := newMemGoalStore()
	svc := newTestGoalService(store)

	got, err := svc.AddGoal(1, "budget friendly meals", model.PriorityHigh)

	require.NoError(t, err)
	assert.Equal(t, model.GoalStandard, got.Goal.Kind)
	assert.Equal(t, model.GoalBudget, got.Goal.GoalID)
	assert.Equal(t, "Eating on a budget", got.Goal.Label)
	assert.Equal(t, model.PriorityHigh, got.Goal.Priority)
	assert.Equal(t, 0, got.Goal.Position)
	assert.Equal(t, 1, got.TotalGoals)
	assert.Contains(t, got.Acknowledgment, "Eating on a budget")
	require.NotNil(t, got.Goal.Template.MaxCostPerMeal)
	assert.Equal(t, 4.00, *got.Goal.Template.MaxCostPerMeal)
}

func TestAddGoal_CustomGoalViaResolver(t *testing.T) {
	store := newMemGoalStore()
	svc := newTestGoalService(store)

	got, err := svc.AddGoal(1, "skin health", model.PriorityMedium)

	require.NoError(t, err)
	assert.Equal(t, model.GoalCustom, got.Goal.Kind)
	assert.Equal(t, "skin health", got.Goal.Label)
	assert.Contains(t, got.Goal.Template.RequiredNutrients, "vitamin_c")
	assert.Contains(t, got.Goal.Template.RequiredNutrients, "vitamin_e")
	assert.Contains(t, got.Goal.Template.RequiredNutrients, "omega3")
}

func TestAddGoal_SecondGoalPromptsPrioritization(t *testing.T) {
	store := newMemGoalStore()
	svc := newTestGoalService(store)

	_, err := svc.AddGoal(1, "budget friendly meals", model.PriorityHigh)
	require.NoError(t, err)
	got, err := svc.AddGoal(1, "build muscle", model.PriorityCritical)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalGoals)
	assert.Equal(t, 1, got.Goal.Position)
	assert.Contains(t, got.Acknowledgment, "Eating on a budget and Building muscle")
	assert.Contains(t, got.Acknowledgment, "which matters most")
}

func TestAddGoal_InvalidPriorityDefaultsToMedium(t *testing.T) {
	store := newMemGoalStore()
	svc := newTestGoalService(store)

	got, err := svc.AddGoal(1, "gut health", 0)

	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, got.Goal.Priority)
}

func TestAddGoal_UnknownUser(t *testing.T) {
	svc := newTestGoalService(newMemGoalStore())

	_, err := svc.AddGoal(42, "budget friendly meals", model.PriorityMedium)

	assert.ErrorIs(t, err, util.ErrProfileNotFound)
}

func TestUpdatePriorities_SkipsUnknownRefsAndBadValues(t *testing.T) {
	store := newMemGoalStore()
	svc := newTestGoalService(store)

	added, err := svc.AddGoal(1, "budget friendly meals", model.PriorityMedium)
	require.NoError(t, err)

	applied, err := svc.UpdatePriorities(1, []PriorityUpdate{
		{GoalRef: added.Goal.Ref, Priority: model.PriorityCritical},
		{GoalRef: "no-such-ref", Priority: model.PriorityLow},
		{GoalRef: added.Goal.Ref, Priority: 9},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	goals, err := svc.UserGoals(1)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, model.PriorityCritical, goals[0].Priority)
}

func TestMergedConstraints_BudgetAndMuscle(t *testing.T) {
	store := newMemGoalStore()
	svc := newTestGoalService(store)

	_, err := svc.AddGoal(1, "budget friendly meals", model.PriorityHigh)
	require.NoError(t, err)
	_, err = svc.AddGoal(1, "build muscle", model.PriorityCritical)
	require.NoError(t, err)

	merged, err := svc.MergedConstraints(1)

	require.NoError(t, err)
	require.NotNil(t, merged.MaxCostPerMeal)
	require.NotNil(t, merged.ProteinG)
	assert.Equal(t, 4.00, *merged.MaxCostPerMeal)
	assert.Equal(t, 140, *merged.ProteinG)
	assert.Contains(t, merged.EmphasizeFoods, "beans")
	assert.Contains(t, merged.EmphasizeFoods, "greek yogurt")
}

func TestMergedConstraints_NoGoals(t *testing.T) {
	svc := newTestGoalService(newMemGoalStore())

	merged, err := svc.MergedConstraints(1)

	require.NoError(t, err)
	assert.Nil(t, merged.CalorieTarget)
	assert.Empty(t, merged.EmphasizeFoods)
}

func TestPlannerContext_ReflectsPriorityOrder(t *testing.T) {
	store := newMemGoalStore()
	svc := newTestGoalService(store)

	_, err := svc.AddGoal(1, "budget friendly meals", model.PriorityMedium)
	require.NoError(t, err)
	_, err = svc.AddGoal(1, "heart health", model.PriorityCritical)
	require.NoError(t, err)

	ctx, err := svc.PlannerContext(1)

	require.NoError(t, err)
	assert.Contains(t, ctx, "1. Heart health (critical priority)")
	assert.Contains(t, ctx, "2. Eating on a budget (medium priority)")
	assert.Contains(t, ctx, "break ties")
}

func TestPlannerContext_EmptyProfile(t *testing.T) {
	svc := newTestGoalService(newMemGoalStore())

	ctx, err := svc.PlannerContext(1)

	require.NoError(t, err)
	assert.Empty(t, ctx)
}
