package service

import (
	"testing"

	"nutricoach_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeGoal(label string, priority model.GoalPriority, position int, tpl model.ConstraintTemplate) model.UserGoal {
	return model.UserGoal{
		Ref:      label,
		Label:    label,
		Priority: priority,
		Position: position,
		Template: tpl,
	}
}

func TestMerge_EmptyGoalListYieldsUnsetFields(t *testing.T) {
	merged := NewConstraintMerger().Merge(nil)

	assert.Nil(t, merged.MaxCostPerMeal)
	assert.Nil(t, merged.MaxSodiumMg)
	assert.Nil(t, merged.MaxPrepTimeMin)
	assert.Nil(t, merged.MaxAddedSugarG)
	assert.Nil(t, merged.CalorieTarget)
	assert.Nil(t, merged.ProteinG)
	assert.Nil(t, merged.FiberG)
	assert.Nil(t, merged.PlantProteinPct)
	assert.False(t, merged.PrefersQuickMeals)
	assert.False(t, merged.PrefersWholeGrains)
	assert.Empty(t, merged.EmphasizeFoods)
	assert.Empty(t, merged.AvoidFoods)
	assert.Empty(t, merged.RequiredNutrients)
}

func TestMerge_SingleGoalPassesThroughVerbatim(t *testing.T) {
	tpl := model.ConstraintTemplate{
		MaxCostPerMeal:    model.FloatPtr(3.50),
		CalorieTarget:     model.IntPtr(2100),
		PrefersQuickMeals: true,
		EmphasizeFoods:    []string{"lentils", "oats"},
	}
	goal := makeGoal("solo", model.PriorityLow, 0, tpl)

	merged := NewConstraintMerger().Merge([]model.UserGoal{goal})

	assert.Equal(t, model.MergedConstraintSet(tpl.Clone()), merged)
}

func TestMerge_CeilingsTakeMinimumRegardlessOfPriority(t *testing.T) {
	// The critical-priority goal wants a looser sodium ceiling; the
	// low-priority goal's stricter cap must still win.
	strict := makeGoal("strict", model.PriorityLow, 0, model.ConstraintTemplate{
		MaxSodiumMg:    model.IntPtr(1500),
		MaxCostPerMeal: model.FloatPtr(6.00),
	})
	loose := makeGoal("loose", model.PriorityCritical, 1, model.ConstraintTemplate{
		MaxSodiumMg:    model.IntPtr(2300),
		MaxCostPerMeal: model.FloatPtr(4.00),
	})

	merged := NewConstraintMerger().Merge([]model.UserGoal{strict, loose})

	require.NotNil(t, merged.MaxSodiumMg)
	require.NotNil(t, merged.MaxCostPerMeal)
	assert.Equal(t, 1500, *merged.MaxSodiumMg)
	assert.Equal(t, 4.00, *merged.MaxCostPerMeal)
}

func TestMerge_CeilingNeverExceedsAnyContributor(t *testing.T) {
	goals := []model.UserGoal{
		makeGoal("a", model.PriorityMedium, 0, model.ConstraintTemplate{MaxPrepTimeMin: model.IntPtr(30)}),
		makeGoal("b", model.PriorityHigh, 1, model.ConstraintTemplate{MaxPrepTimeMin: model.IntPtr(20)}),
		makeGoal("c", model.PriorityLow, 2, model.ConstraintTemplate{MaxPrepTimeMin: model.IntPtr(45)}),
	}

	merged := NewConstraintMerger().Merge(goals)

	require.NotNil(t, merged.MaxPrepTimeMin)
	for _, g := range goals {
		assert.LessOrEqual(t, *merged.MaxPrepTimeMin, *g.Template.MaxPrepTimeMin)
	}
}

func TestMerge_TargetBlendingFavorsHigherPriority(t *testing.T) {
	// Highest priority folds first, then the medium goal pulls with w=0.5:
	// 140*(1-0.5) + 60*0.5 = 100.
	muscle := makeGoal("muscle", model.PriorityCritical, 0, model.ConstraintTemplate{ProteinG: model.IntPtr(140)})
	light := makeGoal("light", model.PriorityMedium, 1, model.ConstraintTemplate{ProteinG: model.IntPtr(60)})

	merged := NewConstraintMerger().Merge([]model.UserGoal{muscle, light})

	require.NotNil(t, merged.ProteinG)
	assert.Equal(t, 100, *merged.ProteinG)
}

func TestMerge_BudgetAndMuscleGainExample(t *testing.T) {
	budget := makeGoal("budget", model.PriorityHigh, 0, model.ConstraintTemplate{
		MaxCostPerMeal: model.FloatPtr(4.00),
	})
	muscle := makeGoal("muscle", model.PriorityCritical, 1, model.ConstraintTemplate{
		ProteinG: model.IntPtr(140),
	})

	merged := NewConstraintMerger().Merge([]model.UserGoal{budget, muscle})

	require.NotNil(t, merged.MaxCostPerMeal)
	require.NotNil(t, merged.ProteinG)
	assert.Equal(t, 4.00, *merged.MaxCostPerMeal)
	assert.Equal(t, 140, *merged.ProteinG)
}

func TestMerge_EqualPriorityTieBreaksByInsertionOrder(t *testing.T) {
	// Both medium priority: the earlier-stated goal folds first, so
	// 2000*(1-0.5) + 1600*0.5 = 1800.
	first := makeGoal("first", model.PriorityMedium, 0, model.ConstraintTemplate{CalorieTarget: model.IntPtr(2000)})
	second := makeGoal("second", model.PriorityMedium, 1, model.ConstraintTemplate{CalorieTarget: model.IntPtr(1600)})

	merged := NewConstraintMerger().Merge([]model.UserGoal{first, second})

	require.NotNil(t, merged.CalorieTarget)
	assert.Equal(t, 1800, *merged.CalorieTarget)
}

func TestMerge_BooleanPreferencesOr(t *testing.T) {
	quick := makeGoal("quick", model.PriorityLow, 0, model.ConstraintTemplate{PrefersQuickMeals: true})
	other := makeGoal("other", model.PriorityCritical, 1, model.ConstraintTemplate{PrefersWholeGrains: true})

	merged := NewConstraintMerger().Merge([]model.UserGoal{quick, other})

	assert.True(t, merged.PrefersQuickMeals)
	assert.True(t, merged.PrefersWholeGrains)
}

func TestMerge_TagUnionIsSupersetOfEveryContributor(t *testing.T) {
	goals := []model.UserGoal{
		makeGoal("a", model.PriorityMedium, 0, model.ConstraintTemplate{
			EmphasizeFoods: []string{"yogurt", "oats"},
			AvoidFoods:     []string{"fried foods"},
		}),
		makeGoal("b", model.PriorityHigh, 1, model.ConstraintTemplate{
			EmphasizeFoods:    []string{"salmon", "oats"},
			AvoidFoods:        []string{"processed meat"},
			RequiredNutrients: []string{"omega3"},
		}),
	}

	merged := NewConstraintMerger().Merge(goals)

	for _, g := range goals {
		assert.Subset(t, merged.EmphasizeFoods, g.Template.EmphasizeFoods)
		assert.Subset(t, merged.AvoidFoods, g.Template.AvoidFoods)
		assert.Subset(t, merged.RequiredNutrients, g.Template.RequiredNutrients)
	}

	// De-duplicated: "oats" appears once.
	count := 0
	for _, f := range merged.EmphasizeFoods {
		if f == "oats" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMerge_Idempotent(t *testing.T) {
	goals := []model.UserGoal{
		makeGoal("a", model.PriorityHigh, 0, model.ConstraintTemplate{
			CalorieTarget:  model.IntPtr(1800),
			MaxCostPerMeal: model.FloatPtr(4.00),
			EmphasizeFoods: []string{"vegetables"},
		}),
		makeGoal("b", model.PriorityCritical, 1, model.ConstraintTemplate{
			CalorieTarget: model.IntPtr(2600),
			ProteinG:      model.IntPtr(140),
		}),
	}
	merger := NewConstraintMerger()

	assert.Equal(t, merger.Merge(goals), merger.Merge(goals))
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	tpl := model.ConstraintTemplate{CalorieTarget: model.IntPtr(2000), EmphasizeFoods: []string{"oats"}}
	goals := []model.UserGoal{
		makeGoal("a", model.PriorityMedium, 0, tpl),
		makeGoal("b", model.PriorityCritical, 1, model.ConstraintTemplate{CalorieTarget: model.IntPtr(1600)}),
	}

	NewConstraintMerger().Merge(goals)

	assert.Equal(t, 2000, *goals[0].Template.CalorieTarget)
	assert.Equal(t, model.PriorityMedium, goals[0].Priority)
	assert.Equal(t, []string{"oats"}, goals[0].Template.EmphasizeFoods)
}

func TestSortForMerge_StablePriorityDescending(t *testing.T) {
	goals := []model.UserGoal{
		makeGoal("medium-first", model.PriorityMedium, 0, model.ConstraintTemplate{}),
		makeGoal("critical", model.PriorityCritical, 1, model.ConstraintTemplate{}),
		makeGoal("medium-second", model.PriorityMedium, 2, model.ConstraintTemplate{}),
		makeGoal("low", model.PriorityLow, 3, model.ConstraintTemplate{}),
	}

	sorted := SortForMerge(goals)

	require.Len(t, sorted, 4)
	assert.Equal(t, "critical", sorted[0].Label)
	assert.Equal(t, "medium-first", sorted[1].Label)
	assert.Equal(t, "medium-second", sorted[2].Label)
	assert.Equal(t, "low", sorted[3].Label)

	// Input order untouched.
	assert.Equal(t, "medium-first", goals[0].Label)
}
