package service

import (
	"math"
	"sort"

	"nutricoach_backend/internal/model"
	"nutricoach_backend/pkg/monitoring"
)

// ConstraintMerger folds an ordered goal list into one MergedConstraintSet.
// Merge is a pure function of its input: no state, safe for concurrent use.
type ConstraintMerger struct{}

func NewConstraintMerger() *ConstraintMerger {
	return &ConstraintMerger{}
}

// SortForMerge returns a copy of the goals sorted highest priority first.
// The sort is stable, so goals of equal priority keep their insertion order
// and earlier-stated goals are folded in first. The target-blending rule is
// order sensitive, so this exact ordering is part of the merge contract.
func SortForMerge(goals []model.UserGoal) []model.UserGoal {
	sorted := make([]model.UserGoal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

// Merge combines every goal's template under the per-field-kind rules:
// ceilings take the minimum regardless of priority, targets and percentage
// fields blend toward higher-priority goals, booleans OR, and tag sets union.
// An empty goal list yields a set with every field unset.
func (m *ConstraintMerger) Merge(goals []model.UserGoal) model.MergedConstraintSet {
	monitoring.ConstraintMerges.Inc()

	if len(goals) == 0 {
		return model.MergedConstraintSet{}
	}

	sorted := SortForMerge(goals)

	// A single goal passes through verbatim, no blending artifacts.
	if len(sorted) == 1 {
		return model.MergedConstraintSet(sorted[0].Template.Clone())
	}

	var acc model.ConstraintTemplate
	for _, g := range sorted {
		t := g.Template
		w := float64(g.Priority) / 4.0

		// Ceilings: the strictest bound always wins. A higher-priority goal
		// wanting a looser ceiling must never violate a lower-priority
		// goal's hard cap, so these are never priority-weighted.
		acc.MaxCostPerMeal = minFloatPtr(acc.MaxCostPerMeal, t.MaxCostPerMeal)
		acc.MaxSodiumMg = minIntPtr(acc.MaxSodiumMg, t.MaxSodiumMg)
		acc.MaxPrepTimeMin = minIntPtr(acc.MaxPrepTimeMin, t.MaxPrepTimeMin)
		acc.MaxAddedSugarG = minIntPtr(acc.MaxAddedSugarG, t.MaxAddedSugarG)

		// Targets: exponential blend weighted by the incoming goal's
		// priority. Processing order is highest-priority first, anchoring
		// the result to the most important goals.
		acc.CalorieTarget = blendIntPtr(acc.CalorieTarget, t.CalorieTarget, w)
		acc.ProteinG = blendIntPtr(acc.ProteinG, t.ProteinG, w)
		acc.FiberG = blendIntPtr(acc.FiberG, t.FiberG, w)
		acc.PlantProteinPct = blendFloatPtr(acc.PlantProteinPct, t.PlantProteinPct, w)

		// Booleans: once set, a preference stays set.
		acc.PrefersQuickMeals = acc.PrefersQuickMeals || t.PrefersQuickMeals
		acc.PrefersWholeGrains = acc.PrefersWholeGrains || t.PrefersWholeGrains

		// Tag sets: complete union, nothing is silently dropped.
		acc.EmphasizeFoods = unionTags(acc.EmphasizeFoods, t.EmphasizeFoods)
		acc.AvoidFoods = unionTags(acc.AvoidFoods, t.AvoidFoods)
		acc.RequiredNutrients = unionTags(acc.RequiredNutrients, t.RequiredNutrients)
	}

	return model.MergedConstraintSet(acc)
}

func minIntPtr(acc, v *int) *int {
	if v == nil {
		return acc
	}
	if acc == nil || *v < *acc {
		c := *v
		return &c
	}
	return acc
}

func minFloatPtr(acc, v *float64) *float64 {
	if v == nil {
		return acc
	}
	if acc == nil || *v < *acc {
		c := *v
		return &c
	}
	return acc
}

func blendIntPtr(acc, v *int, w float64) *int {
	if v == nil {
		return acc
	}
	if acc == nil {
		c := *v
		return &c
	}
	blended := int(math.Round(float64(*acc)*(1-w) + float64(*v)*w))
	return &blended
}

func blendFloatPtr(acc, v *float64, w float64) *float64 {
	if v == nil {
		return acc
	}
	if acc == nil {
		c := *v
		return &c
	}
	blended := *acc*(1-w) + *v*w
	return &blended
}

// unionTags appends tags not already present, preserving first-seen order.
func unionTags(acc, add []string) []string {
	if len(add) == 0 {
		return acc
	}
	seen := make(map[string]bool, len(acc))
	for _, tag := range acc {
		seen[tag] = true
	}
	out := acc
	for _, tag := range add {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
