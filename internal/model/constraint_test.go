package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintTemplateClone_Independent(t *testing.T) {
	orig := ConstraintTemplate{
		MaxCostPerMeal: FloatPtr(4.00),
		ProteinG:       IntPtr(140),
		EmphasizeFoods: []string{"beans", "eggs"},
	}

	clone := orig.Clone()
	require.Equal(t, orig, clone)

	*clone.MaxCostPerMeal = 9.99
	*clone.ProteinG = 10
	clone.EmphasizeFoods[0] = "caviar"

	assert.Equal(t, 4.00, *orig.MaxCostPerMeal)
	assert.Equal(t, 140, *orig.ProteinG)
	assert.Equal(t, "beans", orig.EmphasizeFoods[0])
}

func TestGoalPriority(t *testing.T) {
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityCritical.Valid())
	assert.False(t, GoalPriority(0).Valid())
	assert.False(t, GoalPriority(5).Valid())
	assert.Equal(t, "critical", PriorityCritical.Label())
	assert.Equal(t, "unknown", GoalPriority(7).Label())
}
