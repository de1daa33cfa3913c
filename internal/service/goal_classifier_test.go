package service

import (
	"testing"

	"nutricoach_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify_CatalogMatches(t *testing.T) {
	classifier := NewCatalogClassifier(NewGoalCatalog())

	tests := []struct {
		name   string
		text   string
		goalID model.GoalID
		label  string
	}{
		{"alias inside sentence", "budget friendly meals", model.GoalBudget, "Eating on a budget"},
		{"exact name case-insensitive", "Weight Loss", model.GoalWeightLoss, "Weight loss"},
		{"alias phrase", "I want to build muscle", model.GoalMuscleGain, "Building muscle"},
		{"name contains input", "budget", model.GoalBudget, "Eating on a budget"},
		{"symptom alias", "always tired after lunch", model.GoalEnergy, "More energy"},
		{"quick meals alias", "no time to cook", model.GoalQuickMeals, "Quick meals"},
		{"plant alias", "go vegetarian", model.GoalPlantForward, "Plant-forward eating"},
		{"heart alias", "lower my blood pressure", model.GoalHeartHealth, "Heart health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text)
			assert.Equal(t, model.GoalStandard, got.Kind)
			assert.Equal(t, tt.goalID, got.GoalID)
			assert.Equal(t, tt.label, got.Label)
		})
	}
}

func TestClassify_CustomFallback(t *testing.T) {
	classifier := NewCatalogClassifier(NewGoalCatalog())

	tests := []struct {
		name  string
		text  string
		label string
	}{
		{"unrecognized phrase", "skin health", "skin health"},
		{"whitespace trimmed", "  glowing skin  ", "glowing skin"},
		{"empty input", "", ""},
		{"blank input", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text)
			assert.Equal(t, model.GoalCustom, got.Kind)
			assert.Equal(t, model.GoalID(""), got.GoalID)
			assert.Equal(t, tt.label, got.Label)
		})
	}
}

func TestClassify_FirstCatalogMatchWins(t *testing.T) {
	classifier := NewCatalogClassifier(NewGoalCatalog())

	// "cheap" aliases the budget goal and "protein" the muscle goal; budget
	// sits earlier in the catalog so it must win.
	got := classifier.Classify("cheap protein ideas")

	assert.Equal(t, model.GoalStandard, got.Kind)
	assert.Equal(t, model.GoalBudget, got.GoalID)
}

func TestClassify_SameTextSameResult(t *testing.T) {
	classifier := NewCatalogClassifier(NewGoalCatalog())

	first := classifier.Classify("help me slim down")
	second := classifier.Classify("help me slim down")

	assert.Equal(t, first, second)
	assert.Equal(t, model.GoalWeightLoss, first.GoalID)
}
