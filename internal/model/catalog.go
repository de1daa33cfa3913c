package model

// GoalID identifies a standard goal in the catalog.
type GoalID string

const (
	GoalBudget       GoalID = "budget"
	GoalWeightLoss   GoalID = "weight-loss"
	GoalMuscleGain   GoalID = "muscle-gain"
	GoalGutHealth    GoalID = "gut-health"
	GoalEnergy       GoalID = "energy"
	GoalHeartHealth  GoalID = "heart-health"
	GoalQuickMeals   GoalID = "quick-meals"
	GoalPlantForward GoalID = "plant-forward"
)

// GoalDefinition is an immutable catalog entry for a standard goal. Aliases
// are lowercase phrases used for substring matching against user text.
type GoalDefinition struct {
	ID          GoalID
	Name        string
	Description string
	Aliases     []string
	Template    ConstraintTemplate
}

// CustomGoalProxy maps a known informal goal phrase (one the catalog does not
// cover as a standard goal) to a curated constraint template.
type CustomGoalProxy struct {
	Phrase      string
	Description string
	Template    ConstraintTemplate
}
