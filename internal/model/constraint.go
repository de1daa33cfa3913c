package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ConstraintTemplate is a sparse set of meal-planning constraints. Numeric
// fields are pointers so that "no opinion" is distinguishable from an
// explicit zero. A nil pointer means the goal does not constrain that field.
type ConstraintTemplate struct {
	// Ceilings: upper bounds, lower is stricter.
	MaxCostPerMeal *float64 `json:"maxCostPerMeal,omitempty"`
	MaxSodiumMg    *int     `json:"maxSodiumMg,omitempty"`
	MaxPrepTimeMin *int     `json:"maxPrepTimeMin,omitempty"`
	MaxAddedSugarG *int     `json:"maxAddedSugarG,omitempty"`

	// Targets: desired daily levels, not hard bounds.
	CalorieTarget *int `json:"calorieTarget,omitempty"`
	ProteinG      *int `json:"proteinG,omitempty"`
	FiberG        *int `json:"fiberG,omitempty"`

	// Percentage-style: desired fraction of protein from plant sources.
	PlantProteinPct *float64 `json:"plantProteinPct,omitempty"`

	// Boolean preferences.
	PrefersQuickMeals  bool `json:"prefersQuickMeals,omitempty"`
	PrefersWholeGrains bool `json:"prefersWholeGrains,omitempty"`

	// Tag sets.
	EmphasizeFoods    []string `json:"emphasizeFoods,omitempty"`
	AvoidFoods        []string `json:"avoidFoods,omitempty"`
	RequiredNutrients []string `json:"requiredNutrients,omitempty"`
}

// MergedConstraintSet is the resolved profile produced by folding all of a
// user's goal templates together. Same shape as ConstraintTemplate, but every
// populated field is the post-merge value. It is derived state and is never
// stored.
type MergedConstraintSet ConstraintTemplate

// Clone returns a deep copy so a stored goal never aliases catalog data.
func (t ConstraintTemplate) Clone() ConstraintTemplate {
	c := t
	c.MaxCostPerMeal = cloneFloatPtr(t.MaxCostPerMeal)
	c.MaxSodiumMg = cloneIntPtr(t.MaxSodiumMg)
	c.MaxPrepTimeMin = cloneIntPtr(t.MaxPrepTimeMin)
	c.MaxAddedSugarG = cloneIntPtr(t.MaxAddedSugarG)
	c.CalorieTarget = cloneIntPtr(t.CalorieTarget)
	c.ProteinG = cloneIntPtr(t.ProteinG)
	c.FiberG = cloneIntPtr(t.FiberG)
	c.PlantProteinPct = cloneFloatPtr(t.PlantProteinPct)
	c.EmphasizeFoods = cloneStrings(t.EmphasizeFoods)
	c.AvoidFoods = cloneStrings(t.AvoidFoods)
	c.RequiredNutrients = cloneStrings(t.RequiredNutrients)
	return c
}

// Value serializes the template as JSON for storage in a json column.
func (t ConstraintTemplate) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan restores a template from its JSON column representation.
func (t *ConstraintTemplate) Scan(value interface{}) error {
	if value == nil {
		*t = ConstraintTemplate{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ConstraintTemplate", value)
	}
	return json.Unmarshal(raw, t)
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// IntPtr and FloatPtr build pointer fields for template literals.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
