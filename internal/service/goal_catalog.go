package service

import (
	"nutricoach_backend/internal/model"
)

// GoalCatalog holds the static goal registry and the custom-goal proxy table.
// Both are built once at startup and never mutated, so concurrent reads need
// no locking. Services receive the catalog as a dependency, which lets tests
// substitute a smaller one.
type GoalCatalog struct {
	definitions []model.GoalDefinition
	proxies     []model.CustomGoalProxy
	byID        map[model.GoalID]int
}

func NewGoalCatalog() *GoalCatalog {
	return newCatalog(defaultGoalDefinitions(), defaultCustomGoalProxies())
}

// NewGoalCatalogWith builds a catalog from caller-supplied tables.
func NewGoalCatalogWith(defs []model.GoalDefinition, proxies []model.CustomGoalProxy) *GoalCatalog {
	return newCatalog(defs, proxies)
}

func newCatalog(defs []model.GoalDefinition, proxies []model.CustomGoalProxy) *GoalCatalog {
	c := &GoalCatalog{
		definitions: defs,
		proxies:     proxies,
		byID:        make(map[model.GoalID]int, len(defs)),
	}
	for i, d := range defs {
		c.byID[d.ID] = i
	}
	return c
}

// Definitions returns catalog entries in their fixed insertion order. The
// classifier depends on this order being stable: first match wins.
func (c *GoalCatalog) Definitions() []model.GoalDefinition {
	return c.definitions
}

func (c *GoalCatalog) Proxies() []model.CustomGoalProxy {
	return c.proxies
}

func (c *GoalCatalog) Lookup(id model.GoalID) (model.GoalDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.GoalDefinition{}, false
	}
	return c.definitions[i], true
}

func defaultGoalDefinitions() []model.GoalDefinition {
	return []model.GoalDefinition{
		{
			ID:          model.GoalBudget,
			Name:        "Eating on a budget",
			Description: "Keep meals affordable without sacrificing nutrition",
			Aliases:     []string{"budget", "cheap", "affordable", "save money", "inexpensive", "low cost"},
			Template: model.ConstraintTemplate{
				MaxCostPerMeal:     model.FloatPtr(4.00),
				PrefersWholeGrains: true,
				EmphasizeFoods:     []string{"beans", "lentils", "rice", "eggs", "frozen vegetables", "canned fish"},
			},
		},
		{
			ID:          model.GoalWeightLoss,
			Name:        "Weight loss",
			Description: "Lose weight steadily with filling, lower-calorie meals",
			Aliases:     []string{"lose weight", "weight loss", "slim down", "fat loss", "lean out", "cutting"},
			Template: model.ConstraintTemplate{
				CalorieTarget:  model.IntPtr(1800),
				FiberG:         model.IntPtr(30),
				MaxAddedSugarG: model.IntPtr(25),
				EmphasizeFoods: []string{"vegetables", "lean protein", "leafy greens"},
				AvoidFoods:     []string{"fried foods", "sugary drinks"},
			},
		},
		{
			ID:          model.GoalMuscleGain,
			Name:        "Building muscle",
			Description: "Support muscle growth with high protein and enough calories",
			Aliases:     []string{"muscle", "build muscle", "bulk", "gain mass", "get stronger", "protein"},
			Template: model.ConstraintTemplate{
				CalorieTarget:  model.IntPtr(2600),
				ProteinG:       model.IntPtr(140),
				EmphasizeFoods: []string{"chicken breast", "greek yogurt", "eggs", "salmon", "cottage cheese"},
			},
		},
		{
			ID:          model.GoalGutHealth,
			Name:        "Gut health",
			Description: "Improve digestion with fiber and fermented foods",
			Aliases:     []string{"gut", "digestion", "digestive", "microbiome", "bloating"},
			Template: model.ConstraintTemplate{
				FiberG:             model.IntPtr(35),
				PrefersWholeGrains: true,
				EmphasizeFoods:     []string{"yogurt", "kefir", "sauerkraut", "kimchi", "oats"},
				AvoidFoods:         []string{"artificial sweeteners"},
				RequiredNutrients:  []string{"probiotics", "prebiotic_fiber"},
			},
		},
		{
			ID:          model.GoalEnergy,
			Name:        "More energy",
			Description: "Steady energy through the day from balanced meals",
			Aliases:     []string{"energy", "tired", "fatigue", "sluggish", "more alert"},
			Template: model.ConstraintTemplate{
				MaxAddedSugarG:     model.IntPtr(30),
				PrefersWholeGrains: true,
				EmphasizeFoods:     []string{"oats", "sweet potatoes", "nuts", "bananas"},
				AvoidFoods:         []string{"refined sugar"},
				RequiredNutrients:  []string{"iron", "vitamin_b12"},
			},
		},
		{
			ID:          model.GoalHeartHealth,
			Name:        "Heart health",
			Description: "Protect cardiovascular health with low sodium and healthy fats",
			Aliases:     []string{"heart", "cardiovascular", "blood pressure", "cholesterol"},
			Template: model.ConstraintTemplate{
				MaxSodiumMg:       model.IntPtr(1500),
				EmphasizeFoods:    []string{"salmon", "oats", "olive oil", "leafy greens", "walnuts"},
				AvoidFoods:        []string{"processed meat", "trans fats"},
				RequiredNutrients: []string{"omega3"},
			},
		},
		{
			ID:          model.GoalQuickMeals,
			Name:        "Quick meals",
			Description: "Meals that come together fast on busy days",
			Aliases:     []string{"quick", "fast meals", "busy", "no time", "easy meals", "15 minutes"},
			Template: model.ConstraintTemplate{
				MaxPrepTimeMin:    model.IntPtr(20),
				PrefersQuickMeals: true,
			},
		},
		{
			ID:          model.GoalPlantForward,
			Name:        "Plant-forward eating",
			Description: "Shift toward plants as the center of the plate",
			Aliases:     []string{"plant", "vegetarian", "vegan", "plant based", "meatless"},
			Template: model.ConstraintTemplate{
				PlantProteinPct:    model.FloatPtr(0.75),
				PrefersWholeGrains: true,
				EmphasizeFoods:     []string{"legumes", "tofu", "tempeh", "quinoa"},
			},
		},
	}
}

func defaultCustomGoalProxies() []model.CustomGoalProxy {
	return []model.CustomGoalProxy{
		{
			Phrase:      "skin health",
			Description: "Support skin with antioxidants and healthy fats",
			Template: model.ConstraintTemplate{
				EmphasizeFoods:    []string{"berries", "fatty fish", "nuts", "avocado"},
				RequiredNutrients: []string{"vitamin_c", "vitamin_e", "omega3"},
			},
		},
		{
			Phrase:      "sleep",
			Description: "Eat in a way that supports restful sleep",
			Template: model.ConstraintTemplate{
				EmphasizeFoods:    []string{"tart cherries", "kiwi", "almonds"},
				AvoidFoods:        []string{"caffeine", "alcohol"},
				RequiredNutrients: []string{"magnesium"},
			},
		},
		{
			Phrase:      "brain health",
			Description: "Feed cognition with omega-3s and antioxidant-rich foods",
			Template: model.ConstraintTemplate{
				EmphasizeFoods:    []string{"fatty fish", "walnuts", "blueberries", "dark leafy greens"},
				RequiredNutrients: []string{"omega3", "vitamin_e"},
			},
		},
		{
			Phrase:      "immune support",
			Description: "Strengthen immune function through nutrient-dense foods",
			Template: model.ConstraintTemplate{
				EmphasizeFoods:    []string{"citrus", "garlic", "ginger", "yogurt"},
				RequiredNutrients: []string{"vitamin_c", "vitamin_d", "zinc"},
			},
		},
		{
			Phrase:      "bone health",
			Description: "Keep bones strong with calcium and vitamin D",
			Template: model.ConstraintTemplate{
				EmphasizeFoods:    []string{"dairy", "leafy greens", "sardines", "tofu"},
				RequiredNutrients: []string{"calcium", "vitamin_d"},
			},
		},
	}
}
