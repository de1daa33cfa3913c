package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nutricoach_backend/internal/model"
	"nutricoach_backend/pkg/logger"

	"go.uber.org/zap"
)

// proxyMatchThreshold is the minimum token-set similarity for a custom label
// to adopt a curated proxy template.
const proxyMatchThreshold = 0.7

// CustomGoalResolution is the best-effort template for a goal the catalog
// does not know.
type CustomGoalResolution struct {
	Template    model.ConstraintTemplate
	Description string
	KnownProxy  bool
}

// GoalResolver maps a custom goal label to a constraint template. Strategy
// interface for the same reason as GoalClassifier.
type GoalResolver interface {
	Resolve(label string) CustomGoalResolution
}

// AnalyticsRecorder receives phrases for goals nothing in the proxy table
// covered, so recurring ones can be promoted to the catalog later.
type AnalyticsRecorder interface {
	RecordCustomGoal(ctx context.Context, phrase string) error
}

// ProxyResolver resolves custom labels against the proxy table first, then
// falls back to keyword-family inference.
type ProxyResolver struct {
	catalog   *GoalCatalog
	analytics AnalyticsRecorder
}

func NewProxyResolver(catalog *GoalCatalog, analytics AnalyticsRecorder) *ProxyResolver {
	return &ProxyResolver{catalog: catalog, analytics: analytics}
}

func (r *ProxyResolver) Resolve(label string) CustomGoalResolution {
	norm := strings.ToLower(strings.TrimSpace(label))

	// Arg-max over all proxies meeting the threshold, so resolution does not
	// depend on table order.
	bestScore := 0.0
	bestIdx := -1
	for i, proxy := range r.catalog.Proxies() {
		score := tokenSetSimilarity(norm, strings.ToLower(proxy.Phrase))
		if score >= proxyMatchThreshold && score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		proxy := r.catalog.Proxies()[bestIdx]
		return CustomGoalResolution{
			Template:    proxy.Template.Clone(),
			Description: proxy.Description,
			KnownProxy:  true,
		}
	}

	// Not a known proxy: report the phrase for trend analysis. Fire and
	// forget, goal addition must never block on analytics.
	r.reportAsync(label)

	tpl, descriptions := applyKeywordFamilies(norm)
	if len(descriptions) > 0 {
		return CustomGoalResolution{
			Template:    tpl,
			Description: strings.Join(descriptions, "; "),
		}
	}

	// Unrecognized custom goals are still tracked and acknowledged, they
	// just carry no constraint weight.
	return CustomGoalResolution{
		Description: fmt.Sprintf("Custom goal focused on %s", strings.TrimSpace(label)),
	}
}

func (r *ProxyResolver) reportAsync(phrase string) {
	if r.analytics == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.analytics.RecordCustomGoal(ctx, phrase); err != nil && logger.Log != nil {
			logger.Log.Warn("custom goal analytics record failed",
				zap.String("phrase", phrase), zap.Error(err))
		}
	}()
}

// tokenSetSimilarity is the Jaccard coefficient of the two phrases' lowercase
// word sets.
func tokenSetSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}

type keywordFamily struct {
	keywords    []string
	description string
	apply       func(t *model.ConstraintTemplate)
}

// keywordFamilies are checked in order and their effects union: a label like
// "mental performance" picks up both the mood and performance templates.
func keywordFamilies() []keywordFamily {
	return []keywordFamily{
		{
			keywords:    []string{"health", "wellness", "immune", "recovery"},
			description: "emphasizing nutrient-dense whole foods",
			apply: func(t *model.ConstraintTemplate) {
				t.EmphasizeFoods = unionTags(t.EmphasizeFoods, []string{"vegetables", "fruits", "whole grains", "legumes"})
			},
		},
		{
			keywords:    []string{"performance", "athletic", "endurance", "strength"},
			description: "raising protein with lean sources and complex carbs",
			apply: func(t *model.ConstraintTemplate) {
				if t.ProteinG == nil {
					t.ProteinG = model.IntPtr(120)
				}
				t.EmphasizeFoods = unionTags(t.EmphasizeFoods, []string{"lean protein", "complex carbs"})
			},
		},
		{
			keywords:    []string{"skin", "hair", "beauty", "appearance"},
			description: "emphasizing antioxidant and omega-3 rich foods",
			apply: func(t *model.ConstraintTemplate) {
				t.EmphasizeFoods = unionTags(t.EmphasizeFoods, []string{"berries", "fatty fish", "nuts"})
				t.RequiredNutrients = unionTags(t.RequiredNutrients, []string{"vitamin_c", "vitamin_e", "omega3"})
			},
		},
		{
			keywords:    []string{"mood", "stress", "mental", "focus"},
			description: "emphasizing omega-3 fish and nuts, avoiding refined sugar and alcohol",
			apply: func(t *model.ConstraintTemplate) {
				t.EmphasizeFoods = unionTags(t.EmphasizeFoods, []string{"fatty fish", "walnuts"})
				t.AvoidFoods = unionTags(t.AvoidFoods, []string{"refined sugar", "alcohol"})
			},
		},
	}
}

func applyKeywordFamilies(norm string) (model.ConstraintTemplate, []string) {
	var tpl model.ConstraintTemplate
	var descriptions []string
	for _, family := range keywordFamilies() {
		for _, kw := range family.keywords {
			if strings.Contains(norm, kw) {
				family.apply(&tpl)
				descriptions = append(descriptions, family.description)
				break
			}
		}
	}
	return tpl, descriptions
}
