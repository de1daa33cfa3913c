package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPhrases struct {
	ch chan string
}

func newRecordedPhrases() *recordedPhrases {
	return &recordedPhrases{ch: make(chan string, 8)}
}

func (r *recordedPhrases) RecordCustomGoal(_ context.Context, phrase string) error {
	r.ch <- phrase
	return nil
}

func (r *recordedPhrases) wait(t *testing.T) string {
	t.Helper()
	select {
	case phrase := <-r.ch:
		return phrase
	case <-time.After(time.Second):
		t.Fatal("no phrase recorded")
		return ""
	}
}

func TestResolve_KnownProxyAdoptsCuratedTemplate(t *testing.T) {
	resolver := NewProxyResolver(NewGoalCatalog(), nil)

	got := resolver.Resolve("skin health")

	assert.True(t, got.KnownProxy)
	assert.Equal(t, "Support skin with antioxidants and healthy fats", got.Description)
	assert.ElementsMatch(t, []string{"vitamin_c", "vitamin_e", "omega3"}, got.Template.RequiredNutrients)
	assert.Contains(t, got.Template.EmphasizeFoods, "berries")
}

func TestResolve_ProxyMatchIgnoresCaseAndWordOrder(t *testing.T) {
	resolver := NewProxyResolver(NewGoalCatalog(), nil)

	got := resolver.Resolve("Health Skin")

	assert.True(t, got.KnownProxy)
	assert.Contains(t, got.Template.RequiredNutrients, "vitamin_c")
}

func TestResolve_BelowThresholdFallsToKeywordFamily(t *testing.T) {
	// {glowing, skin} vs {skin, health} scores 1/3, under the proxy
	// threshold, so the beauty keyword family answers instead.
	resolver := NewProxyResolver(NewGoalCatalog(), nil)

	got := resolver.Resolve("glowing skin")

	assert.False(t, got.KnownProxy)
	assert.Contains(t, got.Template.RequiredNutrients, "omega3")
	assert.Contains(t, got.Template.EmphasizeFoods, "berries")
	assert.Equal(t, "emphasizing antioxidant and omega-3 rich foods", got.Description)
}

func TestResolve_KeywordFamiliesUnion(t *testing.T) {
	resolver := NewProxyResolver(NewGoalCatalog(), nil)

	got := resolver.Resolve("athletic performance and healthy skin")

	assert.False(t, got.KnownProxy)
	require.NotNil(t, got.Template.ProteinG)
	assert.Equal(t, 120, *got.Template.ProteinG)
	assert.Contains(t, got.Template.EmphasizeFoods, "lean protein")
	assert.Contains(t, got.Template.EmphasizeFoods, "vegetables")
	assert.Contains(t, got.Template.EmphasizeFoods, "berries")
	assert.Contains(t, got.Description, ";")
}

func TestResolve_UnrecognizedGoalGetsGenericDescription(t *testing.T) {
	resolver := NewProxyResolver(NewGoalCatalog(), nil)

	got := resolver.Resolve("  train for a marathon  ")

	assert.False(t, got.KnownProxy)
	assert.Equal(t, "Custom goal focused on train for a marathon", got.Description)
	assert.Nil(t, got.Template.ProteinG)
	assert.Empty(t, got.Template.EmphasizeFoods)
}

func TestResolve_UnmatchedPhraseReportedToAnalytics(t *testing.T) {
	rec := newRecordedPhrases()
	resolver := NewProxyResolver(NewGoalCatalog(), rec)

	resolver.Resolve("train for a marathon")

	assert.Equal(t, "train for a marathon", rec.wait(t))
}

func TestResolve_ProxyMatchNotReportedToAnalytics(t *testing.T) {
	rec := newRecordedPhrases()
	resolver := NewProxyResolver(NewGoalCatalog(), rec)

	resolver.Resolve("skin health")

	time.Sleep(50 * time.Millisecond)
	select {
	case phrase := <-rec.ch:
		t.Fatalf("proxy match reported to analytics: %q", phrase)
	default:
	}
}

func TestTokenSetSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "skin health", "skin health", 1.0},
		{"word order irrelevant", "health skin", "skin health", 1.0},
		{"half overlap", "better sleep", "sleep", 0.5},
		{"disjoint", "gut reset", "skin health", 0.0},
		{"empty side", "", "skin health", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tokenSetSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
