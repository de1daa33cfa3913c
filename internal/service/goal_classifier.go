package service

import (
	"strings"

	"nutricoach_backend/internal/model"
)

// ClassificationResult marks goal text as either a catalog goal or a custom
// one carrying the user's own label.
type ClassificationResult struct {
	Kind   model.GoalKind
	GoalID model.GoalID
	Label  string
}

// GoalClassifier decides whether free text aliases a catalog goal. It is a
// strategy interface so an embedding-based matcher can replace the substring
// heuristic without touching the merge pipeline.
type GoalClassifier interface {
	Classify(text string) ClassificationResult
}

// CatalogClassifier matches normalized text against catalog display names and
// alias phrases. Classification is total: anything unmatched comes back as a
// custom goal, never an error.
type CatalogClassifier struct {
	catalog *GoalCatalog
}

func NewCatalogClassifier(catalog *GoalCatalog) *CatalogClassifier {
	return &CatalogClassifier{catalog: catalog}
}

func (c *CatalogClassifier) Classify(text string) ClassificationResult {
	label := strings.TrimSpace(text)
	norm := strings.ToLower(label)

	custom := ClassificationResult{Kind: model.GoalCustom, Label: label}
	if norm == "" {
		return custom
	}

	// Catalog order is significant: first match wins.
	for _, def := range c.catalog.Definitions() {
		name := strings.ToLower(def.Name)
		if norm == name || strings.Contains(norm, name) || strings.Contains(name, norm) {
			return ClassificationResult{Kind: model.GoalStandard, GoalID: def.ID, Label: def.Name}
		}
		for _, alias := range def.Aliases {
			if strings.Contains(norm, alias) {
				return ClassificationResult{Kind: model.GoalStandard, GoalID: def.ID, Label: def.Name}
			}
		}
	}

	return custom
}
