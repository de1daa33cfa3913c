package service

import (
	"fmt"
	"strings"

	"nutricoach_backend/internal/model"
)

// ExplanationService renders conversational acknowledgments and
// human-readable summaries of merged constraints.
type ExplanationService struct{}

func NewExplanationService() *ExplanationService {
	return &ExplanationService{}
}

// Acknowledge confirms a newly added goal. With more than one active goal the
// message lists every goal and asks the user to state relative priority.
func (s *ExplanationService) Acknowledge(newGoal model.UserGoal, all []model.UserGoal) string {
	if len(all) <= 1 {
		return fmt.Sprintf("Got it! I've set %q as your nutrition goal. Your meal plans will reflect it from now on.", newGoal.Label)
	}

	names := make([]string, 0, len(all))
	for _, g := range all {
		names = append(names, g.Label)
	}

	return fmt.Sprintf(
		"Got it! You're now working toward %s. Since you have multiple goals, tell me which matters most and I'll prioritize your meal plans accordingly.",
		joinNames(names),
	)
}

// Summarize renders one short line per populated field group, omitting groups
// that are entirely unset. Food lists are capped at three entries.
func (s *ExplanationService) Summarize(m model.MergedConstraintSet) []string {
	var lines []string

	if m.CalorieTarget != nil {
		lines = append(lines, fmt.Sprintf("Calorie target: about %d kcal per day", *m.CalorieTarget))
	}
	if m.ProteinG != nil {
		lines = append(lines, fmt.Sprintf("Protein target: %dg per day", *m.ProteinG))
	}
	if m.MaxCostPerMeal != nil {
		lines = append(lines, fmt.Sprintf("Cost ceiling: $%.2f per meal", *m.MaxCostPerMeal))
	}
	if m.MaxPrepTimeMin != nil {
		lines = append(lines, fmt.Sprintf("Prep time ceiling: %d minutes per meal", *m.MaxPrepTimeMin))
	}
	if len(m.EmphasizeFoods) > 0 {
		lines = append(lines, "Emphasizing: "+strings.Join(capTags(m.EmphasizeFoods, 3), ", "))
	}
	if len(m.AvoidFoods) > 0 {
		lines = append(lines, "Avoiding: "+strings.Join(capTags(m.AvoidFoods, 3), ", "))
	}

	return lines
}

// PlannerContext renders the free-text block handed verbatim to the
// meal-planning AI collaborator: priority-ordered goal descriptions, the
// merged-constraint summary, and a standing tie-break instruction when the
// user holds more than one goal. Zero goals yields an empty string.
func (s *ExplanationService) PlannerContext(goals []model.UserGoal, merged model.MergedConstraintSet) string {
	if len(goals) == 0 {
		return ""
	}

	sorted := SortForMerge(goals)

	var b strings.Builder
	b.WriteString("Active nutrition goals, highest priority first:\n")
	for i, g := range sorted {
		fmt.Fprintf(&b, "%d. %s (%s priority): %s\n", i+1, g.Label, g.Priority.Label(), g.Description)
	}

	if summary := s.Summarize(merged); len(summary) > 0 {
		b.WriteString("\nMerged meal constraints:\n")
		for _, line := range summary {
			b.WriteString("- " + line + "\n")
		}
	}

	if len(goals) > 1 {
		b.WriteString("\nWhen goals conflict, break ties in the priority order listed above and explain the trade-off transparently.\n")
	}

	return b.String()
}

// joinNames joins labels conversationally, Oxford comma for three or more.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func capTags(tags []string, max int) []string {
	if len(tags) <= max {
		return tags
	}
	return tags[:max]
}
