package service

import (
	"errors"

	"nutricoach_backend/internal/model"
	"nutricoach_backend/internal/util"
	"nutricoach_backend/pkg/logger"
	"nutricoach_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GoalStore is the persistence contract for a user's ordered goal list.
// Implemented by repository.GoalRepository; tests substitute in-memory fakes.
type GoalStore interface {
	FindByUserID(userID uint) ([]model.UserGoal, error)
	Create(goal *model.UserGoal) error
	Update(goal *model.UserGoal) error
}

// UserStore is the slice of the user repository the goal engine needs.
type UserStore interface {
	FindByID(id uint) (*model.User, error)
}

// GoalService orchestrates the goal pipeline: classify, resolve, store,
// merge, explain.
type GoalService struct {
	Users      UserStore
	Goals      GoalStore
	Catalog    *GoalCatalog
	Classifier GoalClassifier
	Resolver   GoalResolver
	Merger     *ConstraintMerger
	Explainer  *ExplanationService
}

func NewGoalService(
	users UserStore,
	goals GoalStore,
	catalog *GoalCatalog,
	classifier GoalClassifier,
	resolver GoalResolver,
) *GoalService {
	return &GoalService{
		Users:      users,
		Goals:      goals,
		Catalog:    catalog,
		Classifier: classifier,
		Resolver:   resolver,
		Merger:     NewConstraintMerger(),
		Explainer:  NewExplanationService(),
	}
}

// AddGoalResult is what the conversational layer needs to reply to the user.
type AddGoalResult struct {
	Goal           *model.UserGoal `json:"goal"`
	Acknowledgment string          `json:"acknowledgment"`
	TotalGoals     int             `json:"totalGoals"`
}

// PriorityUpdate re-ranks one goal, addressed by its external ref.
type PriorityUpdate struct {
	GoalRef  string             `json:"goalRef" binding:"required"`
	Priority model.GoalPriority `json:"priority" binding:"required,min=1,max=4"`
}

// AddGoal classifies the stated goal text, resolves its constraint template,
// appends it to the user's goal list, and returns a conversational
// acknowledgment.
func (s *GoalService) AddGoal(userID uint, text string, priority model.GoalPriority) (*AddGoalResult, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	if !priority.Valid() {
		priority = model.PriorityMedium
	}

	existing, err := s.Goals.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	result := s.Classifier.Classify(text)

	goal := &model.UserGoal{
		UserID:   userID,
		Kind:     result.Kind,
		Priority: priority,
		Position: len(existing),
	}

	switch result.Kind {
	case model.GoalStandard:
		def, ok := s.Catalog.Lookup(result.GoalID)
		if !ok {
			// Classifier and catalog disagree only if the tables are
			// inconsistent; degrade to custom handling.
			goal.Kind = model.GoalCustom
			goal.Label = result.Label
			res := s.Resolver.Resolve(result.Label)
			goal.Description = res.Description
			goal.Template = res.Template
			break
		}
		goal.GoalID = def.ID
		goal.Label = def.Name
		goal.Description = def.Description
		goal.Template = def.Template.Clone()
	case model.GoalCustom:
		res := s.Resolver.Resolve(result.Label)
		goal.Label = result.Label
		goal.Description = res.Description
		goal.Template = res.Template
	}

	if err := s.Goals.Create(goal); err != nil {
		return nil, err
	}
	monitoring.GoalsAdded.WithLabelValues(string(goal.Kind)).Inc()

	all := append(existing, *goal)
	return &AddGoalResult{
		Goal:           goal,
		Acknowledgment: s.Explainer.Acknowledge(*goal, all),
		TotalGoals:     len(all),
	}, nil
}

// UpdatePriorities applies a batch of priority changes. Updates referencing
// unknown goals or carrying out-of-range priorities are skipped, the rest
// still apply; re-prioritization is a low-stakes, retriable action.
func (s *GoalService) UpdatePriorities(userID uint, updates []PriorityUpdate) (int, error) {
	if err := s.requireUser(userID); err != nil {
		return 0, err
	}

	goals, err := s.Goals.FindByUserID(userID)
	if err != nil {
		return 0, err
	}

	byRef := make(map[string]*model.UserGoal, len(goals))
	for i := range goals {
		byRef[goals[i].Ref] = &goals[i]
	}

	applied := 0
	for _, u := range updates {
		goal, ok := byRef[u.GoalRef]
		if !ok || !u.Priority.Valid() {
			if logger.Log != nil {
				logger.Log.Debug("skipping priority update",
					zap.String("goalRef", u.GoalRef), zap.Int("priority", int(u.Priority)))
			}
			continue
		}
		goal.Priority = u.Priority
		if err := s.Goals.Update(goal); err != nil {
			return applied, err
		}
		applied++
	}

	return applied, nil
}

// UserGoals returns the user's goals in insertion order.
func (s *GoalService) UserGoals(userID uint) ([]model.UserGoal, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.Goals.FindByUserID(userID)
}

// MergedConstraints recomputes the merged constraint set from the current
// goal list. Callers must treat the result as a plain value; goals may change
// between calls.
func (s *GoalService) MergedConstraints(userID uint) (model.MergedConstraintSet, error) {
	if err := s.requireUser(userID); err != nil {
		return model.MergedConstraintSet{}, err
	}

	goals, err := s.Goals.FindByUserID(userID)
	if err != nil {
		return model.MergedConstraintSet{}, err
	}

	return s.Merger.Merge(goals), nil
}

// PlannerContext renders the prompt block for the meal-planning collaborator.
func (s *GoalService) PlannerContext(userID uint) (string, error) {
	if err := s.requireUser(userID); err != nil {
		return "", err
	}

	goals, err := s.Goals.FindByUserID(userID)
	if err != nil {
		return "", err
	}

	return s.Explainer.PlannerContext(goals, s.Merger.Merge(goals)), nil
}

func (s *GoalService) requireUser(userID uint) error {
	if _, err := s.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProfileNotFound
		}
		return err
	}
	return nil
}
