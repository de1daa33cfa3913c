package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalKind string

const (
	GoalStandard GoalKind = "standard"
	GoalCustom   GoalKind = "custom"
)

// GoalPriority ranks a goal from Low (1) to Critical (4).
type GoalPriority int

const (
	PriorityLow      GoalPriority = 1
	PriorityMedium   GoalPriority = 2
	PriorityHigh     GoalPriority = 3
	PriorityCritical GoalPriority = 4
)

func (p GoalPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

func (p GoalPriority) Label() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

// UserGoal is one active goal on a user's profile. The template is a value
// copy taken at creation time, so later catalog edits never retroactively
// change existing goals. Position records insertion order within the user's
// list and is the tie-break key when priorities are equal.
// swagger:model UserGoal
type UserGoal struct {
	BaseModel
	Ref         string             `gorm:"size:36;uniqueIndex;not null" json:"ref"`
	UserID      uint               `gorm:"index;type:bigint unsigned" json:"-"`
	Kind        GoalKind           `gorm:"type:enum('standard','custom');default:'standard'" json:"kind"`
	GoalID      GoalID             `gorm:"size:50" json:"goalId,omitempty"`
	Label       string             `gorm:"size:255;not null" json:"label"`
	Description string             `gorm:"type:text" json:"description"`
	Priority    GoalPriority       `gorm:"default:2" json:"priority"`
	Position    int                `gorm:"index" json:"position"`
	Template    ConstraintTemplate `gorm:"type:json" json:"template"`
}

func (UserGoal) TableName() string {
	return "user_goals"
}

func (g *UserGoal) BeforeCreate(tx *gorm.DB) error {
	if g.Ref == "" {
		g.Ref = uuid.New().String()
	}
	if !g.Priority.Valid() {
		g.Priority = PriorityMedium
	}
	return nil
}
