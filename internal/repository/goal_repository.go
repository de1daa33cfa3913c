package repository

import (
	"nutricoach_backend/internal/model"

	"gorm.io/gorm"
)

// GoalRepository is the production ProfileStore: it persists each user's
// ordered goal list. Ordering by position preserves insertion order, which
// the merge tie-break depends on.
type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) FindByUserID(userID uint) ([]model.UserGoal, error) {
	var goals []model.UserGoal
	err := r.DB.Where("user_id = ?", userID).Order("position ASC").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByRef(userID uint, ref string) (*model.UserGoal, error) {
	var goal model.UserGoal
	err := r.DB.Where("user_id = ? AND ref = ?", userID, ref).First(&goal).Error
	return &goal, err
}

func (r *GoalRepository) Create(goal *model.UserGoal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) Update(goal *model.UserGoal) error {
	return r.DB.Save(goal).Error
}

func (r *GoalRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserGoal{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
