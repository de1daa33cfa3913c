package util

import "errors"

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrEmailRegistered = errors.New("email already registered")
	ErrNoActiveGoals   = errors.New("no active goals on profile")
	ErrInvalidPriority = errors.New("priority must be between 1 and 4")
)
