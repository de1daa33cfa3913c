package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nutricoach_backend/internal/config"
	"nutricoach_backend/internal/util"
)

// MealPlanService asks the OpenAI-compatible planning collaborator for a
// meal-plan preview, feeding it the user's planner context verbatim. The
// goal engine stays pure; this service is request plumbing around it.
type MealPlanService struct {
	cfg    config.AIConfig
	goals  *GoalService
	client *http.Client
}

func NewMealPlanService(cfg config.AIConfig, goals *GoalService) *MealPlanService {
	return &MealPlanService{
		cfg:   cfg,
		goals: goals,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// UpdateConfig swaps in reloaded AI settings (config hot-reload).
func (s *MealPlanService) UpdateConfig(cfg config.AIConfig) {
	s.cfg = cfg
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// PreviewPlan returns a one-day meal suggestion honoring the user's merged
// constraints. Requires at least one active goal.
func (s *MealPlanService) PreviewPlan(ctx context.Context, userID uint) (string, error) {
	plannerContext, err := s.goals.PlannerContext(userID)
	if err != nil {
		return "", err
	}
	if plannerContext == "" {
		return "", util.ErrNoActiveGoals
	}

	messages := []chatMessage{
		{
			Role: "system",
			Content: "You are a meal-planning assistant for a nutrition coaching service. " +
				"Plan meals that satisfy the constraints below. Hard ceilings must never be exceeded.\n\n" +
				plannerContext,
		},
		{
			Role:    "user",
			Content: "Suggest breakfast, lunch, and dinner for tomorrow. Keep each suggestion to two sentences.",
		},
	}

	reqBody, err := json.Marshal(map[string]interface{}{
		"model":    s.cfg.Model,
		"messages": messages,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("AI API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
