package service

import (
	"context"
	"strings"

	"github.com/go-redis/redis/v8"
)

// customGoalTrendKey is the sorted set counting unrecognized custom-goal
// phrases across all users. Phrases that recur are candidates for promotion
// into the proxy table or the catalog.
const customGoalTrendKey = "analytics:custom_goal_trends"

// AnalyticsService records custom-goal phrases for trend analysis. It is the
// concrete AnalyticsRecorder behind the resolver's fire-and-forget hook.
type AnalyticsService struct {
	rdb *redis.Client
}

func NewAnalyticsService(rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{rdb: rdb}
}

func (s *AnalyticsService) RecordCustomGoal(ctx context.Context, phrase string) error {
	norm := strings.ToLower(strings.TrimSpace(phrase))
	if norm == "" {
		return nil
	}
	return s.rdb.ZIncrBy(ctx, customGoalTrendKey, 1, norm).Err()
}

type TrendingGoal struct {
	Phrase string `json:"phrase"`
	Count  int64  `json:"count"`
}

// TrendingCustomGoals returns the most frequently stated unrecognized
// phrases, highest count first.
func (s *AnalyticsService) TrendingCustomGoals(ctx context.Context, limit int64) ([]TrendingGoal, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.rdb.ZRevRangeWithScores(ctx, customGoalTrendKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	trends := make([]TrendingGoal, 0, len(entries))
	for _, e := range entries {
		phrase, ok := e.Member.(string)
		if !ok {
			continue
		}
		trends = append(trends, TrendingGoal{Phrase: phrase, Count: int64(e.Score)})
	}
	return trends, nil
}
