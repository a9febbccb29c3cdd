package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/repository"
	apperrors "github.com/Prajeshh-06/Smart-Civic-Reporter/pkg/util"
)

// Analytics aggregates the report collection into grouped counts.
type Analytics struct {
	TotalReports int            `json:"total_reports"`
	ByStatus     map[string]int `json:"by_status"`
	ByType       map[string]int `json:"by_type"`
	ByWard       map[string]int `json:"by_ward"`
	TotalBoosts  int64          `json:"total_boosts"`
	AvgBoosts    float64        `json:"avg_boosts"`
}

// Aggregator accumulates analytics over a single streaming pass of the
// report set. It supports no filtering of its own; the only predicate is
// the optional ward filter applied upstream, mirroring the single-predicate
// listing constraint.
type Aggregator struct {
	result Analytics
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		result: Analytics{
			ByStatus: map[string]int{},
			ByType:   map[string]int{},
			ByWard:   map[string]int{},
		},
	}
}

// Add folds one report into the running counts.
func (a *Aggregator) Add(report *domain.Report) {
	a.result.TotalReports++
	a.result.ByStatus[string(report.Status)]++
	a.result.ByType[string(report.IssueType)]++
	a.result.ByWard[report.AssignedTo]++
	a.result.TotalBoosts += report.Boosts
}

// Result finalizes the aggregate. The boost average is rounded to two
// decimal places and is zero for an empty set.
func (a *Aggregator) Result() *Analytics {
	result := a.result
	if result.TotalReports > 0 {
		avg := float64(result.TotalBoosts) / float64(result.TotalReports)
		result.AvgBoosts = math.Round(avg*100) / 100
	}
	return &result
}

// AnalyticsService computes ward-level analytics, caching snapshots in
// redis under a short TTL. Cache failures degrade to a direct scan.
type AnalyticsService struct {
	reports repository.ReportRepository
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewAnalyticsService constructs the service. A nil cache client disables
// caching.
func NewAnalyticsService(reports repository.ReportRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{reports: reports, cache: cache, ttl: ttl, logger: logger}
}

// Aggregate streams the (optionally ward-filtered) report set once and
// returns the grouped counts. An empty ward means no filter.
func (s *AnalyticsService) Aggregate(ctx context.Context, ward string) (*Analytics, error) {
	key := cacheKey(ward)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	aggregator := NewAggregator()
	err := s.reports.Stream(ctx, ward, func(report *domain.Report) error {
		aggregator.Add(report)
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := aggregator.Result()
	s.toCache(ctx, key, result)
	return result, nil
}

func (s *AnalyticsService) fromCache(ctx context.Context, key string) *Analytics {
	if s.cache == nil || s.ttl <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil && s.logger != nil {
			s.logger.Debug("analytics cache read failed", zap.Error(err))
		}
		return nil
	}
	var cached Analytics
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil
	}
	return &cached
}

func (s *AnalyticsService) toCache(ctx context.Context, key string, result *Analytics) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil && s.logger != nil {
		s.logger.Debug("analytics cache write failed", zap.Error(err))
	}
}

func cacheKey(ward string) string {
	if ward == "" {
		return "analytics:all"
	}
	return "analytics:ward:" + ward
}
