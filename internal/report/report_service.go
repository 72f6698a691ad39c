package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leavedesk/internal/authz"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	LeaveUsage(ctx context.Context, viewerID string, viewerRole authz.Role, year int) (LeaveUsageReport, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// LeaveUsage builds the usage report for a year. A manager sees only
// their direct reports; hr and admin see the whole organization. The
// report is cached briefly because it walks the whole leaves table.
func (s *service) LeaveUsage(ctx context.Context, viewerID string, viewerRole authz.Role, year int) (LeaveUsageReport, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	var managerID *string
	if viewerRole == authz.RoleManager {
		managerID = &viewerID
	}

	cacheKey := fmt.Sprintf("reports:leave-usage:%d:all", year)
	if managerID != nil {
		cacheKey = fmt.Sprintf("reports:leave-usage:%d:manager:%s", year, *managerID)
	}

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var report LeaveUsageReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return report, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.LeaveUsageByYear(ctx, year, managerID)
		if err != nil {
			return nil, err
		}
		breakdown, err := s.repo.StatusBreakdownByYear(ctx, year, managerID)
		if err != nil {
			return nil, err
		}

		report := LeaveUsageReport{Year: year, Rows: rows, StatusBreakdown: breakdown}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(report); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return report, nil
	})

	if err != nil {
		return LeaveUsageReport{}, err
	}

	return v.(LeaveUsageReport), nil
}
