package implementation

import (
	"context"

	"project-intake-be/internal/entity"
	"project-intake-be/internal/repository/contract"
	"project-intake-be/pkg/intake/ratelimit"

	"gorm.io/gorm"
)

// DailyUsageStore adapts the gorm-backed repository to the rate limiter's
// storage port.
type DailyUsageStore struct {
	repo contract.DailyUsageRepository
}

var _ ratelimit.UsageStore = &DailyUsageStore{}

func NewDailyUsageStore(db *gorm.DB) *DailyUsageStore {
	return &DailyUsageStore{repo: NewDailyUsageRepository(db)}
}

func (s *DailyUsageStore) Get(ctx context.Context) (*ratelimit.Record, error) {
	// The limiter compares the stored date against today itself, so the
	// store just hands back the most recent row.
	usage, err := s.repo.FindLatest(ctx)
	if err != nil || usage == nil {
		return nil, err
	}
	return &ratelimit.Record{Date: usage.Date, Count: usage.Count}, nil
}

func (s *DailyUsageStore) Set(ctx context.Context, rec ratelimit.Record) error {
	return s.repo.Upsert(ctx, &entity.DailyUsage{Date: rec.Date, Count: rec.Count})
}
