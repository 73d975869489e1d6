package contract

import (
	"context"

	"project-intake-be/internal/entity"
)

type DailyUsageRepository interface {
	// Find returns the row for the given date, or nil when absent.
	Find(ctx context.Context, date string) (*entity.DailyUsage, error)
	// FindLatest returns the most recent row, or nil when the table is empty.
	FindLatest(ctx context.Context) (*entity.DailyUsage, error)
	Upsert(ctx context.Context, usage *entity.DailyUsage) error
}
