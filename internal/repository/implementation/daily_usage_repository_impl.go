package implementation

import (
	"context"
	"errors"

	"project-intake-be/internal/entity"
	"project-intake-be/internal/model"
	"project-intake-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyUsageRepositoryImpl struct {
	db *gorm.DB
}

func NewDailyUsageRepository(db *gorm.DB) contract.DailyUsageRepository {
	return &DailyUsageRepositoryImpl{db: db}
}

func (r *DailyUsageRepositoryImpl) Find(ctx context.Context, date string) (*entity.DailyUsage, error) {
	var m model.DailyUsage
	if err := r.db.WithContext(ctx).Where("date = ?", date).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.DailyUsage{Date: m.Date, Count: m.Count}, nil
}

func (r *DailyUsageRepositoryImpl) FindLatest(ctx context.Context) (*entity.DailyUsage, error) {
	var m model.DailyUsage
	if err := r.db.WithContext(ctx).Order("date DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.DailyUsage{Date: m.Date, Count: m.Count}, nil
}

func (r *DailyUsageRepositoryImpl) Upsert(ctx context.Context, usage *entity.DailyUsage) error {
	m := model.DailyUsage{Date: usage.Date, Count: usage.Count}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"count", "updated_at"}),
	}).Create(&m).Error
}
