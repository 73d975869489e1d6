package model

import "time"

// DailyUsage is keyed by calendar date ("2006-01-02") so a new day
// naturally starts a fresh row.
type DailyUsage struct {
	Date      string    `gorm:"type:varchar(10);primaryKey"`
	Count     int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DailyUsage) TableName() string {
	return "intake_daily_usage"
}
