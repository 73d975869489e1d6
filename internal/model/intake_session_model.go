package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IntakeSession struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Description  string         `gorm:"type:text;not null"`
	Phase        string         `gorm:"type:varchar(50);not null;index"`
	ScopeRisk    string         `gorm:"type:varchar(20)"`
	Completeness int            `gorm:"not null;default:0"`
	Analytics    datatypes.JSON `gorm:"type:jsonb"`
	StartedAt    time.Time      `gorm:"not null"`
	CompletedAt  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (IntakeSession) TableName() string {
	return "intake_sessions"
}
