package model

import (
	"time"

	"github.com/google/uuid"
)

type IntakeQuestion struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Sequence    int       `gorm:"not null"`
	Category    string    `gorm:"type:varchar(50);not null"`
	Text        string    `gorm:"type:text;not null"`
	Icon        string    `gorm:"type:varchar(16)"`
	Kind        string    `gorm:"type:varchar(20);not null;default:'standard'"`
	Fallback    bool      `gorm:"not null;default:false"`
	Answer      *string   `gorm:"type:text"`
	OracleReply string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (IntakeQuestion) TableName() string {
	return "intake_questions"
}
