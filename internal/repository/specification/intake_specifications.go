package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters questions belonging to one session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByPhase filters sessions by lifecycle phase
type ByPhase struct {
	Phase string
}

func (s ByPhase) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("phase = ?", s.Phase)
}
