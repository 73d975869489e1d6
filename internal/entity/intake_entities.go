// FILE: internal/entity/intake_entities.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type IntakeSession struct {
	Id           uuid.UUID
	Description  string
	Phase        string
	ScopeRisk    string
	Completeness int
	Analytics    []byte
	StartedAt    time.Time
	CompletedAt  *time.Time
	Questions    []*IntakeQuestion
}

type IntakeQuestion struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Sequence    int
	Category    string
	Text        string
	Icon        string
	Kind        string
	Fallback    bool
	Answer      *string
	OracleReply string
	CreatedAt   time.Time
}

// DailyUsage tracks how many sessions were started on a given date.
type DailyUsage struct {
	Date  string
	Count int
}
