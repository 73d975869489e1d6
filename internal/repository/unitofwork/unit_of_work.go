package unitofwork

import (
	"context"

	"project-intake-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	IntakeSessionRepository() contract.IntakeSessionRepository
	IntakeQuestionRepository() contract.IntakeQuestionRepository
	DailyUsageRepository() contract.DailyUsageRepository
}
