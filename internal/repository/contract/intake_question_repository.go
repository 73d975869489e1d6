package contract

import (
	"context"

	"project-intake-be/internal/entity"
	"project-intake-be/internal/repository/specification"
)

type IntakeQuestionRepository interface {
	CreateBatch(ctx context.Context, questions []*entity.IntakeQuestion) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeQuestion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
