package implementation

import (
	"context"

	"project-intake-be/internal/entity"
	"project-intake-be/internal/mapper"
	"project-intake-be/internal/model"
	"project-intake-be/internal/repository/contract"
	"project-intake-be/internal/repository/specification"

	"gorm.io/gorm"
)

type IntakeQuestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeQuestionRepository(db *gorm.DB) contract.IntakeQuestionRepository {
	return &IntakeQuestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeQuestionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntakeQuestionRepositoryImpl) CreateBatch(ctx context.Context, questions []*entity.IntakeQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	models := r.mapper.ToQuestionModels(questions)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*questions[i] = *r.mapper.ToQuestionEntity(m)
	}
	return nil
}

func (r *IntakeQuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeQuestion, error) {
	var models []*model.IntakeQuestion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToQuestionEntities(models), nil
}

func (r *IntakeQuestionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.IntakeQuestion{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
