package implementation

import (
	"context"
	"errors"

	"project-intake-be/internal/entity"
	"project-intake-be/internal/mapper"
	"project-intake-be/internal/model"
	"project-intake-be/internal/repository/contract"
	"project-intake-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntakeSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeSessionRepository(db *gorm.DB) contract.IntakeSessionRepository {
	return &IntakeSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IntakeSessionRepositoryImpl) Create(ctx context.Context, session *entity.IntakeSession) error {
	m := r.mapper.ToSessionModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToSessionEntity(m)
	return nil
}

func (r *IntakeSessionRepositoryImpl) Update(ctx context.Context, session *entity.IntakeSession) error {
	m := r.mapper.ToSessionModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToSessionEntity(m)
	return nil
}

func (r *IntakeSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.IntakeSession{}, id).Error
}

func (r *IntakeSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeSession, error) {
	var m model.IntakeSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToSessionEntity(&m), nil
}

func (r *IntakeSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeSession, error) {
	var models []*model.IntakeSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToSessionEntities(models), nil
}

func (r *IntakeSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.IntakeSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
