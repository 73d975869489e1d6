package mapper

import (
	"project-intake-be/internal/entity"
	"project-intake-be/internal/model"

	"gorm.io/datatypes"
)

type IntakeMapper struct{}

func NewIntakeMapper() *IntakeMapper {
	return &IntakeMapper{}
}

func (m *IntakeMapper) ToSessionEntity(s *model.IntakeSession) *entity.IntakeSession {
	if s == nil {
		return nil
	}

	return &entity.IntakeSession{
		Id:           s.Id,
		Description:  s.Description,
		Phase:        s.Phase,
		ScopeRisk:    s.ScopeRisk,
		Completeness: s.Completeness,
		Analytics:    []byte(s.Analytics),
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
	}
}

func (m *IntakeMapper) ToSessionModel(s *entity.IntakeSession) *model.IntakeSession {
	if s == nil {
		return nil
	}

	return &model.IntakeSession{
		Id:           s.Id,
		Description:  s.Description,
		Phase:        s.Phase,
		ScopeRisk:    s.ScopeRisk,
		Completeness: s.Completeness,
		Analytics:    datatypes.JSON(s.Analytics),
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
	}
}

func (m *IntakeMapper) ToQuestionEntity(q *model.IntakeQuestion) *entity.IntakeQuestion {
	if q == nil {
		return nil
	}

	return &entity.IntakeQuestion{
		Id:          q.Id,
		SessionId:   q.SessionId,
		Sequence:    q.Sequence,
		Category:    q.Category,
		Text:        q.Text,
		Icon:        q.Icon,
		Kind:        q.Kind,
		Fallback:    q.Fallback,
		Answer:      q.Answer,
		OracleReply: q.OracleReply,
		CreatedAt:   q.CreatedAt,
	}
}

func (m *IntakeMapper) ToQuestionModel(q *entity.IntakeQuestion) *model.IntakeQuestion {
	if q == nil {
		return nil
	}

	return &model.IntakeQuestion{
		Id:          q.Id,
		SessionId:   q.SessionId,
		Sequence:    q.Sequence,
		Category:    q.Category,
		Text:        q.Text,
		Icon:        q.Icon,
		Kind:        q.Kind,
		Fallback:    q.Fallback,
		Answer:      q.Answer,
		OracleReply: q.OracleReply,
		CreatedAt:   q.CreatedAt,
	}
}

func (m *IntakeMapper) ToSessionEntities(sessions []*model.IntakeSession) []*entity.IntakeSession {
	entities := make([]*entity.IntakeSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToSessionEntity(s)
	}
	return entities
}

func (m *IntakeMapper) ToQuestionEntities(questions []*model.IntakeQuestion) []*entity.IntakeQuestion {
	entities := make([]*entity.IntakeQuestion, len(questions))
	for i, q := range questions {
		entities[i] = m.ToQuestionEntity(q)
	}
	return entities
}

func (m *IntakeMapper) ToQuestionModels(questions []*entity.IntakeQuestion) []*model.IntakeQuestion {
	models := make([]*model.IntakeQuestion, len(questions))
	for i, q := range questions {
		models[i] = m.ToQuestionModel(q)
	}
	return models
}
