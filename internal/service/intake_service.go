// FILE: internal/service/intake_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"project-intake-be/internal/dto"
	"project-intake-be/internal/entity"
	"project-intake-be/internal/pkg/logger"
	"project-intake-be/internal/repository/memory"
	"project-intake-be/internal/repository/specification"
	"project-intake-be/internal/repository/unitofwork"
	"project-intake-be/pkg/events"
	"project-intake-be/pkg/intake/analytics"
	"project-intake-be/pkg/intake/fallback"
	"project-intake-be/pkg/intake/ratelimit"
	"project-intake-be/pkg/intake/validate"
	"project-intake-be/pkg/oracle"
	"project-intake-be/pkg/store"

	"github.com/google/uuid"
)

type IIntakeService interface {
	Start(ctx context.Context, req *dto.StartIntakeRequest) (*dto.ActionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.ActionResponse, error)
	Skip(ctx context.Context, sessionID string) (*dto.ActionResponse, error)
	Finish(ctx context.Context, sessionID string) (*dto.ActionResponse, error)
	Summary(ctx context.Context, sessionID string) (*dto.SessionSummaryResponse, error)
	ListSessions(ctx context.Context) ([]*dto.SessionListItemResponse, error)
	Usage(ctx context.Context) (*dto.UsageResponse, error)
}

// AnalyticsBroadcaster pushes live analytics to dashboard clients.
type AnalyticsBroadcaster interface {
	BroadcastAnalytics(sessionID string, payload interface{})
}

// EventPublisher sends domain events to the external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type intakeService struct {
	sessions         *memory.SessionRepository
	uowFactory       unitofwork.RepositoryFactory
	generator        oracle.Generator
	limiter          *ratelimit.Limiter
	publisherService IPublisherService
	eventPublisher   EventPublisher
	broadcaster      AnalyticsBroadcaster
	logger           logger.ILogger
}

func NewIntakeService(
	sessions *memory.SessionRepository,
	uowFactory unitofwork.RepositoryFactory,
	generator oracle.Generator,
	limiter *ratelimit.Limiter,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	broadcaster AnalyticsBroadcaster,
	log logger.ILogger,
) IIntakeService {
	return &intakeService{
		sessions:         sessions,
		uowFactory:       uowFactory,
		generator:        generator,
		limiter:          limiter,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		broadcaster:      broadcaster,
		logger:           log,
	}
}

func (s *intakeService) Start(ctx context.Context, req *dto.StartIntakeRequest) (*dto.ActionResponse, error) {
	if ok, reason := validate.Check(req.Description); !ok {
		s.logger.Info("intake", "Description rejected by heuristic", map[string]interface{}{
			"reason": reason,
		})
		return nil, NewInvalidDescriptionError(reason)
	}

	allowed, err := s.limiter.TryConsume(ctx)
	if err != nil {
		s.logger.Warn("intake", "Usage store write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if !allowed {
		return nil, ErrDailyLimitReached
	}

	session := &store.Session{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(req.Description),
		Phase:       store.PhaseCollecting,
		Answers:     make(map[int]string),
		StartedAt:   time.Now(),
	}
	s.sessions.Save(session)

	decision := s.askOracle(ctx, session)

	// The first reply is the only place a model-side rejection ends the
	// whole session.
	if decision.Outcome == oracle.OutcomeRejected {
		s.sessions.Delete(session.ID)
		if s.eventPublisher != nil {
			_ = s.eventPublisher.Publish(ctx, events.NewIntakeRejectedEvent(decision.ReasonType))
		}
		return nil, &OracleRejectionError{
			ReasonType: decision.ReasonType,
			Message:    decision.Message,
		}
	}

	// A stop before any question was asked leaves the caller in Collecting;
	// there is nothing to summarize.
	if decision.Outcome == oracle.OutcomeStopped {
		s.sessions.Delete(session.ID)
		message := decision.Reasoning
		if message == "" {
			message = "No clarifying questions were needed. Please expand the description and start again."
		}
		s.logger.Info("intake", "Session stopped before questioning", map[string]interface{}{
			"session_id": session.ID,
		})
		return &dto.ActionResponse{
			SessionId: session.ID,
			Phase:     store.PhaseCollecting,
			Message:   message,
		}, nil
	}

	question := s.questionFromDecision(session, decision)
	s.appendQuestion(session, question)
	session.Phase = store.PhaseQuestioning
	s.sessions.Save(session)

	s.logger.Info("intake", "Session started", map[string]interface{}{
		"session_id": session.ID,
		"fallback":   question.Fallback,
	})

	return s.questionResponse(session), nil
}

func (s *intakeService) SubmitAnswer(ctx context.Context, sessionID string, req *dto.AnswerRequest) (*dto.ActionResponse, error) {
	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		// Empty answers are a no-op: the current question is re-served.
		return s.questionResponse(session), nil
	}

	session.Answers[session.Position] = answer
	s.sessions.Save(session)

	return s.advance(ctx, session)
}

func (s *intakeService) Skip(ctx context.Context, sessionID string) (*dto.ActionResponse, error) {
	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	// No answer recorded; the skipped question simply never reaches the
	// oracle's history.
	return s.advance(ctx, session)
}

func (s *intakeService) Finish(ctx context.Context, sessionID string) (*dto.ActionResponse, error) {
	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, session)
}

// advance asks for the next question, or summarizes when the session is done.
func (s *intakeService) advance(ctx context.Context, session *store.Session) (*dto.ActionResponse, error) {
	if len(session.Questions) >= store.MaxQuestions {
		return s.finalize(ctx, session)
	}

	decision := s.askOracle(ctx, session)

	// Finish may have raced us while the oracle call was in flight; a
	// summarized session discards the late reply.
	if current, found := s.sessions.Get(session.ID); !found || current.Phase == store.PhaseSummarizing {
		s.logger.Warn("intake", "Discarding stale oracle reply", map[string]interface{}{
			"session_id": session.ID,
		})
		if found {
			session = current
		}
		return s.summaryAction(session), nil
	}

	switch decision.Outcome {
	case oracle.OutcomeStopped, oracle.OutcomeRejected:
		// Mid-session rejections are demoted to a stop: the user already
		// invested answers, so we summarize what exists.
		return s.finalize(ctx, session)
	default:
		question := s.questionFromDecision(session, decision)
		s.appendQuestion(session, question)
		s.sessions.Save(session)
		return s.questionResponse(session), nil
	}
}

// askOracle runs one oracle call under the session's busy flag.
func (s *intakeService) askOracle(ctx context.Context, session *store.Session) *oracle.Decision {
	session.Busy = true
	s.sessions.Save(session)

	decision := s.generator.GenerateNext(ctx, session.Description, s.answeredHistory(session))

	// Clear the busy flag without resurrecting a session the cache evicted
	// while the call was in flight.
	session.Busy = false
	if _, found := s.sessions.Get(session.ID); found {
		s.sessions.Save(session)
	}
	return decision
}

// questionFromDecision returns the oracle's question, or the positional
// fallback so the flow never blocks on a bad reply.
func (s *intakeService) questionFromDecision(session *store.Session, decision *oracle.Decision) store.Question {
	if decision.Outcome == oracle.OutcomeNextQuestion && decision.Question != nil {
		q := *decision.Question
		q.RawReply = decision.Raw
		return q
	}

	s.logger.Warn("intake", "Falling back to fixed question", map[string]interface{}{
		"session_id": session.ID,
		"outcome":    decision.Outcome,
	})
	return fallback.For(session.Description, session.AnsweredCount())
}

func (s *intakeService) appendQuestion(session *store.Session, q store.Question) {
	q.Sequence = len(session.Questions) + 1
	session.Questions = append(session.Questions, q)
	session.Position = len(session.Questions) - 1
}

func (s *intakeService) answeredHistory(session *store.Session) []oracle.AnsweredQuestion {
	history := make([]oracle.AnsweredQuestion, 0, len(session.Answers))
	for pos, q := range session.Questions {
		if answer, ok := session.Answers[pos]; ok {
			history = append(history, oracle.AnsweredQuestion{
				Question: q.Text,
				Answer:   answer,
			})
		}
	}
	return history
}

// finalize moves the session to its summary, persists it, and fans out the
// completion event.
func (s *intakeService) finalize(ctx context.Context, session *store.Session) (*dto.ActionResponse, error) {
	now := time.Now()
	session.Phase = store.PhaseSummarizing
	session.CompletedAt = &now
	s.sessions.Save(session)

	result := analytics.Summarize(session.Questions, session.Answers)

	if err := s.persist(ctx, session, result); err != nil {
		s.logger.Error("intake", "Failed to persist summarized session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	msgPayload := dto.SummarizedSessionMessage{SessionId: session.ID}
	if msgJson, err := json.Marshal(msgPayload); err == nil {
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.logger.Warn("intake", "Failed to publish summarized message", map[string]interface{}{
				"session_id": session.ID,
				"error":      err.Error(),
			})
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAnalytics(session.ID, s.toAnalyticsResponse(result))
	}

	s.logger.Info("intake", "Session summarized", map[string]interface{}{
		"session_id":   session.ID,
		"questions":    result.TotalQuestions,
		"answered":     result.AnsweredCount,
		"completeness": result.Completeness,
		"scope_risk":   result.ScopeRisk,
	})

	return s.summaryActionWith(session, result), nil
}

func (s *intakeService) persist(ctx context.Context, session *store.Session, result analytics.Analytics) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessionID, err := uuid.Parse(session.ID)
	if err != nil {
		return err
	}

	analyticsJson, err := json.Marshal(result)
	if err != nil {
		return err
	}

	sessionEntity := &entity.IntakeSession{
		Id:           sessionID,
		Description:  session.Description,
		Phase:        session.Phase,
		ScopeRisk:    result.ScopeRisk,
		Completeness: result.Completeness,
		Analytics:    analyticsJson,
		StartedAt:    session.StartedAt,
		CompletedAt:  session.CompletedAt,
	}

	questions := make([]*entity.IntakeQuestion, len(session.Questions))
	for i, q := range session.Questions {
		var answer *string
		if a, ok := session.Answers[i]; ok {
			answer = &a
		}
		questions[i] = &entity.IntakeQuestion{
			Id:          uuid.New(),
			SessionId:   sessionID,
			Sequence:    q.Sequence,
			Category:    q.Category,
			Text:        q.Text,
			Icon:        q.Icon,
			Kind:        q.Kind,
			Fallback:    q.Fallback,
			Answer:      answer,
			OracleReply: q.RawReply,
			CreatedAt:   time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.IntakeSessionRepository().Create(ctx, sessionEntity); err != nil {
		return err
	}
	if err := uow.IntakeQuestionRepository().CreateBatch(ctx, questions); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *intakeService) Summary(ctx context.Context, sessionID string) (*dto.SessionSummaryResponse, error) {
	if session, found := s.sessions.Get(sessionID); found {
		return s.liveSummary(session), nil
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessionEntity, err := uow.IntakeSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if sessionEntity == nil {
		return nil, ErrSessionNotFound
	}

	questions, err := uow.IntakeQuestionRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "sequence"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.SessionSummaryResponse{
		SessionId:   sessionEntity.Id.String(),
		Description: sessionEntity.Description,
		Phase:       sessionEntity.Phase,
		StartedAt:   sessionEntity.StartedAt,
		CompletedAt: sessionEntity.CompletedAt,
		Questions:   make([]dto.AnsweredQuestionResponse, len(questions)),
	}

	liveQuestions := make([]store.Question, len(questions))
	answers := make(map[int]string)
	for i, q := range questions {
		res.Questions[i] = dto.AnsweredQuestionResponse{
			QuestionResponse: dto.QuestionResponse{
				Sequence: q.Sequence,
				Category: q.Category,
				Text:     q.Text,
				Icon:     q.Icon,
				Kind:     q.Kind,
				Fallback: q.Fallback,
			},
			Answer:  q.Answer,
			Skipped: q.Answer == nil,
		}
		liveQuestions[i] = store.Question{
			Sequence: q.Sequence,
			Category: q.Category,
			Text:     q.Text,
			Icon:     q.Icon,
			Kind:     q.Kind,
			Fallback: q.Fallback,
		}
		if q.Answer != nil {
			answers[i] = *q.Answer
		}
	}

	result := analytics.Summarize(liveQuestions, answers)
	res.Analytics = s.toAnalyticsResponse(result)

	return res, nil
}

func (s *intakeService) ListSessions(ctx context.Context) ([]*dto.SessionListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	persisted, err := uow.IntakeSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionListItemResponse, 0, len(persisted))
	seen := make(map[string]bool)

	for _, live := range s.sessions.Active() {
		if live.Phase == store.PhaseSummarizing {
			continue // already persisted
		}
		seen[live.ID] = true
		liveResult := analytics.Summarize(live.Questions, live.Answers)
		result = append(result, &dto.SessionListItemResponse{
			SessionId:    live.ID,
			Description:  live.Description,
			Phase:        live.Phase,
			ScopeRisk:    liveResult.ScopeRisk,
			Completeness: liveResult.Completeness,
			StartedAt:    live.StartedAt,
		})
	}

	for _, item := range persisted {
		if seen[item.Id.String()] {
			continue
		}
		result = append(result, &dto.SessionListItemResponse{
			SessionId:    item.Id.String(),
			Description:  item.Description,
			Phase:        item.Phase,
			ScopeRisk:    item.ScopeRisk,
			Completeness: item.Completeness,
			StartedAt:    item.StartedAt,
			CompletedAt:  item.CompletedAt,
		})
	}

	return result, nil
}

func (s *intakeService) Usage(ctx context.Context) (*dto.UsageResponse, error) {
	used, cap, err := s.limiter.Usage(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UsageResponse{
		Date: time.Now().Format(ratelimit.DateLayout),
		Used: used,
		Cap:  cap,
	}, nil
}

// Helpers

func (s *intakeService) activeSession(sessionID string) (*store.Session, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	if session.Phase == store.PhaseSummarizing {
		return nil, ErrSessionFinished
	}
	if session.Busy {
		return nil, ErrSessionBusy
	}
	return session, nil
}

func (s *intakeService) questionResponse(session *store.Session) *dto.ActionResponse {
	q := session.Questions[session.Position]
	return &dto.ActionResponse{
		SessionId: session.ID,
		Phase:     session.Phase,
		Question: &dto.QuestionResponse{
			Sequence: q.Sequence,
			Category: q.Category,
			Text:     q.Text,
			Icon:     q.Icon,
			Kind:     q.Kind,
			Fallback: q.Fallback,
		},
	}
}

func (s *intakeService) summaryAction(session *store.Session) *dto.ActionResponse {
	return s.summaryActionWith(session, analytics.Summarize(session.Questions, session.Answers))
}

func (s *intakeService) summaryActionWith(session *store.Session, result analytics.Analytics) *dto.ActionResponse {
	return &dto.ActionResponse{
		SessionId: session.ID,
		Phase:     store.PhaseSummarizing,
		Message:   "Session summarized",
		Analytics: s.toAnalyticsResponse(result),
	}
}

func (s *intakeService) toAnalyticsResponse(a analytics.Analytics) *dto.AnalyticsResponse {
	return &dto.AnalyticsResponse{
		TotalQuestions:        a.TotalQuestions,
		AnsweredCount:         a.AnsweredCount,
		Completeness:          a.Completeness,
		ScopeRisk:             a.ScopeRisk,
		HasBudgetInfo:         a.HasBudgetInfo,
		HasTimelineInfo:       a.HasTimelineInfo,
		EdgeCaseAnsweredCount: a.EdgeCaseAnsweredCount,
	}
}

func (s *intakeService) liveSummary(session *store.Session) *dto.SessionSummaryResponse {
	res := &dto.SessionSummaryResponse{
		SessionId:   session.ID,
		Description: session.Description,
		Phase:       session.Phase,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
		Questions:   make([]dto.AnsweredQuestionResponse, len(session.Questions)),
	}

	for i, q := range session.Questions {
		var answer *string
		if a, ok := session.Answers[i]; ok {
			answer = &a
		}
		res.Questions[i] = dto.AnsweredQuestionResponse{
			QuestionResponse: dto.QuestionResponse{
				Sequence: q.Sequence,
				Category: q.Category,
				Text:     q.Text,
				Icon:     q.Icon,
				Kind:     q.Kind,
				Fallback: q.Fallback,
			},
			Answer:  answer,
			Skipped: answer == nil,
		}
	}

	res.Analytics = s.toAnalyticsResponse(analytics.Summarize(session.Questions, session.Answers))
	return res
}
