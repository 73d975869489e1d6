package service

import (
	"context"
	"testing"

	"project-intake-be/internal/dto"
	"project-intake-be/internal/entity"
	"project-intake-be/internal/repository/contract"
	"project-intake-be/internal/repository/memory"
	"project-intake-be/internal/repository/specification"
	"project-intake-be/internal/repository/unitofwork"
	"project-intake-be/pkg/events"
	"project-intake-be/pkg/intake/ratelimit"
	"project-intake-be/pkg/oracle"
	"project-intake-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogger "project-intake-be/internal/pkg/logger"
)

// scriptedGenerator pops one decision per call. onCall, when set, runs while
// the call is in flight.
type scriptedGenerator struct {
	decisions []*oracle.Decision
	calls     int
	histories [][]oracle.AnsweredQuestion
	onCall    func()
}

func (g *scriptedGenerator) GenerateNext(ctx context.Context, description string, history []oracle.AnsweredQuestion) *oracle.Decision {
	g.calls++
	g.histories = append(g.histories, history)
	if g.onCall != nil {
		g.onCall()
	}
	if len(g.decisions) == 0 {
		return &oracle.Decision{Outcome: oracle.OutcomeUnparsable}
	}
	d := g.decisions[0]
	g.decisions = g.decisions[1:]
	return d
}

func nextQuestion(text, category string) *oracle.Decision {
	return &oracle.Decision{
		Outcome: oracle.OutcomeNextQuestion,
		Question: &store.Question{
			Category: category,
			Text:     text,
			Icon:     "❓",
			Kind:     store.KindStandard,
		},
		Raw: `{"shouldContinue": true}`,
	}
}

func stopped() *oracle.Decision {
	return &oracle.Decision{Outcome: oracle.OutcomeStopped, Raw: `{"shouldContinue": false}`}
}

// In-memory unit of work backing the persistence assertions.

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	sessions  []*entity.IntakeSession
	questions []*entity.IntakeQuestion
	commits   int
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) IntakeSessionRepository() contract.IntakeSessionRepository {
	return &fakeSessionRepo{uow: u}
}

func (u *fakeUow) IntakeQuestionRepository() contract.IntakeQuestionRepository {
	return &fakeQuestionRepo{uow: u}
}

func (u *fakeUow) DailyUsageRepository() contract.DailyUsageRepository {
	return nil
}

type fakeSessionRepo struct{ uow *fakeUow }

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.IntakeSession) error {
	r.uow.sessions = append(r.uow.sessions, s)
	return nil
}
func (r *fakeSessionRepo) Update(ctx context.Context, s *entity.IntakeSession) error { return nil }
func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeSession, error) {
	if len(r.uow.sessions) == 0 {
		return nil, nil
	}
	return r.uow.sessions[len(r.uow.sessions)-1], nil
}
func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeSession, error) {
	return r.uow.sessions, nil
}
func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.sessions)), nil
}

type fakeQuestionRepo struct{ uow *fakeUow }

func (r *fakeQuestionRepo) CreateBatch(ctx context.Context, qs []*entity.IntakeQuestion) error {
	r.uow.questions = append(r.uow.questions, qs...)
	return nil
}
func (r *fakeQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeQuestion, error) {
	return r.uow.questions, nil
}
func (r *fakeQuestionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.questions)), nil
}

type fakePublisher struct{ payloads [][]byte }

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type fakeEventPublisher struct{ published []events.Event }

func (p *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

type fakeBroadcaster struct {
	sessionIDs []string
}

func (b *fakeBroadcaster) BroadcastAnalytics(sessionID string, payload interface{}) {
	b.sessionIDs = append(b.sessionIDs, sessionID)
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type testHarness struct {
	service     IIntakeService
	sessions    *memory.SessionRepository
	generator   *scriptedGenerator
	uow         *fakeUow
	publisher   *fakePublisher
	eventBus    *fakeEventPublisher
	broadcaster *fakeBroadcaster
	limiter     *ratelimit.Limiter
}

func newHarness(t *testing.T, decisions ...*oracle.Decision) *testHarness {
	t.Helper()

	h := &testHarness{
		sessions:    memory.NewSessionRepository(),
		generator:   &scriptedGenerator{decisions: decisions},
		uow:         &fakeUow{},
		publisher:   &fakePublisher{},
		eventBus:    &fakeEventPublisher{},
		broadcaster: &fakeBroadcaster{},
		limiter:     ratelimit.New(ratelimit.NewMemoryStore(), 10),
	}
	h.service = NewIntakeService(
		h.sessions,
		&fakeUowFactory{uow: h.uow},
		h.generator,
		h.limiter,
		h.publisher,
		h.eventBus,
		h.broadcaster,
		testLogger{},
	)
	return h
}

// testLogger satisfies logger.ILogger without touching the filesystem.
type testLogger struct{ noopLogger }

func (testLogger) GetLogs(level string, limit, offset int) ([]applogger.LogEntry, error) {
	return nil, nil
}

func (testLogger) GetLogById(id string) (*applogger.LogEntry, error) {
	return nil, nil
}

const validDescription = "build a mobile app for dog walkers with booking"

func TestStartRejectsGibberish(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: "ab cd"})

	var intakeErr *IntakeError
	require.ErrorAs(t, err, &intakeErr)
	assert.Equal(t, "INVALID_DESCRIPTION", intakeErr.Code)
	assert.Equal(t, 0, h.generator.calls, "oracle must not be consulted for gibberish")
}

func TestStartHonorsDailyCap(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What problem does it solve?", "Vision"),
	)
	h.limiter = ratelimit.New(ratelimit.NewMemoryStore(), 1)
	h.service = NewIntakeService(h.sessions, &fakeUowFactory{uow: h.uow}, h.generator,
		h.limiter, h.publisher, h.eventBus, h.broadcaster, testLogger{})

	_, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	_, err = h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	assert.ErrorIs(t, err, ErrDailyLimitReached)
}

func TestStartAnswerStopFlow(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
		stopped(),
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)
	assert.Equal(t, store.PhaseQuestioning, res.Phase)
	require.NotNil(t, res.Question)
	assert.Equal(t, 1, res.Question.Sequence)
	assert.Equal(t, "Budget", res.Question.Category)

	res, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "About 50k."})
	require.NoError(t, err)
	assert.Equal(t, store.PhaseSummarizing, res.Phase)
	require.NotNil(t, res.Analytics)
	assert.Equal(t, 1, res.Analytics.TotalQuestions)
	assert.Equal(t, 1, res.Analytics.AnsweredCount)
	assert.Equal(t, 100, res.Analytics.Completeness)
	assert.True(t, res.Analytics.HasBudgetInfo)

	// Persistence and fan-out
	require.Len(t, h.uow.sessions, 1)
	require.Len(t, h.uow.questions, 1)
	assert.Equal(t, 1, h.uow.commits)
	assert.Len(t, h.publisher.payloads, 1)
	assert.Equal(t, []string{res.SessionId}, h.broadcaster.sessionIDs)

	// The stop call saw the answered pair
	require.Len(t, h.generator.histories, 2)
	require.Len(t, h.generator.histories[1], 1)
	assert.Equal(t, "What is the budget?", h.generator.histories[1][0].Question)
	assert.Equal(t, "About 50k.", h.generator.histories[1][0].Answer)
}

func TestStartOracleRejection(t *testing.T) {
	h := newHarness(t, &oracle.Decision{
		Outcome:    oracle.OutcomeRejected,
		Message:    "This looks like a simple task, not a project.",
		ReasonType: "simple_task",
	})

	_, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})

	var rejection *OracleRejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "simple_task", rejection.ReasonType)
	require.Len(t, h.eventBus.published, 1)
	assert.Equal(t, events.TypeIntakeRejected, h.eventBus.published[0].EventType())
}

func TestStartStopDecisionStaysCollecting(t *testing.T) {
	h := newHarness(t, stopped())

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)
	assert.Equal(t, store.PhaseCollecting, res.Phase)
	assert.Nil(t, res.Question, "a first-call stop must not produce a question")
	assert.NotEmpty(t, res.Message)

	_, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "hello"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUnparsableFallsBackExactlyOnce(t *testing.T) {
	h := newHarness(t,
		&oracle.Decision{Outcome: oracle.OutcomeUnparsable},
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)
	require.NotNil(t, res.Question)
	assert.True(t, res.Question.Fallback)
	assert.Equal(t, "Vision", res.Question.Category)

	session, found := h.sessions.Get(res.SessionId)
	require.True(t, found)
	assert.Len(t, session.Questions, 1)
}

func TestMidSessionRejectionSummarizes(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
		&oracle.Decision{Outcome: oracle.OutcomeRejected, Message: "nope"},
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	res, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "50k"})
	require.NoError(t, err)
	assert.Equal(t, store.PhaseSummarizing, res.Phase, "mid-session rejection behaves as a stop")
}

func TestSkipExcludesQuestionFromHistory(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
		nextQuestion("When is the deadline?", "Timeline"),
		stopped(),
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	res, err = h.service.Skip(context.Background(), res.SessionId)
	require.NoError(t, err)
	require.NotNil(t, res.Question)
	assert.Equal(t, 2, res.Question.Sequence)

	// The call that produced question 2 must not mention question 1.
	require.Len(t, h.generator.histories, 2)
	assert.Empty(t, h.generator.histories[1])

	res, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "End of Q2"})
	require.NoError(t, err)
	assert.Equal(t, store.PhaseSummarizing, res.Phase)
	assert.Equal(t, 2, res.Analytics.TotalQuestions)
	assert.Equal(t, 1, res.Analytics.AnsweredCount)
	assert.Equal(t, 50, res.Analytics.Completeness)
}

func TestEmptyAnswerIsNoOp(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	res2, err := h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "   "})
	require.NoError(t, err)
	assert.Equal(t, res.Question.Text, res2.Question.Text)
	assert.Equal(t, 1, h.generator.calls, "no-op must not hit the oracle")
}

func TestEvictedSessionDiscardsLateReply(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
		nextQuestion("When is the deadline?", "Timeline"),
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	// Evict the session while the second oracle call is in flight.
	h.generator.onCall = func() { h.sessions.Delete(res.SessionId) }

	res2, err := h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "50k"})
	require.NoError(t, err)
	assert.Equal(t, store.PhaseSummarizing, res2.Phase)

	_, found := h.sessions.Get(res.SessionId)
	assert.False(t, found, "a late reply must not re-insert an evicted session")
	assert.Equal(t, 0, h.uow.commits)
}

func TestBusySessionRefusesSecondAction(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	session, found := h.sessions.Get(res.SessionId)
	require.True(t, found)
	session.Busy = true
	h.sessions.Save(session)

	_, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "50k"})
	assert.ErrorIs(t, err, ErrSessionBusy)
}

func TestQuestionCapForcesSummary(t *testing.T) {
	decisions := make([]*oracle.Decision, 0, store.MaxQuestions)
	for i := 0; i < store.MaxQuestions; i++ {
		decisions = append(decisions, nextQuestion("Question?", "Requirements"))
	}
	h := newHarness(t, decisions...)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	for i := 0; i < store.MaxQuestions-1; i++ {
		res, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "yes"})
		require.NoError(t, err)
		require.NotNil(t, res.Question, "question %d", i+2)
	}

	// Question 20 is on screen; answering it must summarize without
	// another oracle call.
	callsBefore := h.generator.calls
	res, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "yes"})
	require.NoError(t, err)
	assert.Equal(t, store.PhaseSummarizing, res.Phase)
	assert.Equal(t, store.MaxQuestions, res.Analytics.TotalQuestions)
	assert.Equal(t, callsBefore, h.generator.calls)
}

func TestFinishEndsSessionEarly(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	res, err = h.service.Finish(context.Background(), res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, store.PhaseSummarizing, res.Phase)

	_, err = h.service.Finish(context.Background(), res.SessionId)
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestSummaryForLiveSession(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
		nextQuestion("When is the deadline?", "Timeline"),
	)

	res, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	_, err = h.service.SubmitAnswer(context.Background(), res.SessionId, &dto.AnswerRequest{Answer: "50k"})
	require.NoError(t, err)

	summary, err := h.service.Summary(context.Background(), res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, store.PhaseQuestioning, summary.Phase)
	require.Len(t, summary.Questions, 2)
	assert.False(t, summary.Questions[0].Skipped)
	assert.True(t, summary.Questions[1].Skipped)
	assert.True(t, summary.Analytics.HasBudgetInfo)
	assert.False(t, summary.Analytics.HasTimelineInfo, "unanswered timeline question must not count")
}

func TestSummaryUnknownSession(t *testing.T) {
	h := newHarness(t)
	_, err := h.service.Summary(context.Background(), "b5a9e0a8-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUsageReflectsConsumption(t *testing.T) {
	h := newHarness(t,
		nextQuestion("What is the budget?", "Budget"),
	)

	_, err := h.service.Start(context.Background(), &dto.StartIntakeRequest{Description: validDescription})
	require.NoError(t, err)

	usage, err := h.service.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Used)
	assert.Equal(t, 10, usage.Cap)
}
