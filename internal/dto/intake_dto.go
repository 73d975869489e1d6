package dto

import "time"

type StartIntakeRequest struct {
	Description string `json:"description" validate:"required"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type QuestionResponse struct {
	Sequence int    `json:"sequence"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Icon     string `json:"icon"`
	Kind     string `json:"kind"`
	Fallback bool   `json:"fallback"`
}

// SummarizedSessionMessage is the payload published when a session
// reaches its summary.
type SummarizedSessionMessage struct {
	SessionId string `json:"session_id"`
}

type AnalyticsResponse struct {
	TotalQuestions        int    `json:"total_questions"`
	AnsweredCount         int    `json:"answered_count"`
	Completeness          int    `json:"completeness"`
	ScopeRisk             string `json:"scope_risk"`
	HasBudgetInfo         bool   `json:"has_budget_info"`
	HasTimelineInfo       bool   `json:"has_timeline_info"`
	EdgeCaseAnsweredCount int    `json:"edge_case_answered_count"`
}

// ActionResponse is returned by start/answer/skip/finish. Exactly one of
// Question or Analytics is set depending on the resulting phase.
type ActionResponse struct {
	SessionId string             `json:"session_id"`
	Phase     string             `json:"phase"`
	Question  *QuestionResponse  `json:"question,omitempty"`
	Message   string             `json:"message,omitempty"`
	Analytics *AnalyticsResponse `json:"analytics,omitempty"`
}

type AnsweredQuestionResponse struct {
	QuestionResponse
	Answer  *string `json:"answer"`
	Skipped bool    `json:"skipped"`
}

type SessionSummaryResponse struct {
	SessionId   string                     `json:"session_id"`
	Description string                     `json:"description"`
	Phase       string                     `json:"phase"`
	StartedAt   time.Time                  `json:"started_at"`
	CompletedAt *time.Time                 `json:"completed_at,omitempty"`
	Questions   []AnsweredQuestionResponse `json:"questions"`
	Analytics   *AnalyticsResponse         `json:"analytics,omitempty"`
}

type SessionListItemResponse struct {
	SessionId    string     `json:"session_id"`
	Description  string     `json:"description"`
	Phase        string     `json:"phase"`
	ScopeRisk    string     `json:"scope_risk,omitempty"`
	Completeness int        `json:"completeness"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type UsageResponse struct {
	Date string `json:"date"`
	Used int    `json:"used"`
	Cap  int    `json:"cap"`
}
