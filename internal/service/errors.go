// FILE: internal/service/errors.go
package service

import "fmt"

// IntakeError carries an HTTP status and machine code so the error
// middleware can map it without the service importing fiber.
type IntakeError struct {
	Status  int
	Code    string
	Message string
}

func (e *IntakeError) Error() string {
	return e.Message
}

func (e *IntakeError) HTTPStatus() int {
	return e.Status
}

func (e *IntakeError) ErrorCode() string {
	return e.Code
}

var (
	ErrSessionNotFound = &IntakeError{
		Status:  404,
		Code:    "SESSION_NOT_FOUND",
		Message: "Session not found",
	}
	ErrSessionBusy = &IntakeError{
		Status:  409,
		Code:    "SESSION_BUSY",
		Message: "A reply for this session is still being processed",
	}
	ErrSessionFinished = &IntakeError{
		Status:  409,
		Code:    "SESSION_FINISHED",
		Message: "Session already reached its summary",
	}
	ErrDailyLimitReached = &IntakeError{
		Status:  429,
		Code:    "DAILY_LIMIT_REACHED",
		Message: "Daily session limit reached, try again tomorrow",
	}
)

// NewInvalidDescriptionError is returned when the gibberish heuristic
// refuses a description before any model call happens.
func NewInvalidDescriptionError(reason string) *IntakeError {
	return &IntakeError{
		Status:  422,
		Code:    "INVALID_DESCRIPTION",
		Message: fmt.Sprintf("Description rejected: %s", reason),
	}
}

// OracleRejectionError is returned when the model classifies the
// description as invalid at the start of a session.
type OracleRejectionError struct {
	ReasonType string
	Message    string
}

func (e *OracleRejectionError) Error() string {
	return e.Message
}

func (e *OracleRejectionError) HTTPStatus() int {
	return 422
}

func (e *OracleRejectionError) ErrorCode() string {
	return "DESCRIPTION_REJECTED"
}
