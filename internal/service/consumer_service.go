// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"project-intake-be/internal/dto"
	"project-intake-be/internal/pkg/mailer"
	"project-intake-be/internal/repository/specification"
	"project-intake-be/internal/repository/unitofwork"
	"project-intake-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	uowFactory      unitofwork.RepositoryFactory
	emailService    mailer.IEmailService
	reportRecipient string
	eventPublisher  EventPublisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	reportRecipient string,
	eventPublisher EventPublisher,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		uowFactory:      uowFactory,
		emailService:    emailService,
		reportRecipient: reportRecipient,
		eventPublisher:  eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SummarizedSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing summarized session: %s", payload.SessionId)

	sessionID, err := uuid.Parse(payload.SessionId)
	if err != nil {
		log.Printf("[ERROR] Invalid session id %q: %v", payload.SessionId, err)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.IntakeSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		log.Printf("[ERROR] Failed to fetch session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if session == nil {
		log.Printf("[ERROR] Session not found: %s", payload.SessionId)
		msg.Ack() // Deleted? Ack.
		return
	}

	questions, err := uow.IntakeQuestionRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "sequence"},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to fetch questions for %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	rows := make([]mailer.ReportRow, len(questions))
	for i, q := range questions {
		row := mailer.ReportRow{Question: q.Text, Skipped: q.Answer == nil}
		if q.Answer != nil {
			row.Answer = *q.Answer
		}
		rows[i] = row
	}

	var analyticsPayload map[string]interface{}
	if len(session.Analytics) > 0 {
		if err := json.Unmarshal(session.Analytics, &analyticsPayload); err != nil {
			log.Printf("[WARN] Unreadable analytics blob for %s: %v", payload.SessionId, err)
		}
	}

	if cs.reportRecipient != "" {
		if err := cs.emailService.SendSummaryReport(
			cs.reportRecipient, session.Id.String(), session.Description, rows, analyticsPayload,
		); err != nil {
			log.Printf("[ERROR] Failed to send summary report for %s: %v", payload.SessionId, err)
			msg.Nack()
			return
		}
	}

	if cs.eventPublisher != nil {
		evt := events.NewIntakeCompletedEvent(session.Id.String(), analyticsPayload)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish completion event for %s: %v", payload.SessionId, err)
			// Event bus trouble should not hold the queue hostage.
		}
	}

	log.Printf("[SUCCESS] Summarized session processed: %s", payload.SessionId)
	msg.Ack()
}
