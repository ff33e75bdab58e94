package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/core/events"
)

// EventHandler turns domain events into notification mail. Handlers always
// return nil so the event bus never retries or escalates a failed mail; the
// failure is logged and dropped.
type EventHandler struct {
	mailer Mailer
	sender Sender
	logger *slog.Logger
}

func NewEventHandler(mailer Mailer, sender Sender, logger *slog.Logger) *EventHandler {
	if sender.Address == "" {
		sender.Address = "hr@enkefalos.com"
	}
	if sender.Name == "" {
		sender.Name = "HR Team"
	}
	return &EventHandler{
		mailer: mailer,
		sender: sender,
		logger: logger,
	}
}

// RegisterHandlers subscribes the notification mails to the event bus.
func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeEmployeeCreated, h.HandleEmployeeCreated)
	bus.Subscribe(events.EventTypeReviewGraded, h.HandleReviewGraded)
}

// HandleEmployeeCreated sends the onboarding welcome mail.
func (h *EventHandler) HandleEmployeeCreated(_ context.Context, event events.Event) error {
	created, ok := event.(*events.EmployeeCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}
	if created.Email == "" {
		return nil
	}

	body := fmt.Sprintf(`Welcome %s,

You are now a part of Enkefalos

We are glad to have you

Your Details:
Employee ID: ENK00%d
Role: %s
Department: %s

Best Regards,
%s`, created.FullName, created.EmployeeID, created.Role, created.Department, h.sender.Name)

	msg := Message{
		From:      h.sender.Address,
		Recipient: created.Email,
		Subject:   "Happy Onboarding",
		Body:      body,
	}
	if err := h.mailer.Send(msg); err != nil {
		h.logger.Error("failed to send welcome mail",
			"employee_id", created.EmployeeID,
			"error", err)
	}
	return nil
}

// HandleReviewGraded tells the reviewee their review is ready.
func (h *EventHandler) HandleReviewGraded(_ context.Context, event events.Event) error {
	graded, ok := event.(*events.ReviewGradedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}
	if graded.Email == "" {
		return nil
	}

	score := "not available"
	if graded.AverageScore != nil {
		score = fmt.Sprintf("%.2f", *graded.AverageScore)
	}
	signedBy := graded.GradedByName
	if signedBy == "" {
		signedBy = "HR"
	}

	body := fmt.Sprintf(`Hello, %s,

Your performance review has been graded.

Overall Score: %s / 5.0

Login to view your grades.

Best Regards,
%s`, graded.FullName, score, signedBy)

	msg := Message{
		From:      h.sender.Address,
		Recipient: graded.Email,
		Subject:   "Your Performance Review is Ready",
		Body:      body,
	}
	if err := h.mailer.Send(msg); err != nil {
		h.logger.Error("failed to send graded review mail",
			"review_id", graded.ReviewID,
			"error", err)
	}
	return nil
}
