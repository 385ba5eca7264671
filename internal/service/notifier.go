package service

import (
	"context"
	"fmt"
	"strconv"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/logger"
	"sacco-backend/internal/repository"
)

// notifier turns engine events into in-app notification rows and best-effort
// emails. Delivery failures are logged and never surfaced to the operation
// that emitted the event.
type notifier struct {
	noteRepo repository.NotificationRepository
	email    EmailSender
}

func NewNotifier(noteRepo repository.NotificationRepository, email EmailSender) Notifier {
	return &notifier{noteRepo: noteRepo, email: email}
}

func (n *notifier) LoanStatusChanged(ctx context.Context, ev domain.LoanStatusEvent) {
	message := fmt.Sprintf("Loan #%d is now %s. Outstanding balance: %d.", ev.LoanID, ev.NewStatus, ev.Outstanding)
	note := &domain.Notification{
		AccountID: ev.AccountID,
		Title:     "Loan status update",
		Message:   message,
		Attributes: map[string]string{
			"type":    "LOAN_STATUS_CHANGED",
			"loan_id": strconv.Itoa(int(ev.LoanID)),
			"status":  string(ev.NewStatus),
		},
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to store loan status notification", "loan_id", ev.LoanID, "error", err)
	}
	if err := n.email.Send(ctx, ev.MemberEmail, ev.MemberName, "Loan status update", message); err != nil {
		logger.Error("Failed to email loan status notification", "loan_id", ev.LoanID, "error", err)
	}
}

func (n *notifier) ReminderCreated(ctx context.Context, ev domain.ReminderEvent) {
	note := &domain.Notification{
		AccountID: ev.AccountID,
		Title:     ev.Subject,
		Message:   ev.Detail,
		Attributes: map[string]string{
			"type":    "REMINDER_CREATED",
			"loan_id": strconv.Itoa(int(ev.LoanID)),
		},
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to store reminder notification", "loan_id", ev.LoanID, "error", err)
	}
	if err := n.email.Send(ctx, ev.MemberEmail, ev.MemberName, ev.Subject, ev.Detail); err != nil {
		logger.Error("Failed to email reminder notification", "loan_id", ev.LoanID, "error", err)
	}
}
