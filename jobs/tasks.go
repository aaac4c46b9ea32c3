package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskTypeTicketCreated notifies an org manager about a new ticket.
	TaskTypeTicketCreated = "notify:ticket_created"
	// TaskTypeTicketUpdated notifies the issuer that their ticket changed.
	TaskTypeTicketUpdated = "notify:ticket_updated"
	// TaskTypeUserWelcome delivers the generated password to a new user.
	TaskTypeUserWelcome = "notify:user_welcome"
)

// TicketCreatedPayload describes a new-ticket notification.
type TicketCreatedPayload struct {
	TicketID     int64  `json:"ticketId"`
	TicketType   string `json:"ticketType"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ManagerEmail string `json:"managerEmail"`
}

// TicketUpdatedPayload describes a ticket-changed notification.
type TicketUpdatedPayload struct {
	TicketID    int64  `json:"ticketId"`
	Title       string `json:"title"`
	IssuerEmail string `json:"issuerEmail"`
}

// UserWelcomePayload describes a welcome email with the generated password.
type UserWelcomePayload struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewTicketCreatedTask constructs an Asynq task.
func NewTicketCreatedTask(payload TicketCreatedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeTicketCreated, data), nil
}

// NewTicketUpdatedTask constructs an Asynq task.
func NewTicketUpdatedTask(payload TicketUpdatedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeTicketUpdated, data), nil
}

// NewUserWelcomeTask constructs an Asynq task.
func NewUserWelcomeTask(payload UserWelcomePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeUserWelcome, data), nil
}

// Notifier processes notification tasks. Delivery is logged; an SMTP
// integration can replace the logger without touching the enqueue side.
type Notifier struct {
	logger *slog.Logger
}

// NewNotifier constructs a Notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// HandleTicketCreated processes TaskTypeTicketCreated tasks.
func (n *Notifier) HandleTicketCreated(ctx context.Context, t *asynq.Task) error {
	var payload TicketCreatedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	n.logger.Info("notify ticket created",
		slog.Int64("ticket_id", payload.TicketID),
		slog.String("to", payload.ManagerEmail),
		slog.String("title", payload.Title))
	return nil
}

// HandleTicketUpdated processes TaskTypeTicketUpdated tasks.
func (n *Notifier) HandleTicketUpdated(ctx context.Context, t *asynq.Task) error {
	var payload TicketUpdatedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	n.logger.Info("notify ticket updated",
		slog.Int64("ticket_id", payload.TicketID),
		slog.String("to", payload.IssuerEmail),
		slog.String("title", payload.Title))
	return nil
}

// HandleUserWelcome processes TaskTypeUserWelcome tasks.
func (n *Notifier) HandleUserWelcome(ctx context.Context, t *asynq.Task) error {
	var payload UserWelcomePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	n.logger.Info("notify user welcome",
		slog.Int64("user_id", payload.UserID),
		slog.String("to", payload.Email))
	return nil
}
