package tickets

import "time"

// Predefined ticket statuses.
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Ticket is a maintenance request raised against a lot. The primary lot
// always appears in Lots.
type Ticket struct {
	ID                        int64      `json:"id"`
	PrimaryLotID              int64      `json:"primaryLotId"`
	TicketType                string     `json:"ticketType"`
	ProblemCategory           *string    `json:"problemCategory,omitempty"`
	Title                     string     `json:"title"`
	IsUrgent                  bool       `json:"isUrgent"`
	AffectsMultipleProperties bool       `json:"affectsMultipleProperties"`
	Description               *string    `json:"description,omitempty"`
	Issued                    time.Time  `json:"issued"`
	Closed                    *time.Time `json:"closed,omitempty"`
	IssuerID                  int64      `json:"issuerId"`
	ExecutiveID               *int64     `json:"executiveId,omitempty"`
	TicketStatus              string     `json:"ticketStatus"`
	Lots                      []int64    `json:"lots,omitempty"`
}

// Comment is a ticket comment.
type Comment struct {
	ID          int64     `json:"id"`
	TicketID    int64     `json:"ticketId"`
	CommenterID int64     `json:"commenterId"`
	Comment     string    `json:"comment"`
	Added       time.Time `json:"added"`
}

// CreateInput carries the fields of a new ticket. The issuer and the
// issued timestamp come from the server, never from the client.
type CreateInput struct {
	PrimaryLotID              int64   `json:"primaryLotId" validate:"required,min=1"`
	TicketType                string  `json:"ticketType" validate:"required,oneof=Problem Question 'Community notice'"`
	ProblemCategory           *string `json:"problemCategory" validate:"omitempty,oneof=Plumbing Structural 'Communal Areas' Electrical"`
	Title                     string  `json:"title" validate:"required,max=255"`
	IsUrgent                  bool    `json:"isUrgent"`
	AffectsMultipleProperties bool    `json:"affectsMultipleProperties"`
	Description               *string `json:"description"`
	ExecutiveID               *int64  `json:"executiveId" validate:"omitempty,min=1"`
	Lots                      []int64 `json:"lots" validate:"dive,min=1"`
}

// UpdateInput carries a partial ticket update; nil fields stay untouched.
// The primary lot, issuer, and issued timestamp never change. Setting the
// status to CLOSED stamps the closed time; any other status clears it.
type UpdateInput struct {
	TicketType                *string `json:"ticketType" validate:"omitempty,oneof=Problem Question 'Community notice'"`
	ProblemCategory           *string `json:"problemCategory" validate:"omitempty,oneof=Plumbing Structural 'Communal Areas' Electrical"`
	Title                     *string `json:"title" validate:"omitempty,max=255"`
	IsUrgent                  *bool   `json:"isUrgent"`
	AffectsMultipleProperties *bool   `json:"affectsMultipleProperties"`
	Description               *string `json:"description"`
	ExecutiveID               *int64  `json:"executiveId" validate:"omitempty,min=1"`
	TicketStatus              *string `json:"ticketStatus" validate:"omitempty,oneof=OPEN CLOSED"`
}

// ListFilter narrows a ticket listing.
type ListFilter struct {
	ComplexID    *int64
	PrimaryLotID *int64
	LotID        *int64
}

// CommentCreateInput carries the fields of a new comment. The commenter
// and the added timestamp come from the server.
type CommentCreateInput struct {
	TicketID int64  `json:"ticketId" validate:"required,min=1"`
	Comment  string `json:"comment" validate:"required"`
}

// CommentUpdateInput carries a partial comment update. The ticket and
// commenter never change.
type CommentUpdateInput struct {
	Comment *string `json:"comment"`
}
