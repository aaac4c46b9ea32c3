package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/platform/db"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Repository defines persistence operations for tickets.
type Repository interface {
	List(ctx context.Context, scope authz.Scope, filter ListFilter, page shared.Page) ([]Ticket, int, error)
	FindByID(ctx context.Context, id int64, scope authz.Scope) (*Ticket, error)
	Create(ctx context.Context, issuerID int64, input CreateInput) (*Ticket, error)
	Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) (*Ticket, error)
	LotInOrg(ctx context.Context, lotID, orgID int64) (bool, error)
	LotOfUser(ctx context.Context, lotID, userID int64) (bool, error)
	ManagerEmail(ctx context.Context, orgID int64) (string, error)
	UserEmail(ctx context.Context, userID int64) (string, error)
}

// CommentRepository defines persistence operations for ticket comments.
type CommentRepository interface {
	ListComments(ctx context.Context, ticketID int64, scope authz.Scope, page shared.Page) ([]Comment, int, error)
	FindCommentByID(ctx context.Context, id int64, scope authz.Scope) (*Comment, error)
	CreateComment(ctx context.Context, commenterID int64, input CommentCreateInput) (*Comment, error)
	UpdateComment(ctx context.Context, id int64, scope authz.Scope, input CommentUpdateInput) error
	TicketInOrg(ctx context.Context, ticketID, orgID int64) (bool, error)
	TicketIssuedBy(ctx context.Context, ticketID, userID int64) (bool, error)
}

// PGRepository implements Repository and CommentRepository using
// PostgreSQL. The org of a ticket lives on its primary lot's complex.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

var ticketScopeFields = map[string]string{
	"org_id":    "c.org_id",
	"issuer_id": "t.issuer_id",
}

const ticketColumns = `t.id, t.primary_lot_id, t.ticket_type, t.problem_category, t.title, t.urgent,
       t.affects_multiple_properties, t.description, t.issued, t.closed, t.issuer_id, t.executive_id,
       ts.status`

const ticketFrom = `
FROM tickets t
JOIN ticket_statuses ts ON ts.id = t.ticket_status_id
JOIN lots l ON l.id = t.primary_lot_id
JOIN complexes c ON c.id = l.complex_id`

func scanTicket(row pgx.Row, extra ...any) (*Ticket, error) {
	var t Ticket
	dest := []any{&t.ID, &t.PrimaryLotID, &t.TicketType, &t.ProblemCategory, &t.Title, &t.IsUrgent,
		&t.AffectsMultipleProperties, &t.Description, &t.Issued, &t.Closed, &t.IssuerID, &t.ExecutiveID,
		&t.TicketStatus}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) ticketLots(ctx context.Context, ticketID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT lot_id FROM ticket_lots WHERE ticket_id = $1 ORDER BY lot_id`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// List returns tickets visible through the scope, narrowed by the filter,
// plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, scope authz.Scope, filter ListFilter, page shared.Page) ([]Ticket, int, error) {
	clause, args, err := db.ScopeClause(scope, ticketScopeFields, nil)
	if err != nil {
		return nil, 0, err
	}
	if filter.ComplexID != nil {
		args = append(args, *filter.ComplexID)
		clause += fmt.Sprintf(" AND c.id = $%d", len(args))
	}
	if filter.PrimaryLotID != nil {
		args = append(args, *filter.PrimaryLotID)
		clause += fmt.Sprintf(" AND t.primary_lot_id = $%d", len(args))
	}
	if filter.LotID != nil {
		args = append(args, *filter.LotID)
		clause += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM ticket_lots tl WHERE tl.ticket_id = t.id AND tl.lot_id = $%d)", len(args))
	}
	q := fmt.Sprintf(`SELECT %s, count(*) OVER()%s
WHERE true%s
ORDER BY t.id
LIMIT $%d OFFSET $%d`, ticketColumns, ticketFrom, clause, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Ticket
		total int
	)
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.PrimaryLotID, &t.TicketType, &t.ProblemCategory, &t.Title, &t.IsUrgent,
			&t.AffectsMultipleProperties, &t.Description, &t.Issued, &t.Closed, &t.IssuerID, &t.ExecutiveID,
			&t.TicketStatus, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range out {
		lots, err := r.ticketLots(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Lots = lots
	}
	return out, total, nil
}

// FindByID fetches one ticket inside the scope, with its lot ids.
func (r *PGRepository) FindByID(ctx context.Context, id int64, scope authz.Scope) (*Ticket, error) {
	args := []any{id}
	clause, args, err := db.ScopeClause(scope, ticketScopeFields, args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s%s
WHERE t.id = $1%s`, ticketColumns, ticketFrom, clause)
	t, err := scanTicket(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.NotFound("Ticket", id)
		}
		return nil, err
	}
	if t.Lots, err = r.ticketLots(ctx, id); err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a ticket in OPEN status and links its lots. The primary
// lot is always linked even when the input omits it.
func (r *PGRepository) Create(ctx context.Context, issuerID int64, input CreateInput) (*Ticket, error) {
	lots := input.Lots
	linked := false
	for _, id := range lots {
		if id == input.PrimaryLotID {
			linked = true
			break
		}
	}
	if !linked {
		lots = append(lots, input.PrimaryLotID)
	}

	var out *Ticket
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const q = `
INSERT INTO tickets (primary_lot_id, ticket_type, problem_category, title, urgent,
                     affects_multiple_properties, description, issued, issuer_id, executive_id,
                     ticket_status_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), $8, $9,
        (SELECT id FROM ticket_statuses WHERE status = $10))
RETURNING id, primary_lot_id, ticket_type, problem_category, title, urgent,
          affects_multiple_properties, description, issued, closed, issuer_id, executive_id, $10`
		t, err := scanTicket(tx.QueryRow(ctx, q,
			input.PrimaryLotID, input.TicketType, input.ProblemCategory, input.Title, input.IsUrgent,
			input.AffectsMultipleProperties, input.Description, issuerID, input.ExecutiveID, StatusOpen))
		if err != nil {
			return err
		}
		for _, lotID := range lots {
			if _, err := tx.Exec(ctx, `INSERT INTO ticket_lots (ticket_id, lot_id) VALUES ($1, $2)`, t.ID, lotID); err != nil {
				return err
			}
		}
		t.Lots = lots
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies non-nil fields to a ticket inside the scope and returns
// the updated row. A status change to CLOSED stamps the closed time; any
// other status clears it.
func (r *PGRepository) Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) (*Ticket, error) {
	assigns := []db.Assignment{
		db.Assign("ticket_type", input.TicketType),
		db.Assign("problem_category", input.ProblemCategory),
		db.Assign("title", input.Title),
		db.Assign("urgent", input.IsUrgent),
		db.Assign("affects_multiple_properties", input.AffectsMultipleProperties),
		db.Assign("description", input.Description),
		db.Assign("executive_id", input.ExecutiveID),
	}
	if input.TicketStatus != nil {
		var statusID int64
		err := r.pool.QueryRow(ctx, `SELECT id FROM ticket_statuses WHERE status = $1`, *input.TicketStatus).Scan(&statusID)
		if err != nil {
			return nil, err
		}
		var closed any
		if *input.TicketStatus == StatusClosed {
			closed = time.Now()
		}
		assigns = append(assigns,
			db.AssignValue("ticket_status_id", statusID),
			db.AssignValue("closed", closed))
	}
	set, args := db.UpdateSet(nil, assigns...)
	if set == "" {
		return r.FindByID(ctx, id, scope)
	}
	args = append(args, id)
	idIdx := len(args)
	clause, args, err := db.ScopeClause(scope, map[string]string{
		"org_id": "(SELECT c.org_id FROM lots l JOIN complexes c ON c.id = l.complex_id WHERE l.id = tickets.primary_lot_id)",
	}, args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`UPDATE tickets SET %s WHERE id = $%d%s`, set, idIdx, clause)
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.NotFound("Ticket", id)
	}
	return r.FindByID(ctx, id, authz.Unrestricted())
}

// LotInOrg reports whether a lot belongs to a complex of the org.
func (r *PGRepository) LotInOrg(ctx context.Context, lotID, orgID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM lots l
  JOIN complexes c ON c.id = l.complex_id
  WHERE l.id = $1 AND c.org_id = $2
)`, lotID, orgID).Scan(&exists)
	return exists, err
}

// LotOfUser reports whether the user holds a role on the lot.
func (r *PGRepository) LotOfUser(ctx context.Context, lotID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM user_lot_roles ulr
  WHERE ulr.lot_id = $1 AND ulr.user_id = $2
)`, lotID, userID).Scan(&exists)
	return exists, err
}

// ManagerEmail returns the primary email of a manager in the org, or ""
// when the org has no manager with an email.
func (r *PGRepository) ManagerEmail(ctx context.Context, orgID int64) (string, error) {
	var email *string
	err := r.pool.QueryRow(ctx, `
SELECT u.primary_email FROM users u
JOIN system_roles sr ON sr.id = u.system_role_id
WHERE u.org_id = $1 AND sr.name = 'MANAGER'
ORDER BY u.id
LIMIT 1`, orgID).Scan(&email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	if email == nil {
		return "", nil
	}
	return *email, nil
}

// UserEmail returns the primary email of a user, or "" when unset.
func (r *PGRepository) UserEmail(ctx context.Context, userID int64) (string, error) {
	var email *string
	err := r.pool.QueryRow(ctx, `SELECT primary_email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	if email == nil {
		return "", nil
	}
	return *email, nil
}

var _ Repository = (*PGRepository)(nil)
