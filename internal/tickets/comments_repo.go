package tickets

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/platform/db"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Comment scoping joins the commenter for org constraints and the ticket
// for issuer constraints.
var commentScopeFields = map[string]string{
	"org_id":       "u.org_id",
	"issuer_id":    "t.issuer_id",
	"commenter_id": "tc.commenter_id",
}

const commentColumns = `tc.id, tc.ticket_id, tc.commenter_id, tc.comment, tc.added`

const commentFrom = `
FROM ticket_comments tc
JOIN tickets t ON t.id = tc.ticket_id
JOIN users u ON u.id = tc.commenter_id`

// ListComments returns comments of a ticket inside the scope, plus the
// unpaged total.
func (r *PGRepository) ListComments(ctx context.Context, ticketID int64, scope authz.Scope, page shared.Page) ([]Comment, int, error) {
	args := []any{ticketID}
	clause, args, err := db.ScopeClause(scope, commentScopeFields, args)
	if err != nil {
		return nil, 0, err
	}
	q := fmt.Sprintf(`SELECT %s, count(*) OVER()%s
WHERE tc.ticket_id = $1%s
ORDER BY tc.id
LIMIT $%d OFFSET $%d`, commentColumns, commentFrom, clause, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Comment
		total int
	)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.CommenterID, &c.Comment, &c.Added, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindCommentByID fetches one comment inside the scope.
func (r *PGRepository) FindCommentByID(ctx context.Context, id int64, scope authz.Scope) (*Comment, error) {
	args := []any{id}
	clause, args, err := db.ScopeClause(scope, commentScopeFields, args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s%s
WHERE tc.id = $1%s`, commentColumns, commentFrom, clause)
	var c Comment
	err = r.pool.QueryRow(ctx, q, args...).Scan(&c.ID, &c.TicketID, &c.CommenterID, &c.Comment, &c.Added)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.NotFound("TicketComment", id)
		}
		return nil, err
	}
	return &c, nil
}

// CreateComment inserts a comment stamped with the current time.
func (r *PGRepository) CreateComment(ctx context.Context, commenterID int64, input CommentCreateInput) (*Comment, error) {
	const q = `
INSERT INTO ticket_comments (ticket_id, commenter_id, comment, added)
VALUES ($1, $2, $3, now())
RETURNING id, ticket_id, commenter_id, comment, added`
	var c Comment
	err := r.pool.QueryRow(ctx, q, input.TicketID, commenterID, input.Comment).
		Scan(&c.ID, &c.TicketID, &c.CommenterID, &c.Comment, &c.Added)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateComment applies non-nil fields to a comment inside the scope.
func (r *PGRepository) UpdateComment(ctx context.Context, id int64, scope authz.Scope, input CommentUpdateInput) error {
	set, args := db.UpdateSet(nil, db.Assign("comment", input.Comment))
	if set == "" {
		_, err := r.FindCommentByID(ctx, id, scope)
		return err
	}
	args = append(args, id)
	idIdx := len(args)
	clause, args, err := db.ScopeClause(scope, map[string]string{
		"commenter_id": "ticket_comments.commenter_id",
	}, args)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE ticket_comments SET %s WHERE id = $%d%s`, set, idIdx, clause)
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("TicketComment", id)
	}
	return nil
}

// TicketInOrg reports whether a ticket's primary lot belongs to the org.
func (r *PGRepository) TicketInOrg(ctx context.Context, ticketID, orgID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM tickets t
  JOIN lots l ON l.id = t.primary_lot_id
  JOIN complexes c ON c.id = l.complex_id
  WHERE t.id = $1 AND c.org_id = $2
)`, ticketID, orgID).Scan(&exists)
	return exists, err
}

// TicketIssuedBy reports whether the user issued the ticket.
func (r *PGRepository) TicketIssuedBy(ctx context.Context, ticketID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1 AND issuer_id = $2)`, ticketID, userID).Scan(&exists)
	return exists, err
}

var _ CommentRepository = (*PGRepository)(nil)
