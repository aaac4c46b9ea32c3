package orgs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/platform/db"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Repository defines persistence operations for orgs.
type Repository interface {
	List(ctx context.Context, scope authz.Scope, page shared.Page) ([]Org, int, error)
	FindByID(ctx context.Context, id int64, scope authz.Scope) (*Org, error)
	Create(ctx context.Context, input CreateInput) (*Org, error)
	Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

var orgScopeFields = map[string]string{
	"id": "o.id",
}

const orgColumns = `o.id, o.trading_name, o.company_name, o.abn, o.address1, o.address2, o.suburb, o.state, o.postcode`

func scanOrg(row pgx.Row) (*Org, error) {
	var o Org
	err := row.Scan(&o.ID, &o.TradingName, &o.CompanyName, &o.ABN,
		&o.Address1, &o.Address2, &o.Suburb, &o.State, &o.Postcode)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orgs visible through the scope plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, scope authz.Scope, page shared.Page) ([]Org, int, error) {
	clause, args, err := db.ScopeClause(scope, orgScopeFields, nil)
	if err != nil {
		return nil, 0, err
	}
	q := fmt.Sprintf(`SELECT %s, count(*) OVER() FROM orgs o WHERE true%s ORDER BY o.id LIMIT $%d OFFSET $%d`,
		orgColumns, clause, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Org
		total int
	)
	for rows.Next() {
		var o Org
		if err := rows.Scan(&o.ID, &o.TradingName, &o.CompanyName, &o.ABN,
			&o.Address1, &o.Address2, &o.Suburb, &o.State, &o.Postcode, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindByID fetches one org inside the scope; rows outside it read as
// missing.
func (r *PGRepository) FindByID(ctx context.Context, id int64, scope authz.Scope) (*Org, error) {
	args := []any{id}
	clause, args, err := db.ScopeClause(scope, orgScopeFields, args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM orgs o WHERE o.id = $1%s`, orgColumns, clause)
	org, err := scanOrg(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.NotFound("Org", id)
		}
		return nil, err
	}
	return org, nil
}

// Create inserts a new org.
func (r *PGRepository) Create(ctx context.Context, input CreateInput) (*Org, error) {
	const q = `
INSERT INTO orgs (trading_name, company_name, abn, address1, address2, suburb, state, postcode)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, trading_name, company_name, abn, address1, address2, suburb, state, postcode`
	org, err := scanOrg(r.pool.QueryRow(ctx, q,
		input.TradingName, input.CompanyName, input.ABN,
		input.Address1, input.Address2, input.Suburb, input.State, input.Postcode))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: abn already registered", shared.ErrDuplicate)
		}
		return nil, err
	}
	return org, nil
}

// Update applies non-nil fields to an org inside the scope. A target
// outside the scope reads as missing.
func (r *PGRepository) Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) error {
	set, args := db.UpdateSet(nil,
		db.Assign("trading_name", input.TradingName),
		db.Assign("company_name", input.CompanyName),
		db.Assign("abn", input.ABN),
		db.Assign("address1", input.Address1),
		db.Assign("address2", input.Address2),
		db.Assign("suburb", input.Suburb),
		db.Assign("state", input.State),
		db.Assign("postcode", input.Postcode),
	)
	if set == "" {
		_, err := r.FindByID(ctx, id, scope)
		return err
	}
	args = append(args, id)
	idIdx := len(args)
	clause, args, err := db.ScopeClause(scope, map[string]string{"id": "id"}, args)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE orgs SET %s WHERE id = $%d%s`, set, idIdx, clause)
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Org", id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
