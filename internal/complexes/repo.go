package complexes

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/platform/db"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Repository defines persistence operations for complexes.
type Repository interface {
	List(ctx context.Context, scope authz.Scope, page shared.Page) ([]Complex, int, error)
	FindByID(ctx context.Context, id int64, scope authz.Scope) (*Complex, error)
	Create(ctx context.Context, input CreateInput) (*Complex, error)
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

var complexScopeFields = map[string]string{
	"org_id": "c.org_id",
}

const complexColumns = `c.id, c.org_id, c.strata_plan, c.name, c.sp_num, c.address1, c.address2,
       c.suburb, c.state, c.postcode, c.abn, c.tfn, c.classification, c.storeys,
       c.characteristics, c.total_floor_area, c.total_land_area, c.build_date, c.builder,
       c.deactivated_at`

func scanComplex(row pgx.Row) (*Complex, error) {
	var c Complex
	err := row.Scan(&c.ID, &c.OrgID, &c.StrataPlan, &c.Name, &c.SPNum, &c.Address1, &c.Address2,
		&c.Suburb, &c.State, &c.Postcode, &c.ABN, &c.TFN, &c.Classification, &c.Storeys,
		&c.Characteristics, &c.TotalFloorArea, &c.TotalLandArea, &c.BuildDate, &c.Builder,
		&c.DeactivatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns complexes visible through the scope plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, scope authz.Scope, page shared.Page) ([]Complex, int, error) {
	clause, args, err := db.ScopeClause(scope, complexScopeFields, nil)
	if err != nil {
		return nil, 0, err
	}
	q := fmt.Sprintf(`SELECT %s, count(*) OVER() FROM complexes c WHERE true%s ORDER BY c.id LIMIT $%d OFFSET $%d`,
		complexColumns, clause, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Complex
		total int
	)
	for rows.Next() {
		var c Complex
		if err := rows.Scan(&c.ID, &c.OrgID, &c.StrataPlan, &c.Name, &c.SPNum, &c.Address1, &c.Address2,
			&c.Suburb, &c.State, &c.Postcode, &c.ABN, &c.TFN, &c.Classification, &c.Storeys,
			&c.Characteristics, &c.TotalFloorArea, &c.TotalLandArea, &c.BuildDate, &c.Builder,
			&c.DeactivatedAt, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindByID fetches one complex inside the scope.
func (r *PGRepository) FindByID(ctx context.Context, id int64, scope authz.Scope) (*Complex, error) {
	args := []any{id}
	clause, args, err := db.ScopeClause(scope, complexScopeFields, args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM complexes c WHERE c.id = $1%s`, complexColumns, clause)
	c, err := scanComplex(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.NotFound("Complex", id)
		}
		return nil, err
	}
	return c, nil
}

// Create inserts a new complex.
func (r *PGRepository) Create(ctx context.Context, input CreateInput) (*Complex, error) {
	q := fmt.Sprintf(`
INSERT INTO complexes (org_id, strata_plan, name, sp_num, address1, address2, suburb, state,
                       postcode, abn, tfn, classification, storeys, characteristics,
                       total_floor_area, total_land_area, build_date, builder)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING %s`, complexColumnsBare)
	return scanComplex(r.pool.QueryRow(ctx, q,
		input.OrgID, input.StrataPlan, input.Name, input.SPNum, input.Address1, input.Address2,
		input.Suburb, input.State, input.Postcode, input.ABN, input.TFN, input.Classification,
		input.Storeys, input.Characteristics, input.TotalFloorArea, input.TotalLandArea,
		input.BuildDate, input.Builder))
}

// complexColumnsBare is the column list without a table alias, for RETURNING.
const complexColumnsBare = `id, org_id, strata_plan, name, sp_num, address1, address2,
       suburb, state, postcode, abn, tfn, classification, storeys,
       characteristics, total_floor_area, total_land_area, build_date, builder,
       deactivated_at`

// Update applies non-nil fields to a complex inside the scope.
func (r *PGRepository) Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) error {
	set, args := db.UpdateSet(nil,
		db.Assign("strata_plan", input.StrataPlan),
		db.Assign("name", input.Name),
		db.Assign("sp_num", input.SPNum),
		db.Assign("address1", input.Address1),
		db.Assign("address2", input.Address2),
		db.Assign("suburb", input.Suburb),
		db.Assign("state", input.State),
		db.Assign("postcode", input.Postcode),
		db.Assign("abn", input.ABN),
		db.Assign("tfn", input.TFN),
		db.Assign("classification", input.Classification),
		db.Assign("storeys", input.Storeys),
		db.Assign("characteristics", input.Characteristics),
		db.Assign("total_floor_area", input.TotalFloorArea),
		db.Assign("total_land_area", input.TotalLandArea),
		db.Assign("build_date", input.BuildDate),
		db.Assign("builder", input.Builder),
		db.Assign("deactivated_at", input.DeactivatedAt),
	)
	if set == "" {
		_, err := r.FindByID(ctx, id, scope)
		return err
	}
	args = append(args, id)
	idIdx := len(args)
	clause, args, err := db.ScopeClause(scope, map[string]string{"org_id": "org_id"}, args)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE complexes SET %s WHERE id = $%d%s`, set, idIdx, clause)
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Complex", id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
