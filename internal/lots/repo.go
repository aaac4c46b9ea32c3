package lots

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/platform/db"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Repository defines persistence operations for lots.
type Repository interface {
	List(ctx context.Context, scope authz.Scope, complexID *int64, page shared.Page) ([]Lot, int, error)
	FindByID(ctx context.Context, id int64, scope authz.Scope) (*Lot, error)
	ComplexOrg(ctx context.Context, complexID int64) (int64, error)
	Create(ctx context.Context, input CreateInput) (*Lot, error)
	Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) error
}

// PGRepository implements Repository using PostgreSQL. The org of a lot
// lives on its complex, so org scoping joins through complexes.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

var lotScopeFields = map[string]string{
	"org_id": "c.org_id",
}

const lotColumns = `l.id, l.complex_id, l.occupier, l.classification, l.storeys, l.characteristics,
       l.floor_area, l.land_area, l.build_date, l.address1, l.address2, l.suburb, l.state,
       l.postcode, l.gps_latitude, l.gps_longitude, l.deactivated_at`

func scanLot(row pgx.Row) (*Lot, error) {
	var l Lot
	err := row.Scan(&l.ID, &l.ComplexID, &l.Occupier, &l.Classification, &l.Storeys, &l.Characteristics,
		&l.FloorArea, &l.LandArea, &l.BuildDate, &l.Address1, &l.Address2, &l.Suburb, &l.State,
		&l.Postcode, &l.GPSLatitude, &l.GPSLongitude, &l.DeactivatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns lots visible through the scope, optionally narrowed to a
// complex, plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, scope authz.Scope, complexID *int64, page shared.Page) ([]Lot, int, error) {
	clause, args, err := db.ScopeClause(scope, lotScopeFields, nil)
	if err != nil {
		return nil, 0, err
	}
	if complexID != nil {
		args = append(args, *complexID)
		clause += fmt.Sprintf(" AND l.complex_id = $%d", len(args))
	}
	q := fmt.Sprintf(`
SELECT %s, count(*) OVER()
FROM lots l
JOIN complexes c ON c.id = l.complex_id
WHERE true%s
ORDER BY l.id
LIMIT $%d OFFSET $%d`, lotColumns, clause, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Lot
		total int
	)
	for rows.Next() {
		var l Lot
		if err := rows.Scan(&l.ID, &l.ComplexID, &l.Occupier, &l.Classification, &l.Storeys, &l.Characteristics,
			&l.FloorArea, &l.LandArea, &l.BuildDate, &l.Address1, &l.Address2, &l.Suburb, &l.State,
			&l.Postcode, &l.GPSLatitude, &l.GPSLongitude, &l.DeactivatedAt, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindByID fetches one lot inside the scope.
func (r *PGRepository) FindByID(ctx context.Context, id int64, scope authz.Scope) (*Lot, error) {
	args := []any{id}
	clause, args, err := db.ScopeClause(scope, lotScopeFields, args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
SELECT %s
FROM lots l
JOIN complexes c ON c.id = l.complex_id
WHERE l.id = $1%s`, lotColumns, clause)
	lot, err := scanLot(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.NotFound("Lot", id)
		}
		return nil, err
	}
	return lot, nil
}

// ComplexOrg returns the org owning a complex.
func (r *PGRepository) ComplexOrg(ctx context.Context, complexID int64) (int64, error) {
	var orgID int64
	err := r.pool.QueryRow(ctx, `SELECT org_id FROM complexes WHERE id = $1`, complexID).Scan(&orgID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, shared.NotFound("Complex", complexID)
		}
		return 0, err
	}
	return orgID, nil
}

// Create inserts a new lot.
func (r *PGRepository) Create(ctx context.Context, input CreateInput) (*Lot, error) {
	const q = `
INSERT INTO lots (complex_id, occupier, classification, storeys, characteristics, floor_area,
                  land_area, build_date, address1, address2, suburb, state, postcode,
                  gps_latitude, gps_longitude)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING id, complex_id, occupier, classification, storeys, characteristics,
          floor_area, land_area, build_date, address1, address2, suburb, state,
          postcode, gps_latitude, gps_longitude, deactivated_at`
	return scanLot(r.pool.QueryRow(ctx, q,
		input.ComplexID, input.Occupier, input.Classification, input.Storeys, input.Characteristics,
		input.FloorArea, input.LandArea, input.BuildDate, input.Address1, input.Address2,
		input.Suburb, input.State, input.Postcode, input.GPSLatitude, input.GPSLongitude))
}

// Update applies non-nil fields to a lot inside the scope.
func (r *PGRepository) Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) error {
	set, args := db.UpdateSet(nil,
		db.Assign("occupier", input.Occupier),
		db.Assign("classification", input.Classification),
		db.Assign("storeys", input.Storeys),
		db.Assign("characteristics", input.Characteristics),
		db.Assign("floor_area", input.FloorArea),
		db.Assign("land_area", input.LandArea),
		db.Assign("build_date", input.BuildDate),
		db.Assign("address1", input.Address1),
		db.Assign("address2", input.Address2),
		db.Assign("suburb", input.Suburb),
		db.Assign("state", input.State),
		db.Assign("postcode", input.Postcode),
		db.Assign("gps_latitude", input.GPSLatitude),
		db.Assign("gps_longitude", input.GPSLongitude),
		db.Assign("deactivated_at", input.DeactivatedAt),
	)
	if set == "" {
		_, err := r.FindByID(ctx, id, scope)
		return err
	}
	args = append(args, id)
	idIdx := len(args)
	clause, args, err := db.ScopeClause(scope, map[string]string{
		"org_id": "(SELECT c.org_id FROM complexes c WHERE c.id = lots.complex_id)",
	}, args)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE lots SET %s WHERE id = $%d%s`, set, idIdx, clause)
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("Lot", id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
