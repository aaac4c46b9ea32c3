package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/platform/db"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Repository defines persistence operations for users.
type Repository interface {
	List(ctx context.Context, scope authz.Scope, page shared.Page) ([]User, int, error)
	FindByID(ctx context.Context, id int64, scope authz.Scope) (*User, error)
	Create(ctx context.Context, input CreateInput, passwordHash string) (*User, error)
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

var userScopeFields = map[string]string{
	"org_id": "u.org_id",
	"id":     "u.id",
}

const userColumns = `u.id, u.first_name, u.title, u.sur_name, u.company, u.abn, u.tfn,
       u.primary_email, u.secondary_email, u.date_of_birth, u.home_phone, u.mobile_phone,
       u.fax, u.primary_address, u.postal_address, sr.name, u.org_id`

const userFrom = `FROM users u
JOIN system_roles sr ON sr.id = u.system_role_id`

func scanUser(row pgx.Row) (*User, error) {
	var (
		u    User
		role string
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.Title, &u.SurName, &u.Company, &u.ABN, &u.TFN,
		&u.PrimaryEmail, &u.SecondaryEmail, &u.DateOfBirth, &u.HomePhone, &u.MobilePhone,
		&u.Fax, &u.PrimaryAddress, &u.PostalAddress, &role, &u.OrgID)
	if err != nil {
		return nil, err
	}
	u.SystemRole = authz.Role(role)
	return &u, nil
}

// List returns users visible through the scope plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, scope authz.Scope, page shared.Page) ([]User, int, error) {
	clause, args, err := db.ScopeClause(scope, userScopeFields, nil)
	if err != nil {
		return nil, 0, err
	}
	q := fmt.Sprintf(`SELECT %s, count(*) OVER() %s WHERE true%s ORDER BY u.id LIMIT $%d OFFSET $%d`,
		userColumns, userFrom, clause, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []User
		total int
	)
	for rows.Next() {
		var (
			u    User
			role string
		)
		if err := rows.Scan(&u.ID, &u.FirstName, &u.Title, &u.SurName, &u.Company, &u.ABN, &u.TFN,
			&u.PrimaryEmail, &u.SecondaryEmail, &u.DateOfBirth, &u.HomePhone, &u.MobilePhone,
			&u.Fax, &u.PrimaryAddress, &u.PostalAddress, &role, &u.OrgID, &total); err != nil {
			return nil, 0, err
		}
		u.SystemRole = authz.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindByID fetches one user inside the scope; rows outside it read as
// missing.
func (r *PGRepository) FindByID(ctx context.Context, id int64, scope authz.Scope) (*User, error) {
	args := []any{id}
	clause, args, err := db.ScopeClause(scope, userScopeFields, args)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s %s WHERE u.id = $1%s`, userColumns, userFrom, clause)
	u, err := scanUser(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.NotFound("User", id)
		}
		return nil, err
	}
	return u, nil
}

// Create inserts a new user with an already-hashed password.
func (r *PGRepository) Create(ctx context.Context, input CreateInput, passwordHash string) (*User, error) {
	const q = `
INSERT INTO users (system_role_id, org_id, first_name, title, sur_name, company, abn, tfn,
                   primary_email, secondary_email, date_of_birth, home_phone, mobile_phone,
                   fax, primary_address, postal_address, password_hash)
VALUES ((SELECT id FROM system_roles WHERE name = $1),
        $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id`
	u := User{
		FirstName:      input.FirstName,
		Title:          input.Title,
		SurName:        input.SurName,
		Company:        input.Company,
		ABN:            input.ABN,
		TFN:            input.TFN,
		PrimaryEmail:   input.PrimaryEmail,
		SecondaryEmail: input.SecondaryEmail,
		DateOfBirth:    input.DateOfBirth,
		HomePhone:      input.HomePhone,
		MobilePhone:    input.MobilePhone,
		Fax:            input.Fax,
		PrimaryAddress: input.PrimaryAddress,
		PostalAddress:  input.PostalAddress,
		SystemRole:     authz.Role(input.SystemRole),
		OrgID:          input.OrgID,
	}
	err := r.pool.QueryRow(ctx, q,
		input.SystemRole, input.OrgID, input.FirstName, input.Title, input.SurName,
		input.Company, input.ABN, input.TFN, input.PrimaryEmail, input.SecondaryEmail,
		input.DateOfBirth, input.HomePhone, input.MobilePhone, input.Fax,
		input.PrimaryAddress, input.PostalAddress, passwordHash).Scan(&u.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: login identifier already in use", shared.ErrDuplicate)
		}
		return nil, err
	}
	return &u, nil
}

// Update applies non-nil fields to a user inside the scope. A target
// outside the scope reads as missing.
func (r *PGRepository) Update(ctx context.Context, id int64, scope authz.Scope, input UpdateInput) error {
	assigns := []db.Assignment{
		db.Assign("org_id", input.OrgID),
		db.Assign("first_name", input.FirstName),
		db.Assign("title", input.Title),
		db.Assign("sur_name", input.SurName),
		db.Assign("company", input.Company),
		db.Assign("abn", input.ABN),
		db.Assign("tfn", input.TFN),
		db.Assign("primary_email", input.PrimaryEmail),
		db.Assign("secondary_email", input.SecondaryEmail),
		db.Assign("date_of_birth", input.DateOfBirth),
		db.Assign("home_phone", input.HomePhone),
		db.Assign("mobile_phone", input.MobilePhone),
		db.Assign("fax", input.Fax),
		db.Assign("primary_address", input.PrimaryAddress),
		db.Assign("postal_address", input.PostalAddress),
	}
	if input.SystemRole != nil {
		var roleID int64
		err := r.pool.QueryRow(ctx,
			`SELECT id FROM system_roles WHERE name = $1`, *input.SystemRole).Scan(&roleID)
		if err != nil {
			return err
		}
		assigns = append(assigns, db.AssignValue("system_role_id", roleID))
	}
	set, args := db.UpdateSet(nil, assigns...)
	if set == "" {
		_, err := r.FindByID(ctx, id, scope)
		return err
	}
	args = append(args, id)
	idIdx := len(args)
	clause, args, err := db.ScopeClause(scope, map[string]string{"org_id": "org_id", "id": "id"}, args)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d%s`, set, idIdx, clause)
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("User", id)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
