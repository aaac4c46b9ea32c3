package auth

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// Repository defines persistence operations for authentication.
type Repository interface {
	FindByLogin(ctx context.Context, login string) (*Account, error)
	FindPrincipal(ctx context.Context, id int64) (*authz.Principal, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByLogin fetches the credential view of a user by primary email,
// home phone or mobile phone.
func (r *PGRepository) FindByLogin(ctx context.Context, login string) (*Account, error) {
	const q = `
SELECT id, password_hash
FROM users
WHERE primary_email = $1 OR home_phone = $1 OR mobile_phone = $1`
	var acc Account
	err := r.pool.QueryRow(ctx, q, login).Scan(&acc.ID, &acc.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	return &acc, nil
}

// FindPrincipal loads a user's identity, org, role and flattened
// permissions in one query.
func (r *PGRepository) FindPrincipal(ctx context.Context, id int64) (*authz.Principal, error) {
	const q = `
SELECT u.id, u.org_id, sr.name,
       COALESCE(array_agg(sp.short_name) FILTER (WHERE sp.short_name IS NOT NULL), '{}')
FROM users u
JOIN system_roles sr ON sr.id = u.system_role_id
LEFT JOIN system_role_permissions srp ON srp.system_role_id = sr.id
LEFT JOIN system_permissions sp ON sp.id = srp.system_permission_id
WHERE u.id = $1
GROUP BY u.id, u.org_id, sr.name`
	var (
		principal authz.Principal
		roleName  string
		perms     []string
	)
	err := r.pool.QueryRow(ctx, q, id).Scan(&principal.ID, &principal.OrgID, &roleName, &perms)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &shared.UnknownPrincipalError{ID: id}
		}
		return nil, err
	}
	role, err := authz.ParseRole(roleName)
	if err != nil {
		return nil, err
	}
	principal.Role = role
	set := make(authz.PermissionSet, len(perms))
	for _, p := range perms {
		set[authz.Permission(p)] = struct{}{}
	}
	principal.Permissions = set
	return &principal, nil
}

var _ Repository = (*PGRepository)(nil)
