package db

import (
	"fmt"
	"strings"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
)

// ScopeClause renders scope constraints as SQL conjuncts. fields maps
// logical constraint names to qualified columns of the query at hand;
// a constraint with no mapping is a programming error. The returned
// clause starts with " AND" so it can be appended to any WHERE.
func ScopeClause(scope authz.Scope, fields map[string]string, args []any) (string, []any, error) {
	var sb strings.Builder
	for _, c := range scope.Conds() {
		col, ok := fields[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("platform/db: unmapped scope field %q", c.Field)
		}
		args = append(args, c.Value)
		fmt.Fprintf(&sb, " AND %s = $%d", col, len(args))
	}
	return sb.String(), args, nil
}
