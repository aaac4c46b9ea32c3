package authz

// Cond is one equality constraint on a logical field. Repositories map
// logical fields to SQL, including ownership-chain joins where the field
// lives on a parent table.
type Cond struct {
	Field string
	Value int64
}

// Scope is the set of row constraints an operation resolved to. An empty
// scope is unrestricted.
type Scope struct {
	conds []Cond
}

// Unrestricted returns a scope with no constraints.
func Unrestricted() Scope {
	return Scope{}
}

// ScopeOf returns a scope with a single constraint.
func ScopeOf(field string, value int64) Scope {
	return Scope{conds: []Cond{{Field: field, Value: value}}}
}

// And returns a copy of the scope with an extra constraint appended.
func (s Scope) And(field string, value int64) Scope {
	conds := make([]Cond, 0, len(s.conds)+1)
	conds = append(conds, s.conds...)
	conds = append(conds, Cond{Field: field, Value: value})
	return Scope{conds: conds}
}

// Conds returns the constraints in order.
func (s Scope) Conds() []Cond {
	return s.conds
}

// IsUnrestricted reports whether the scope has no constraints.
func (s Scope) IsUnrestricted() bool {
	return len(s.conds) == 0
}
