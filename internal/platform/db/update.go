package db

import (
	"fmt"
	"strings"
)

// Assignment is one optional column assignment of a partial update.
type Assignment struct {
	Column string
	Value  any
	set    bool
}

// Assign builds an assignment that only applies when the value is present.
func Assign[T any](column string, value *T) Assignment {
	if value == nil {
		return Assignment{Column: column}
	}
	return Assignment{Column: column, Value: *value, set: true}
}

// AssignValue builds an unconditional assignment.
func AssignValue(column string, value any) Assignment {
	return Assignment{Column: column, Value: value, set: true}
}

// UpdateSet renders the applied assignments as a SET clause, appending
// their values to args. An empty clause means nothing was assigned.
func UpdateSet(args []any, assigns ...Assignment) (string, []any) {
	var parts []string
	for _, a := range assigns {
		if !a.set {
			continue
		}
		args = append(args, a.Value)
		parts = append(parts, fmt.Sprintf("%s = $%d", a.Column, len(args)))
	}
	return strings.Join(parts, ", "), args
}
