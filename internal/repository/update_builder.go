package repository

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyUpdate = errors.New("update has no columns to set")

// UpdateSet accumulates the SET list and WHERE guards of a single UPDATE
// statement. Column names and expressions come from code; every value is
// bound as a positional parameter.
type UpdateSet struct {
	sets   []string
	guards []string
	args   []interface{}
}

func NewUpdateSet() *UpdateSet {
	return &UpdateSet{}
}

func (u *UpdateSet) bind(value interface{}) string {
	u.args = append(u.args, value)
	return fmt.Sprintf("$%d", len(u.args))
}

func (u *UpdateSet) Set(column string, value interface{}) *UpdateSet {
	u.sets = append(u.sets, column+" = "+u.bind(value))
	return u
}

// SetExpr assigns a literal SQL expression such as NOW() or a COALESCE.
func (u *UpdateSet) SetExpr(column, expr string) *UpdateSet {
	u.sets = append(u.sets, column+" = "+expr)
	return u
}

// Where adds a guard condition. Each ? in cond is replaced by the next
// positional parameter bound to the matching value.
func (u *UpdateSet) Where(cond string, values ...interface{}) *UpdateSet {
	if strings.Count(cond, "?") != len(values) {
		panic(fmt.Sprintf("update builder: %d placeholders for %d values in %q", strings.Count(cond, "?"), len(values), cond))
	}

	var b strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' {
			b.WriteString(u.bind(values[i]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	u.guards = append(u.guards, b.String())
	return u
}

func (u *UpdateSet) Len() int {
	return len(u.sets)
}

func (u *UpdateSet) Build(table string) (string, []interface{}, error) {
	if len(u.sets) == 0 {
		return "", nil, ErrEmptyUpdate
	}

	query := "UPDATE " + table + " SET " + strings.Join(u.sets, ", ")
	if len(u.guards) > 0 {
		query += " WHERE " + strings.Join(u.guards, " AND ")
	}
	return query, u.args, nil
}
