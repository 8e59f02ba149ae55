package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// Where accumulates AND-ed conditions with positional pgx arguments.
// Each condition holds a single %d verb that is replaced by the argument's position.
type Where struct {
	clauses []string
	args    []any
}

func (w *Where) Add(condition string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(condition, len(w.args)))
}

// String renders " WHERE ..." or an empty string when there are no conditions
func (w *Where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + JoinWithAnd(w.clauses)
}

func (w *Where) Args() []any {
	return w.args
}

// Next is the position the next appended argument will take
func (w *Where) Next() int {
	return len(w.args) + 1
}
