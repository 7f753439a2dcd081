package inventory

import (
	"fmt"
	"strings"
)

// AnyValue disables a criterion. The web client sends it for "no selection"
// on status and department dropdowns.
const AnyValue = "all"

// searchColumns are the text columns a free-text term matches against. A
// single bound term is referenced by every column.
var searchColumns = []string{"type", "brand", "model", "serial", "assigned_to", "location"}

// SearchCriteria carries the optional filters of a search. Empty fields and
// AnyValue sentinels contribute nothing to the generated condition.
type SearchCriteria struct {
	Term       string
	Status     string
	Department string
	DateFrom   string
	DateTo     string
}

// IsZero reports whether no criterion is active.
func (c SearchCriteria) IsZero() bool {
	return c.Term == "" &&
		(c.Status == "" || c.Status == AnyValue) &&
		(c.Department == "" || c.Department == AnyValue) &&
		c.DateFrom == "" &&
		c.DateTo == ""
}

// BuildFilter renders criteria into a WHERE condition with positional
// placeholders and the matching argument list. The condition starts at the
// neutral "1=1" so criteria can be appended uniformly, and placeholder
// indexes always equal the argument's position in args.
func BuildFilter(c SearchCriteria) (string, []any) {
	var (
		cond strings.Builder
		args []any
	)
	cond.WriteString("1=1")

	next := func() int { return len(args) + 1 }

	if c.Term != "" {
		args = append(args, "%"+c.Term+"%")
		idx := len(args)
		clauses := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", col, idx))
		}
		cond.WriteString(" AND (" + strings.Join(clauses, " OR ") + ")")
	}

	if c.Status != "" && c.Status != AnyValue {
		cond.WriteString(fmt.Sprintf(" AND status = $%d", next()))
		args = append(args, c.Status)
	}

	if c.Department != "" && c.Department != AnyValue {
		cond.WriteString(fmt.Sprintf(" AND department = $%d", next()))
		args = append(args, c.Department)
	}

	if c.DateFrom != "" {
		cond.WriteString(fmt.Sprintf(" AND registered_at >= $%d", next()))
		args = append(args, c.DateFrom)
	}

	if c.DateTo != "" {
		cond.WriteString(fmt.Sprintf(" AND registered_at <= $%d", next()))
		args = append(args, c.DateTo)
	}

	return cond.String(), args
}

// OrderClause is the fixed ordering of every listing and search. Newest
// registrations come first.
const OrderClause = "registered_at DESC"
