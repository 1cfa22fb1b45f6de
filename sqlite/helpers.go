package sqlite

import "strings"

// appendLimit appends a LIMIT clause to a query builder if limit is > 0.
func appendLimit(query *strings.Builder, args *[]any, limit int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
}
