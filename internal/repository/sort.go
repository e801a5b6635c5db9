package repository

import "strings"

// buildOrderByClause turns an ordered list of sort keys into a SQL ORDER BY
// clause. A key prefixed with "-" sorts descending. Keys map through the
// caller's allow-list of columns to prevent SQL injection; unknown keys are
// skipped. An empty result means no re-ordering: callers fall back to the
// table's natural insertion order.
func buildOrderByClause(keys []string, columns map[string]string) string {
	var parts []string

	for _, key := range keys {
		direction := "ASC"
		field := key
		if strings.HasPrefix(key, "-") {
			direction = "DESC"
			field = strings.TrimPrefix(key, "-")
		}

		column, ok := columns[field]
		if !ok {
			continue
		}

		parts = append(parts, column+" "+direction)
	}

	if len(parts) == 0 {
		return ""
	}

	return "ORDER BY " + strings.Join(parts, ", ")
}
