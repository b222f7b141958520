package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const baseResultsSelect = `SELECT result FROM match_results`

const countResultsSelect = "SELECT COUNT(*) FROM match_results"

const resultsOrderBy = "matched_at DESC, id DESC"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a result
// query. It returns the data query, the count query and the positional
// parameters shared by both.
func (q *ResultQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	add := func(expr string, v any) {
		conditions = append(conditions, fmt.Sprintf(expr, paramIdx))
		args = append(args, v)
		paramIdx++
	}

	if q.RunID != nil {
		add("run_id = $%d", *q.RunID)
	}
	if q.ProductKey != nil {
		add("product_key = $%d", *q.ProductKey)
	}
	if q.Retailer != nil {
		add("retailer = $%d", *q.Retailer)
	}
	if q.Level != nil {
		add("level = $%d", *q.Level)
	}
	if q.Since != nil {
		add("matched_at >= $%d", *q.Since)
	}
	if q.FoundOnly {
		conditions = append(conditions, "found")
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseResultsSelect, whereClause, resultsOrderBy, limit, offset,
	)

	countSQL = countResultsSelect + whereClause

	return dataSQL, countSQL, args
}
