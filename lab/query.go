package lab

import (
	"strings"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
)

// MsgSelectOnly is returned to the DB playground for non-SELECT statements.
const MsgSelectOnly = "Only SELECT queries are allowed"

// ErrNotSelect rejects any statement that is not a SELECT.
var ErrNotSelect = apperrors.Wrapf(apperrors.ErrInvalidRequest, MsgSelectOnly)

// QueryResult is a tabular answer from the DB playground.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

var schemas = map[string]QueryResult{
	"ecommerce": {
		Columns: []string{"id", "name", "price", "category", "in_stock"},
		Rows: [][]any{
			{1, "Laptop", 999.99, "Electronics", true},
			{2, "Smartphone", 699.99, "Electronics", true},
			{3, "Headphones", 149.99, "Electronics", true},
			{4, "T-shirt", 19.99, "Clothing", true},
			{5, "Jeans", 49.99, "Clothing", false},
		},
	},
	"hr": {
		Columns: []string{"id", "first_name", "last_name", "job_title", "department_id", "salary"},
		Rows: [][]any{
			{1, "Alice", "Johnson", "Software Engineer", 1, 85000.00},
			{2, "Bob", "Smith", "Product Manager", 2, 95000.00},
			{3, "Carol", "Williams", "UX Designer", 1, 80000.00},
			{4, "Dave", "Brown", "Marketing Specialist", 3, 75000.00},
			{5, "Eve", "Davis", "HR Manager", 4, 90000.00},
		},
	},
}

// DefaultSchema is used when a query names none.
const DefaultSchema = "ecommerce"

// RunQuery answers a SELECT against one of the canned schemas. Nothing is
// executed; the statement only has to be a SELECT.
func RunQuery(schema, sql string) (QueryResult, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(sql)), "select") {
		return QueryResult{}, ErrNotSelect
	}
	if schema == "" {
		schema = DefaultSchema
	}
	result, ok := schemas[schema]
	if !ok {
		return QueryResult{Columns: []string{"result"}, Rows: [][]any{{"No data found for this query"}}}, nil
	}
	return result, nil
}
