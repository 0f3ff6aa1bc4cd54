package domain

// Operator is the comparison applied by one filter condition.
type Operator string

const (
	OperatorEquals   Operator = "equals"
	OperatorContains Operator = "contains"
	OperatorGt       Operator = "gt"
	OperatorGte      Operator = "gte"
	OperatorLt       Operator = "lt"
	OperatorLte      Operator = "lte"
	OperatorIn       Operator = "in"
)

// Valid reports whether the operator is one of the supported comparisons.
func (o Operator) Valid() bool {
	switch o {
	case OperatorEquals, OperatorContains, OperatorGt, OperatorGte,
		OperatorLt, OperatorLte, OperatorIn:
		return true
	}
	return false
}

// FilterCondition is a single field comparison. Value is a string for most
// operators and an array for "in".
type FilterCondition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// DataFilter selects one dataset and a conjunction of conditions. Filters are
// constructed per search request, applied once, and discarded.
type DataFilter struct {
	DataType   EntityType        `json:"dataType"`
	Conditions []FilterCondition `json:"conditions"`
}

// FilteredResults is the matching subset of rows for the targeted dataset.
type FilteredResults struct {
	DataType EntityType `json:"dataType"`
	Rows     []Row      `json:"rows"`
	Total    int        `json:"total"`
}
