package model

// FilterOperator is the closed set of comparison operators a filter
// condition may use. Not every operator is legal for every data type; the
// per-field configs advertise the legal subset and the evaluator is
// permissive about the rest.
type FilterOperator string

const (
	OpEquals       FilterOperator = "equals"
	OpNotEquals    FilterOperator = "not_equals"
	OpContains     FilterOperator = "contains"
	OpNotContains  FilterOperator = "not_contains"
	OpStartsWith   FilterOperator = "starts_with"
	OpEndsWith     FilterOperator = "ends_with"
	OpIsEmpty      FilterOperator = "is_empty"
	OpIsNotEmpty   FilterOperator = "is_not_empty"
	OpGreaterThan  FilterOperator = "greater_than"
	OpLessThan     FilterOperator = "less_than"
	OpGreaterEqual FilterOperator = "greater_equal"
	OpLessEqual    FilterOperator = "less_equal"
	OpBetween      FilterOperator = "between"
	OpIn           FilterOperator = "in"
	OpNotIn        FilterOperator = "not_in"
	OpBefore       FilterOperator = "before"
	OpAfter        FilterOperator = "after"
	OpEqualsDate   FilterOperator = "equals_date"
	OpBetweenDates FilterOperator = "between_dates"
)

// FilterDataType is the declared type of a filterable field.
type FilterDataType string

const (
	DataTypeText        FilterDataType = "text"
	DataTypeSelect      FilterDataType = "select"
	DataTypeMultiSelect FilterDataType = "multi-select"
	DataTypeDate        FilterDataType = "date"
	DataTypeNumber      FilterDataType = "number"
)

// FilterCondition is a single field+operator+value predicate. Value2 is
// meaningful only for the ranged operators (between, between_dates) and is
// ignored otherwise. Values arrive untyped from the presentation layer; the
// evaluator coerces them best-effort and treats mismatches as "no match".
type FilterCondition struct {
	ID       string         `json:"id"`
	Field    string         `json:"field" binding:"required"`
	Operator FilterOperator `json:"operator" binding:"required"`
	Value    any            `json:"value"`
	Value2   any            `json:"value2,omitempty"`
	DataType FilterDataType `json:"data_type"`
}

// UpdateFilterRequest carries partial edits to an existing condition.
type UpdateFilterRequest struct {
	Field    *string         `json:"field"`
	Operator *FilterOperator `json:"operator"`
	Value    any             `json:"value"`
	Value2   any             `json:"value2"`
	DataType *FilterDataType `json:"data_type"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortSpec is the single active sort for a collection.
type SortSpec struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order"`
}
