package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/salestrack-api/internal/model"
)

func cond(op model.FilterOperator, value any) *model.FilterCondition {
	return &model.FilterCondition{ID: "c1", Field: "f", Operator: op, Value: value}
}

func rangeCond(op model.FilterOperator, value, value2 any) *model.FilterCondition {
	c := cond(op, value)
	c.Value2 = value2
	return c
}

func TestMatchesEmptiness(t *testing.T) {
	assert.True(t, Matches(nil, cond(model.OpIsEmpty, nil)))
	assert.True(t, Matches("", cond(model.OpIsEmpty, nil)))
	assert.True(t, Matches("   ", cond(model.OpIsEmpty, nil)))
	assert.True(t, Matches((*time.Time)(nil), cond(model.OpIsEmpty, nil)))

	assert.False(t, Matches("hello", cond(model.OpIsEmpty, nil)))
	assert.True(t, Matches("hello", cond(model.OpIsNotEmpty, nil)))
	assert.False(t, Matches(nil, cond(model.OpIsNotEmpty, nil)))

	// An absent value matches nothing but is_empty, whatever the operator.
	assert.False(t, Matches(nil, cond(model.OpEquals, nil)))
	assert.False(t, Matches("", cond(model.OpContains, "")))
	assert.False(t, Matches(nil, cond(model.OpGreaterThan, 0.0)))
}

func TestMatchesStringOperators(t *testing.T) {
	assert.True(t, Matches("Acme Corp", cond(model.OpEquals, "acme corp")))
	assert.False(t, Matches("Acme Corp", cond(model.OpEquals, "acme")))
	assert.True(t, Matches("Acme Corp", cond(model.OpNotEquals, "globex")))

	assert.True(t, Matches("Acme Corp", cond(model.OpContains, "CME")))
	assert.False(t, Matches("Acme Corp", cond(model.OpContains, "globex")))
	assert.True(t, Matches("Acme Corp", cond(model.OpNotContains, "globex")))

	assert.True(t, Matches("Acme Corp", cond(model.OpStartsWith, "acme")))
	assert.False(t, Matches("Acme Corp", cond(model.OpStartsWith, "corp")))
	assert.True(t, Matches("Acme Corp", cond(model.OpEndsWith, "CORP")))
}

func TestMatchesInNotIn(t *testing.T) {
	list := []any{"Hot", "Warm"}
	assert.True(t, Matches("Hot", cond(model.OpIn, list)))
	assert.False(t, Matches("Cold", cond(model.OpIn, list)))
	assert.True(t, Matches("Cold", cond(model.OpNotIn, list)))
	assert.False(t, Matches("Warm", cond(model.OpNotIn, list)))

	// Membership is exact, not case-folded.
	assert.False(t, Matches("hot", cond(model.OpIn, list)))

	// A non-list operand never matches.
	assert.False(t, Matches("Hot", cond(model.OpIn, "Hot")))
}

func TestMatchesNumericOperators(t *testing.T) {
	assert.True(t, Matches(30.0, cond(model.OpGreaterThan, 20.0)))
	assert.False(t, Matches(30.0, cond(model.OpGreaterThan, 30.0)))
	assert.True(t, Matches(30.0, cond(model.OpGreaterEqual, 30.0)))
	assert.True(t, Matches(30.0, cond(model.OpLessThan, 31.0)))
	assert.True(t, Matches(30.0, cond(model.OpLessEqual, 30.0)))

	// between is inclusive on both ends.
	assert.True(t, Matches(10.0, rangeCond(model.OpBetween, 10.0, 20.0)))
	assert.True(t, Matches(20.0, rangeCond(model.OpBetween, 10.0, 20.0)))
	assert.True(t, Matches(15.0, rangeCond(model.OpBetween, 10.0, 20.0)))
	assert.False(t, Matches(9.99, rangeCond(model.OpBetween, 10.0, 20.0)))
	assert.False(t, Matches(20.01, rangeCond(model.OpBetween, 10.0, 20.0)))

	// Integer operands arriving from JSON-less callers still compare.
	assert.True(t, Matches(30.0, cond(model.OpGreaterThan, 20)))

	// between without a second operand cannot match.
	assert.False(t, Matches(15.0, cond(model.OpBetween, 10.0)))
}

func TestMatchesDateOperators(t *testing.T) {
	morning := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	// equals_date compares calendar days, ignoring time of day.
	assert.True(t, Matches(evening, cond(model.OpEqualsDate, morning)))
	assert.False(t, Matches(nextDay, cond(model.OpEqualsDate, morning)))

	// before/after compare full timestamps.
	assert.True(t, Matches(morning, cond(model.OpBefore, evening)))
	assert.False(t, Matches(evening, cond(model.OpBefore, morning)))
	assert.True(t, Matches(evening, cond(model.OpAfter, morning)))
	assert.False(t, Matches(morning, cond(model.OpAfter, morning)))

	// between_dates is inclusive on both bounds.
	assert.True(t, Matches(morning, rangeCond(model.OpBetweenDates, morning, evening)))
	assert.True(t, Matches(evening, rangeCond(model.OpBetweenDates, morning, evening)))
	assert.False(t, Matches(nextDay, rangeCond(model.OpBetweenDates, morning, evening)))

	// RFC 3339 strings, the form dates take after a JSON round trip, work
	// on both sides.
	assert.True(t, Matches("2026-03-10T21:30:00Z", cond(model.OpEqualsDate, "2026-03-10T09:00:00Z")))
}

func TestMatchesMalformedConditions(t *testing.T) {
	// Operator/value type mismatches fail closed instead of panicking.
	assert.False(t, Matches("text", cond(model.OpGreaterThan, 5.0)))
	assert.False(t, Matches(5.0, cond(model.OpContains, "5")))
	assert.False(t, Matches(5.0, cond(model.OpGreaterThan, "not a number")))
	assert.False(t, Matches(time.Now(), cond(model.OpBefore, "not a date")))
	assert.False(t, Matches("text", cond(model.FilterOperator("no_such_op"), "text")))
}

func TestMatchesEqualsFallback(t *testing.T) {
	// equals on a non-string, non-coercible pair falls back to strict
	// equality.
	assert.True(t, Matches(true, cond(model.OpEquals, true)))
	assert.False(t, Matches(true, cond(model.OpEquals, false)))
	assert.True(t, Matches(true, cond(model.OpNotEquals, false)))
}

func TestMatchesAll(t *testing.T) {
	values := map[string]any{
		"name":   "Alice Johnson",
		"status": "Hot",
		"age":    42.0,
	}
	lookup := func(field string) any { return values[field] }

	conds := []*model.FilterCondition{
		{ID: "1", Field: "name", Operator: model.OpContains, Value: "johnson"},
		{ID: "2", Field: "status", Operator: model.OpEquals, Value: "hot"},
		{ID: "3", Field: "age", Operator: model.OpGreaterThan, Value: 40.0},
	}
	assert.True(t, MatchesAll(conds, lookup))

	conds = append(conds, &model.FilterCondition{
		ID: "4", Field: "status", Operator: model.OpEquals, Value: "cold",
	})
	assert.False(t, MatchesAll(conds, lookup))

	// Empty condition list matches everything.
	assert.True(t, MatchesAll(nil, lookup))
}

func TestStartOfWeek(t *testing.T) {
	// Tuesday 2026-03-10 belongs to the week starting Sunday 2026-03-08.
	tuesday := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), StartOfWeek(tuesday))

	// A Sunday is its own week start.
	sunday := time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 10, 15, 4, 5, 123, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}
