// Package filter implements the predicate engine behind every collection
// view: a pure evaluator for single field conditions plus the AND
// combinator over a condition list. The evaluator never panics; an
// operator applied to a value it cannot compare simply does not match.
package filter

import (
	"strings"
	"time"

	"github.com/jwalitptl/salestrack-api/internal/model"
)

// Matches reports whether fieldValue satisfies cond. fieldValue is the
// output of a collection's field accessor and is expected to be one of
// string, float64, time.Time, or nil for an absent field; other types are
// handled best-effort.
func Matches(fieldValue any, cond *model.FilterCondition) bool {
	op := cond.Operator

	// Emptiness short-circuit: an absent value only ever matches is_empty.
	if isAbsent(fieldValue) {
		return op == model.OpIsEmpty
	}
	switch op {
	case model.OpIsEmpty:
		return false
	case model.OpIsNotEmpty:
		return true
	}

	// String operators: both sides must be strings, compared lowercased.
	if fv, ok := asString(fieldValue); ok {
		if qv, ok := asString(cond.Value); ok {
			if matched, handled := matchString(fv, qv, op); handled {
				return matched
			}
		}
	}

	// Set membership: operand must be a list; equality is exact.
	switch op {
	case model.OpIn, model.OpNotIn:
		list, ok := asList(cond.Value)
		if !ok {
			return false
		}
		found := listContains(list, fieldValue)
		if op == model.OpIn {
			return found
		}
		return !found
	}

	// Numeric operators.
	if fv, ok := asNumber(fieldValue); ok {
		if matched, handled := matchNumber(fv, cond, op); handled {
			return matched
		}
	}

	// Date operators.
	if fv, ok := asTime(fieldValue); ok {
		if matched, handled := matchDate(fv, cond, op); handled {
			return matched
		}
	}

	// Fallback: strict equality for equals/not_equals on whatever is left.
	switch op {
	case model.OpEquals:
		return fieldValue == cond.Value
	case model.OpNotEquals:
		return fieldValue != cond.Value
	}
	return false
}

// MatchesAll applies every condition with AND semantics. An empty condition
// list matches everything.
func MatchesAll(conds []*model.FilterCondition, value func(field string) any) bool {
	for _, cond := range conds {
		if !Matches(value(cond.Field), cond) {
			return false
		}
	}
	return true
}

func matchString(fieldValue, condValue string, op model.FilterOperator) (matched, handled bool) {
	fv := strings.ToLower(fieldValue)
	qv := strings.ToLower(condValue)

	switch op {
	case model.OpEquals:
		return fv == qv, true
	case model.OpNotEquals:
		return fv != qv, true
	case model.OpContains:
		return strings.Contains(fv, qv), true
	case model.OpNotContains:
		return !strings.Contains(fv, qv), true
	case model.OpStartsWith:
		return strings.HasPrefix(fv, qv), true
	case model.OpEndsWith:
		return strings.HasSuffix(fv, qv), true
	}
	return false, false
}

func matchNumber(fieldValue float64, cond *model.FilterCondition, op model.FilterOperator) (matched, handled bool) {
	cv, ok := asNumber(cond.Value)
	if !ok {
		return false, false
	}

	switch op {
	case model.OpGreaterThan:
		return fieldValue > cv, true
	case model.OpLessThan:
		return fieldValue < cv, true
	case model.OpGreaterEqual:
		return fieldValue >= cv, true
	case model.OpLessEqual:
		return fieldValue <= cv, true
	case model.OpBetween:
		cv2, ok := asNumber(cond.Value2)
		if !ok {
			return false, true
		}
		// Inclusive on both ends.
		return fieldValue >= cv && fieldValue <= cv2, true
	}
	return false, false
}

func matchDate(fieldValue time.Time, cond *model.FilterCondition, op model.FilterOperator) (matched, handled bool) {
	cv, ok := asTime(cond.Value)
	if !ok {
		return false, false
	}

	switch op {
	case model.OpEqualsDate:
		// Calendar-day comparison: a filter on "on date X" matches any
		// time-of-day on that date.
		return truncateToDay(fieldValue).Equal(truncateToDay(cv)), true
	case model.OpBefore:
		return fieldValue.Before(cv), true
	case model.OpAfter:
		return fieldValue.After(cv), true
	case model.OpBetweenDates:
		cv2, ok := asTime(cond.Value2)
		if !ok {
			return false, true
		}
		// Full-timestamp comparison, inclusive on both bounds.
		return !fieldValue.Before(cv) && !fieldValue.After(cv2), true
	}
	return false, false
}

// isAbsent treats nil and blank-after-trim strings as empty field values.
func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case *time.Time:
		return t == nil
	}
	return false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

// asTime accepts time values directly and RFC 3339 strings, which is how
// dates arrive after a JSON round trip.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		list := make([]any, len(t))
		for i, s := range t {
			list[i] = s
		}
		return list, true
	}
	return nil, false
}

func listContains(list []any, v any) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return truncateToDay(t)
}

// StartOfWeek returns midnight of the most recent Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return truncateToDay(t).AddDate(0, 0, -int(t.Weekday()))
}
