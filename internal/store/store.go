// Package store owns the in-memory record collections and their derived
// filtered/sorted views. Each store is the single writer for its records;
// reads recompute the view from current state on every call rather than
// caching it.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// QuickFilterAll is the sentinel that disables a quick filter.
const QuickFilterAll = "all"

// Persister is the storage collaborator contract. Save is best-effort;
// implementations log failures instead of returning them.
type Persister interface {
	Load(key string, v any) error
	Save(key string, v any)
}

// newRecordID generates a compact URL-safe record id.
func newRecordID() string {
	id, err := gonanoid.New()
	if err != nil {
		// gonanoid only fails when the OS entropy source does; fall back to
		// a UUID rather than failing the mutation.
		return uuid.NewString()
	}
	return id
}

// newConditionID generates an id for a filter condition created without one.
func newConditionID() string {
	return uuid.NewString()
}

// compareValues orders two present field values: dates by timestamp,
// strings case-insensitively, numbers numerically. Returns -1, 0 or 1.
// Callers handle absent values (nulls-last) before calling this.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return 0
}

// sortLess implements the shared ordering contract: records missing the
// sort field go last under both directions; present values compare per
// compareValues with the direction applied.
func sortLess(a, b any, desc bool) bool {
	aAbsent := isAbsentSortValue(a)
	bAbsent := isAbsentSortValue(b)
	switch {
	case aAbsent && bAbsent:
		return false
	case aAbsent:
		return false
	case bAbsent:
		return true
	}
	c := compareValues(a, b)
	if desc {
		c = -c
	}
	return c < 0
}

func isAbsentSortValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case *time.Time:
		return t == nil
	}
	return false
}

// containsFold reports whether s contains substr case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
