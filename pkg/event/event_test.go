package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitDispatchesInSubscriptionOrder(t *testing.T) {
	e := NewEmitter()

	var order []string
	e.Subscribe(LeadCreated, func(payload any) {
		order = append(order, "first")
	})
	e.Subscribe(LeadCreated, func(payload any) {
		order = append(order, "second")
	})

	e.Emit(LeadCreated, "lead-1")
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEmitIsSynchronous(t *testing.T) {
	e := NewEmitter()

	var got any
	e.Subscribe(CallLogCreated, func(payload any) {
		got = payload
	})

	e.Emit(CallLogCreated, 42)
	// The handler ran before Emit returned.
	assert.Equal(t, 42, got)
}

func TestEmitOnlyMatchingType(t *testing.T) {
	e := NewEmitter()

	calls := 0
	e.Subscribe(LeadDeleted, func(payload any) { calls++ })

	e.Emit(LeadCreated, nil)
	assert.Equal(t, 0, calls)

	e.Emit(LeadDeleted, nil)
	assert.Equal(t, 1, calls)
}

func TestEmitWithNoSubscribers(t *testing.T) {
	e := NewEmitter()
	// Nothing to do, nothing to panic about.
	e.Emit(CompanyCreated, nil)
}
