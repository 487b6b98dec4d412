package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{PurchaseOrderDraft, PurchaseOrderSubmitted, true},
		{PurchaseOrderDraft, PurchaseOrderApproved, false},
		{PurchaseOrderDraft, PurchaseOrderCancelled, true},
		{PurchaseOrderSubmitted, PurchaseOrderApproved, true},
		{PurchaseOrderSubmitted, PurchaseOrderReceived, false},
		{PurchaseOrderSubmitted, PurchaseOrderCancelled, true},
		{PurchaseOrderApproved, PurchaseOrderReceived, true},
		{PurchaseOrderApproved, PurchaseOrderCancelled, true},
		{PurchaseOrderReceived, PurchaseOrderCancelled, false},
		{PurchaseOrderCancelled, PurchaseOrderSubmitted, false},
		{PurchaseOrderReceived, PurchaseOrderSubmitted, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPurchaseOrderStatusTerminal(t *testing.T) {
	assert.False(t, PurchaseOrderDraft.Terminal())
	assert.False(t, PurchaseOrderSubmitted.Terminal())
	assert.False(t, PurchaseOrderApproved.Terminal())
	assert.True(t, PurchaseOrderReceived.Terminal())
	assert.True(t, PurchaseOrderCancelled.Terminal())
}
