package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range orderStatusFlow {
		assert.True(t, s.Valid(), "status %s should be valid", s)
	}
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatusStepIndex(t *testing.T) {
	assert.Equal(t, 0, StatusPending.StepIndex())
	assert.Equal(t, 4, StatusInProcess.StepIndex())
	assert.Equal(t, 8, StatusDelivered.StepIndex())
	assert.Equal(t, -1, StatusCancelled.StepIndex())
	assert.Equal(t, -1, OrderStatus("bogus").StepIndex())
}

func TestCanTransitionAdvancesOneStep(t *testing.T) {
	for i := 0; i < len(orderStatusFlow)-1; i++ {
		from, to := orderStatusFlow[i], orderStatusFlow[i+1]
		assert.True(t, CanTransition(from, to), "%s -> %s should be allowed", from, to)
	}

	// No skipping and no going back.
	assert.False(t, CanTransition(StatusPending, StatusPickedUp))
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusPickedUp, StatusDelivered))
}

func TestCanTransitionCancellation(t *testing.T) {
	for _, s := range orderStatusFlow {
		if s == StatusDelivered {
			continue
		}
		assert.True(t, CanTransition(s, StatusCancelled), "%s should be cancellable", s)
	}

	// Terminal statuses stay terminal.
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
}

func TestCanTransitionRejectsUnknown(t *testing.T) {
	assert.False(t, CanTransition(StatusPending, OrderStatus("bogus")))
	assert.False(t, CanTransition(OrderStatus("bogus"), StatusConfirmed))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())
}

func TestDisplayFallsBackToPending(t *testing.T) {
	assert.Equal(t, "In Process", StatusInProcess.Display().Label)
	assert.Equal(t, "Cancelled", StatusCancelled.Display().Label)

	fallback := OrderStatus("legacy_value").Display()
	assert.Equal(t, StatusPending.Display(), fallback)
}

func TestProgressIndex(t *testing.T) {
	assert.Equal(t, -1, ProgressIndex(nil))
	assert.Equal(t, -1, ProgressIndex([]TrackingEntry{}))

	entries := []TrackingEntry{
		{Status: StatusInProcess},
		{Status: StatusPickedUp},
		{Status: StatusPending},
	}
	assert.Equal(t, 4, ProgressIndex(entries))

	// Cancellation does not advance progress.
	entries = append([]TrackingEntry{{Status: StatusCancelled}}, entries...)
	assert.Equal(t, 4, ProgressIndex(entries))

	assert.Equal(t, -1, ProgressIndex([]TrackingEntry{{Status: StatusCancelled}}))
}

func TestCanTransitionPayment(t *testing.T) {
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentPaid))
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentFailed))
	assert.True(t, CanTransitionPayment(PaymentPaid, PaymentRefunded))

	assert.False(t, CanTransitionPayment(PaymentPaid, PaymentPending))
	assert.False(t, CanTransitionPayment(PaymentRefunded, PaymentPaid))
	assert.False(t, CanTransitionPayment(PaymentFailed, PaymentPaid))
	assert.False(t, CanTransitionPayment(PaymentPending, PaymentRefunded))
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, MethodCashOnDelivery.Valid())
	assert.True(t, MethodDigitalWallet.Valid())
	assert.False(t, PaymentMethod("cheque").Valid())
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleWorkshopStaff.Valid())
	assert.False(t, UserRole("owner").Valid())
}
