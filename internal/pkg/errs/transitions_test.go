package errs_test

import (
	"errors"
	"testing"

	"flowlog/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("ship", "Cancelled")

	assert.Equal(t, "ship", err.Operation)
	assert.Equal(t, "Cancelled", err.From)
	assert.Equal(t, "invalid transition: cannot ship from Cancelled", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestInvalidDeliveryTypeError(t *testing.T) {
	err := errs.NewInvalidDeliveryTypeError("ship", "Pickup")

	assert.Equal(t, "invalid delivery type: Pickup does not allow ship", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidDeliveryType)
}

func TestTenantMismatchError(t *testing.T) {
	err := errs.NewTenantMismatchError("order", "2b1a7c00-0000-0000-0000-000000000001")

	assert.Equal(t,
		"tenant mismatch: order does not belong to tenant 2b1a7c00-0000-0000-0000-000000000001",
		err.Error())
	require.ErrorIs(t, err, errs.ErrTenantMismatch)
}

func TestInvalidSignatureError(t *testing.T) {
	err := errs.NewInvalidSignatureError("signature header missing")

	assert.Equal(t, "invalid signature: signature header missing", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidSignature)
}

func TestBusyError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("canceling statement due to lock timeout")
		err := errs.NewBusyErrorWithCause("order", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"resource is busy: order (cause: canceling statement due to lock timeout)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrBusy)
	})
}

func TestDeliveryFailedError(t *testing.T) {
	cause := errors.New("gateway timeout")
	err := errs.NewDeliveryFailedError("order_shipped", 5, cause)

	assert.Equal(t, 5, err.Attempts)
	assert.Equal(t, "delivery failed: order_shipped after 5 attempts (cause: gateway timeout)", err.Error())
	require.ErrorIs(t, err, errs.ErrDeliveryFailed)
}

func TestTransitionSentinelErrors(t *testing.T) {
	assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
	assert.Equal(t, "invalid delivery type", errs.ErrInvalidDeliveryType.Error())
	assert.Equal(t, "tenant mismatch", errs.ErrTenantMismatch.Error())
	assert.Equal(t, "invalid signature", errs.ErrInvalidSignature.Error())
	assert.Equal(t, "resource is busy", errs.ErrBusy.Error())
	assert.Equal(t, "delivery failed", errs.ErrDeliveryFailed.Error())
}
