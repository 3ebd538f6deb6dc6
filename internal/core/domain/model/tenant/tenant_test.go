package tenant_test

import (
	"testing"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidTenant(t *testing.T) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.NewTenant(kernel.NewUUID(), "Loja da Maria", "loja-da-maria", "Av. Paulista 1000")
	require.NoError(t, err)
	require.NotNil(t, tn)
	return tn
}

func TestNewTenant(t *testing.T) {
	t.Run("should create active tenant with default settings", func(t *testing.T) {
		tn := createValidTenant(t)

		require.NoError(t, tn.Validate())
		assert.True(t, tn.IsActive())
		require.NoError(t, tn.EnsureActive())
		assert.Equal(t, "loja-da-maria", tn.Slug())
		assert.Equal(t, tenant.DefaultPickupExpiry, tn.Settings().PickupWindow())
	})

	t.Run("should lowercase and trim the slug", func(t *testing.T) {
		tn, err := tenant.NewTenant(kernel.NewUUID(), "Loja", " Loja-Da-Maria ", "")
		require.NoError(t, err)
		assert.Equal(t, "loja-da-maria", tn.Slug())
	})

	t.Run("should return error for empty name", func(t *testing.T) {
		tn, err := tenant.NewTenant(kernel.NewUUID(), "  ", "loja", "")
		require.Error(t, err)
		assert.Nil(t, tn)
		assert.ErrorIs(t, err, tenant.ErrNameIsRequired)
	})

	t.Run("should return error for empty slug", func(t *testing.T) {
		tn, err := tenant.NewTenant(kernel.NewUUID(), "Loja", "", "")
		require.Error(t, err)
		assert.Nil(t, tn)
		assert.ErrorIs(t, err, tenant.ErrSlugIsRequired)
	})

	t.Run("zero value tenant should fail validation", func(t *testing.T) {
		var tn tenant.Tenant
		assert.Error(t, tn.Validate())
	})
}

func TestTenant_EnsureActive(t *testing.T) {
	tn := createValidTenant(t)

	tn.Deactivate()
	assert.ErrorIs(t, tn.EnsureActive(), tenant.ErrTenantIsInactive)

	tn.Activate()
	assert.NoError(t, tn.EnsureActive())
}

func TestSettings_CanNotify(t *testing.T) {
	t.Run("master switch off blocks everything", func(t *testing.T) {
		s := tenant.DefaultSettings()

		assert.False(t, s.CanNotify(notification.KindOrderCreated))
	})

	t.Run("per-kind toggles apply once enabled", func(t *testing.T) {
		s := tenant.DefaultSettings()
		s.NotificationsEnabled = true

		assert.True(t, s.CanNotify(notification.KindOrderCreated))
		assert.False(t, s.CanNotify(notification.KindOrderConfirmed))
		assert.False(t, s.CanNotify(notification.KindPickedUp))
		assert.True(t, s.CanNotify(notification.KindReadyForPickup))
	})

	t.Run("unknown kinds are never notified", func(t *testing.T) {
		s := tenant.DefaultSettings()
		s.NotificationsEnabled = true

		assert.False(t, s.CanNotify(notification.EventKind("bogus")))
	})
}

func TestSettings_TemplateFor(t *testing.T) {
	t.Run("falls back to built-in template", func(t *testing.T) {
		s := tenant.DefaultSettings()

		tpl := s.TemplateFor(notification.KindReadyForPickup)

		assert.Contains(t, tpl, "{pickup_code}")
		assert.Contains(t, tpl, "{codigo}")
	})

	t.Run("custom template wins", func(t *testing.T) {
		s := tenant.DefaultSettings()
		s.Templates[notification.KindOrderCreated] = "Oi {nome}, pedido {codigo} recebido."

		tpl := s.TemplateFor(notification.KindOrderCreated)

		assert.Equal(t, "Oi {nome}, pedido {codigo} recebido.", tpl)
	})

	t.Run("every kind has a default template", func(t *testing.T) {
		s := tenant.Settings{}
		for _, kind := range []notification.EventKind{
			notification.KindOrderCreated, notification.KindOrderConfirmed,
			notification.KindPaymentReceived, notification.KindPaymentRefunded,
			notification.KindPaymentFailed, notification.KindOrderShipped,
			notification.KindOutForDelivery, notification.KindOrderDelivered,
			notification.KindDeliveryFailed, notification.KindReadyForPickup,
			notification.KindPickedUp, notification.KindOrderExpired,
			notification.KindOrderCancelled, notification.KindOrderReturned,
		} {
			assert.NotEmpty(t, s.TemplateFor(kind), kind.String())
		}
	})
}

func TestSettings_PickupWindow(t *testing.T) {
	assert.Equal(t, tenant.DefaultPickupExpiry, tenant.Settings{}.PickupWindow())

	custom := tenant.Settings{PickupExpiry: 24 * time.Hour}
	assert.Equal(t, 24*time.Hour, custom.PickupWindow())
}
