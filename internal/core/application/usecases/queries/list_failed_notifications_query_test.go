package queries_test

import (
	"testing"

	"flowlog/internal/core/application/usecases/queries"
	"flowlog/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListFailedNotificationsQuery_Valid(t *testing.T) {
	query, err := queries.NewListFailedNotificationsQuery(kernel.NewUUID(), 10)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 10, query.Limit())
}

func TestNewListFailedNotificationsQuery_DefaultsLimit(t *testing.T) {
	query, err := queries.NewListFailedNotificationsQuery(kernel.NewUUID(), -1)
	require.NoError(t, err)
	assert.Equal(t, 50, query.Limit())
}

func TestNewListFailedNotificationsQuery_ZeroTenant(t *testing.T) {
	_, err := queries.NewListFailedNotificationsQuery(kernel.UUID{}, 10)
	require.Error(t, err)
}

func TestListFailedNotificationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListFailedNotificationsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListFailedNotificationsQueryIsNotConstructed)
}
