package queries_test

import (
	"testing"

	"flowlog/internal/core/application/usecases/queries"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, 20)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Nil(t, query.Status())
	assert.Equal(t, 20, query.Limit())
}

func TestNewListOrdersQuery_DefaultsLimit(t *testing.T) {
	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, query.Limit())
}

func TestNewListOrdersQuery_StatusFilter(t *testing.T) {
	status := order.OrderStatusConfirmed
	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), &status, 10)
	require.NoError(t, err)
	require.NotNil(t, query.Status())
	assert.Equal(t, order.OrderStatusConfirmed, *query.Status())
}

func TestNewListOrdersQuery_InvalidStatus(t *testing.T) {
	status := order.OrderStatus(99)
	_, err := queries.NewListOrdersQuery(kernel.NewUUID(), &status, 10)
	require.Error(t, err)
}

func TestListOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
}
