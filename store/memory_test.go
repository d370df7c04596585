package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

func TestUsers_UpsertKeepsRole(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.Users.Upsert(ctx, "a@x.com", models.Profile{Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, s.Users.GrantAdmin(ctx, "a@x.com"))

	// A later sign-in must not reset the promoted role.
	created, err = s.Users.Upsert(ctx, "a@x.com", models.Profile{Name: "Alice"})
	require.NoError(t, err)
	assert.False(t, created)

	user, err := s.Users.ByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	users, err := s.Users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUsers_GrantAdminMissing(t *testing.T) {
	s := NewMemoryStore()
	err := s.Users.GrantAdmin(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProducts_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Products.Insert(ctx, &models.Product{Name: "first", AvailableQty: 1})
	require.NoError(t, err)
	_, err = s.Products.Insert(ctx, &models.Product{Name: "second", AvailableQty: 1})
	require.NoError(t, err)

	products, err := s.Products.All(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "second", products[0].Name)
	assert.Equal(t, "first", products[1].Name)
}

func TestProducts_AdjustQuantity(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Products.Insert(ctx, &models.Product{Name: "widget", AvailableQty: 5})
	require.NoError(t, err)

	err = s.Products.AdjustQuantity(ctx, id, -10)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	product, err := s.Products.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, product.AvailableQty, "failed decrement must not change stock")

	require.NoError(t, s.Products.AdjustQuantity(ctx, id, -3))
	require.NoError(t, s.Products.AdjustQuantity(ctx, id, 4))

	product, err = s.Products.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, product.AvailableQty)
}

func TestOrders_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Orders.Insert(ctx, &models.Order{
		Buyer: "a@x.com",
		Items: []models.OrderItem{{Quantity: 1, Price: 19.99}},
	})
	require.NoError(t, err)

	order, err := s.Orders.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, order.Status)
	assert.False(t, order.IsPaid)
	assert.False(t, order.Shipment)

	// Shipping an unpaid order is rejected.
	assert.ErrorIs(t, s.Orders.MarkShipped(ctx, id), ErrOrderNotPaid)

	require.NoError(t, s.Orders.MarkAwaitingPayment(ctx, id))
	require.NoError(t, s.Orders.MarkPaid(ctx, id, "tx123"))

	order, err = s.Orders.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, order.Status)
	assert.True(t, order.IsPaid)
	assert.Equal(t, "tx123", order.TransactionID)

	// Re-confirmation overwrites the transaction id.
	require.NoError(t, s.Orders.MarkPaid(ctx, id, "tx456"))
	order, err = s.Orders.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "tx456", order.TransactionID)

	require.NoError(t, s.Orders.MarkShipped(ctx, id))
	order, err = s.Orders.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, order.Status)
	assert.True(t, order.Shipment)

	// Shipped is terminal for payment; repeating the shipment is a no-op.
	assert.ErrorIs(t, s.Orders.MarkPaid(ctx, id, "tx789"), ErrOrderShipped)
	assert.NoError(t, s.Orders.MarkShipped(ctx, id))
}

func TestOrders_MissingDocument(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id := mustInsertThenDelete(t, s)

	assert.ErrorIs(t, s.Orders.MarkPaid(ctx, id, "tx1"), ErrNotFound)
	assert.ErrorIs(t, s.Orders.MarkShipped(ctx, id), ErrNotFound)
	assert.ErrorIs(t, s.Orders.MarkAwaitingPayment(ctx, id), ErrNotFound)
	_, err := s.Orders.ByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func mustInsertThenDelete(t *testing.T, s *Store) primitive.ObjectID {
	t.Helper()
	ctx := context.Background()
	oid, err := s.Orders.Insert(ctx, &models.Order{Buyer: "a@x.com", Items: []models.OrderItem{{Quantity: 1}}})
	require.NoError(t, err)
	require.NoError(t, s.Orders.Delete(ctx, oid))
	return oid
}
