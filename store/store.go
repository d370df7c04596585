package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInsufficientStock is returned when a quantity adjustment would
	// take availableQty below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderShipped is returned when a payment is recorded against an
	// order that has already shipped.
	ErrOrderShipped = errors.New("order already shipped")
	// ErrOrderNotPaid is returned when shipment is requested for an
	// order that has not been paid.
	ErrOrderNotPaid = errors.New("order not paid")
)

// UserStore holds registered identities keyed by email.
type UserStore interface {
	// Upsert creates or updates the identity for email. The stored role is
	// set to "user" on first creation and never overwritten afterwards.
	// Reports whether a new identity was created.
	Upsert(ctx context.Context, email string, profile models.Profile) (created bool, err error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, email string, profile models.Profile) error
	// GrantAdmin promotes the identity to admin. Idempotent.
	GrantAdmin(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

// ProductStore holds catalog items.
type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error)
	// All returns products most-recently-inserted first.
	All(ctx context.Context) ([]models.Product, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// AdjustQuantity applies delta to availableQty as a single conditional
	// update; a decrement that would go below zero fails with
	// ErrInsufficientStock and leaves the document untouched.
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderStore holds orders and applies their lifecycle transitions.
// Every transition is a single conditional update so concurrent callers
// race at the store, not in application code.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) (primitive.ObjectID, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ByBuyer(ctx context.Context, buyer string) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	// MarkAwaitingPayment moves a created order to awaiting_payment.
	// A no-op if the order has already advanced.
	MarkAwaitingPayment(ctx context.Context, id primitive.ObjectID) error
	// MarkPaid records payment with the given transaction id. Repeated
	// calls overwrite the transaction id (the provider's confirmation is
	// the source of truth). Fails with ErrOrderShipped once shipped.
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error
	// MarkShipped moves a paid order to shipped. Fails with
	// ErrOrderNotPaid before payment; a no-op once shipped.
	MarkShipped(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReviewStore holds customer reviews, append-only.
type ReviewStore interface {
	Insert(ctx context.Context, r *models.Review) (primitive.ObjectID, error)
	// All returns reviews most-recently-inserted first.
	All(ctx context.Context) ([]models.Review, error)
}

// Store bundles the per-entity collections behind one handle.
type Store struct {
	Users    UserStore
	Products ProductStore
	Orders   OrderStore
	Reviews  ReviewStore
}
