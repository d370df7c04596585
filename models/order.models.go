package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the single source of truth for an order's lifecycle.
// The isPaid/shipment booleans on the document are kept in sync with it
// for API compatibility.
type OrderStatus string

const (
	StatusCreated         OrderStatus = "created"
	StatusAwaitingPayment OrderStatus = "awaiting_payment"
	StatusPaid            OrderStatus = "paid"
	StatusShipped         OrderStatus = "shipped"
)

// transitions maps each status to the statuses it may move to.
// Shipped is terminal. Paid -> Paid covers re-confirmation of payment
// with a new transaction id (last write wins).
var transitions = map[OrderStatus][]OrderStatus{
	StatusCreated:         {StatusAwaitingPayment, StatusPaid},
	StatusAwaitingPayment: {StatusPaid},
	StatusPaid:            {StatusPaid, StatusShipped},
	StatusShipped:         {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is a single line item on an order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Order represents a purchase progressing through payment and shipment.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Buyer         string             `bson:"buyer" json:"buyer"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalCost     float64            `bson:"totalCost" json:"totalCost"`
	Status        OrderStatus        `bson:"status" json:"status"`
	IsPaid        bool               `bson:"isPaid" json:"isPaid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Shipment      bool               `bson:"shipment" json:"shipment"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
