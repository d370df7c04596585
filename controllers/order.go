package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/store"
	"marketplace-api/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Orders       store.OrderStore
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders store.OrderStore, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Orders:       orders,
		EmailService: emailService,
	}
}

// CreateOrder places a new order for the authenticated buyer. The buyer
// field is always the caller's email, whatever the body says.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		utils.RespondError(w, utils.Unauthenticated("Unauthorized Access"))
		return
	}

	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}
	if len(order.Items) == 0 {
		utils.RespondError(w, utils.Validation("order must contain at least one item", "items"))
		return
	}
	order.Buyer = email

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	id, err := oc.Orders.Insert(ctx, &order)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// GetOrders lists the caller's own orders. Asking for someone else's is
// forbidden.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		utils.RespondError(w, utils.Unauthenticated("Unauthorized Access"))
		return
	}
	if buyer := r.URL.Query().Get("buyer"); buyer != "" && buyer != email {
		utils.RespondError(w, utils.Forbidden("Forbidden"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orders, err := oc.Orders.ByBuyer(ctx, email)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, orders)
}

// GetOrderByID retrieves a single order by ID
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, utils.Validation("invalid order ID", "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	order, err := oc.Orders.ByID(ctx, id)
	if err != nil {
		utils.RespondError(w, mapStoreErr(err, "order not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order by ID
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, utils.Validation("invalid order ID", "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := oc.Orders.Delete(ctx, id); err != nil {
		utils.RespondError(w, mapStoreErr(err, "order not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

// GetAllOrders lists every order (Admin only)
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	orders, err := oc.Orders.All(ctx)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

// MarkPaid records the provider's payment confirmation on an order.
// Callable by the buyer; repeating the call with a different transaction
// id overwrites the previous one. Rejected once the order has shipped.
func (oc *OrderController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, utils.Validation("invalid order ID", "id"))
		return
	}

	var body struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}
	if body.TransactionID == "" {
		utils.RespondError(w, utils.Validation("transactionId is required", "transactionId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := oc.Orders.MarkPaid(ctx, id, body.TransactionID); err != nil {
		if errors.Is(err, store.ErrOrderShipped) {
			utils.RespondError(w, utils.Validation("order has already shipped", "id"))
			return
		}
		utils.RespondError(w, mapStoreErr(err, "order not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "payment recorded"})
}

// MarkShipped moves a paid order to shipped (Admin only). An order that
// has not been paid cannot ship.
func (oc *OrderController) MarkShipped(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}
	id, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		utils.RespondError(w, utils.Validation("invalid order ID", "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := oc.Orders.MarkShipped(ctx, id); err != nil {
		if errors.Is(err, store.ErrOrderNotPaid) {
			utils.RespondError(w, utils.Validation("order has not been paid", "id"))
			return
		}
		utils.RespondError(w, mapStoreErr(err, "order not found"))
		return
	}

	if order, err := oc.Orders.ByID(ctx, id); err == nil {
		go func(to, orderID string) {
			if err := oc.EmailService.SendOrderShippedEmail(to, orderID); err != nil {
				log.Printf("Failed to send shipped email to %s: %v", to, err)
			}
		}(order.Buyer, order.ID.Hex())
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "order shipped"})
}
