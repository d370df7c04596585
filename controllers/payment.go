package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/store"
	"marketplace-api/utils"
)

// PaymentController requests payment intents from the external provider.
type PaymentController struct {
	Intents utils.IntentCreator
	Orders  store.OrderStore
}

func NewPaymentController(intents utils.IntentCreator, orders store.OrderStore) *PaymentController {
	return &PaymentController{Intents: intents, Orders: orders}
}

// CreatePaymentIntent quotes the minor-unit amount for a total and asks
// the provider for an intent. A provider failure is reported as-is and
// never retried here: intent creation is not idempotent and a blind retry
// can double-charge the setup. An optional orderId moves the referenced
// order to awaiting_payment.
func (pc *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TotalCost float64 `json:"totalCost"`
		OrderID   string  `json:"orderId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}

	amount, err := utils.MinorUnits(body.TotalCost)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if body.OrderID != "" {
		orderID, err := primitive.ObjectIDFromHex(body.OrderID)
		if err != nil {
			utils.RespondError(w, utils.Validation("invalid order ID", "orderId"))
			return
		}
		if err := pc.Orders.MarkAwaitingPayment(ctx, orderID); err != nil {
			utils.RespondError(w, mapStoreErr(err, "order not found"))
			return
		}
	}

	clientSecret, err := pc.Intents.CreateIntent(ctx, amount)
	if err != nil {
		utils.RespondError(w, utils.Upstream("payment provider error"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}
