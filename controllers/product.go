package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
	"marketplace-api/store"
	"marketplace-api/utils"
)

// ProductController handles product-related requests
type ProductController struct {
	Products store.ProductStore
}

// NewProductController creates a new ProductController
func NewProductController(products store.ProductStore) *ProductController {
	return &ProductController{Products: products}
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}
	if product.Name == "" {
		utils.RespondError(w, utils.Validation("name is required", "name"))
		return
	}
	if product.AvailableQty < 0 {
		utils.RespondError(w, utils.Validation("availableQty must not be negative", "availableQty"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id, err := pc.Products.Insert(ctx, &product)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// GetProducts retrieves all products, most recently added first. Public.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	products, err := pc.Products.All(ctx)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, utils.Validation("invalid product ID", "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	product, err := pc.Products.ByID(ctx, id)
	if err != nil {
		utils.RespondError(w, mapStoreErr(err, "product not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// AdjustQuantity applies a delta to a product's available quantity. The
// store rejects any decrement that would take the quantity below zero.
func (pc *ProductController) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID    string `json:"id"`
		Delta int    `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}
	id, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		utils.RespondError(w, utils.Validation("invalid product ID", "id"))
		return
	}
	if body.Delta == 0 {
		utils.RespondError(w, utils.Validation("delta must be non-zero", "delta"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := pc.Products.AdjustQuantity(ctx, id, body.Delta); err != nil {
		if errors.Is(err, store.ErrInsufficientStock) {
			utils.RespondError(w, utils.Validation("insufficient stock for requested quantity", "delta"))
			return
		}
		utils.RespondError(w, mapStoreErr(err, "product not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "quantity updated"})
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, utils.Validation("invalid product ID", "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := pc.Products.Delete(ctx, id); err != nil {
		utils.RespondError(w, mapStoreErr(err, "product not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
