package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"marketplace-api/models"
	"marketplace-api/store"
	"marketplace-api/utils"
)

// ReviewController handles review-related requests
type ReviewController struct {
	Reviews store.ReviewStore
}

func NewReviewController(reviews store.ReviewStore) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

// CreateReview appends a review.
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReviewData models.Review `json:"reviewData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}
	if body.ReviewData.Comment == "" {
		utils.RespondError(w, utils.Validation("comment is required", "reviewData.comment"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id, err := rc.Reviews.Insert(ctx, &body.ReviewData)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// GetReviews lists reviews, most recent first. Public.
func (rc *ReviewController) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	reviews, err := rc.Reviews.All(ctx)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}
	utils.RespondJSON(w, http.StatusOK, reviews)
}
