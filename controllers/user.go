package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"marketplace-api/middleware"
	"marketplace-api/models"
	"marketplace-api/store"
	"marketplace-api/utils"
)

// UserController handles identity-related requests
type UserController struct {
	Users        store.UserStore
	EmailService *utils.EmailService
}

// NewUserController creates a new UserController with EmailService
func NewUserController(users store.UserStore, emailService *utils.EmailService) *UserController {
	return &UserController{
		Users:        users,
		EmailService: emailService,
	}
}

// UpsertUser handles sign-in: it creates or updates the identity for the
// email in the path and issues a fresh token. Public by design; this is
// the bootstrap endpoint. The stored role is never touched by the upsert.
func (uc *UserController) UpsertUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	created, err := uc.Users.Upsert(ctx, email, profile)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}

	token, err := utils.GenerateJWT(email)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if created {
		go func(to, name string) {
			if err := uc.EmailService.SendWelcomeEmail(to, name); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", to, err)
			}
		}(email, profile.Name)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"created": created,
	})
}

// GetUser retrieves an identity by email
func (uc *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondError(w, utils.Validation("email query parameter is required", "email"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := uc.Users.ByEmail(ctx, email)
	if err != nil {
		utils.RespondError(w, mapStoreErr(err, "user not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile patches the authenticated identity's profile fields.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		utils.RespondError(w, utils.Unauthenticated("Unauthorized Access"))
		return
	}
	if q := r.URL.Query().Get("email"); q != "" && q != email {
		utils.RespondError(w, utils.Forbidden("Forbidden"))
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.RespondError(w, utils.Validation("invalid request body", ""))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := uc.Users.UpdateProfile(ctx, email, profile); err != nil {
		utils.RespondError(w, mapStoreErr(err, "user not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

// GetAllUsers lists every identity (Admin only)
func (uc *UserController) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	users, err := uc.Users.All(ctx)
	if err != nil {
		utils.RespondError(w, utils.Upstream("storage unavailable"))
		return
	}
	utils.RespondJSON(w, http.StatusOK, users)
}

// DeleteUser removes an identity (Admin only)
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := uc.Users.Delete(ctx, email); err != nil {
		utils.RespondError(w, mapStoreErr(err, "user not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// GrantAdmin promotes the target identity to admin (Admin only). Granting
// admin to an existing admin is a no-op.
func (uc *UserController) GrantAdmin(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := uc.Users.GrantAdmin(ctx, email); err != nil {
		utils.RespondError(w, mapStoreErr(err, "user not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "admin role granted"})
}

// CheckAdmin reports whether the identity holds the admin role. Public.
func (uc *UserController) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := uc.Users.ByEmail(ctx, email)
	if err != nil {
		utils.RespondError(w, mapStoreErr(err, "user not found"))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"admin": user.IsAdmin()})
}
