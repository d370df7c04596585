package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"marketplace-api/controllers"
	"marketplace-api/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	guard *middleware.Guard,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	reviewController *controllers.ReviewController,
	paymentController *controllers.PaymentController,
) {
	bearer := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(guard.RequireAdmin(h))
	}

	// Public routes
	router.HandleFunc("/product", productController.GetProducts).Methods("GET")
	router.HandleFunc("/review", reviewController.GetReviews).Methods("GET")
	router.HandleFunc("/user/{email}", userController.UpsertUser).Methods("PUT") // sign-in bootstrap, issues the token
	router.HandleFunc("/admin/{email}", userController.CheckAdmin).Methods("GET")

	// Product routes
	router.Handle("/product", admin(productController.CreateProduct)).Methods("POST")
	router.Handle("/product", bearer(productController.AdjustQuantity)).Methods("PUT")
	router.Handle("/product/{id}", bearer(productController.GetProductByID)).Methods("GET")
	router.Handle("/product/{id}", admin(productController.DeleteProduct)).Methods("DELETE")

	// User routes
	router.Handle("/user", bearer(userController.GetUser)).Methods("GET")
	router.Handle("/user", bearer(userController.UpdateProfile)).Methods("PATCH")
	router.Handle("/alluser", admin(userController.GetAllUsers)).Methods("GET")
	router.Handle("/alluser/{email}", admin(userController.DeleteUser)).Methods("DELETE")
	router.Handle("/alluser/admin/{email}", admin(userController.GrantAdmin)).Methods("PATCH")

	// Order routes
	router.Handle("/order", bearer(orderController.CreateOrder)).Methods("POST")
	router.Handle("/order", bearer(orderController.GetOrders)).Methods("GET")
	router.Handle("/order/{id}", bearer(orderController.GetOrderByID)).Methods("GET")
	router.Handle("/order/{id}", bearer(orderController.DeleteOrder)).Methods("DELETE")
	router.Handle("/allorder", admin(orderController.GetAllOrders)).Methods("GET")
	router.Handle("/allorder", admin(orderController.MarkShipped)).Methods("PUT")
	router.Handle("/allorder/{id}", bearer(orderController.MarkPaid)).Methods("PATCH")

	// Review routes
	router.Handle("/review", bearer(reviewController.CreateReview)).Methods("POST")

	// Payment routes
	router.Handle("/create-payment-intent", bearer(paymentController.CreatePaymentIntent)).Methods("POST")
}
