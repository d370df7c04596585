// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"marketplace-api/config"
	"marketplace-api/controllers"
	"marketplace-api/middleware"
	"marketplace-api/routes"
	"marketplace-api/store"
	"marketplace-api/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Set the JWT signing secret and token lifetime
	utils.JwtKey = []byte(cfg.JWTSecret)
	utils.TokenTTL = time.Duration(cfg.TokenTTLHrs) * time.Hour

	// Initialize EmailService
	emailService := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)

	// Connect to MongoDB
	client := utils.ConnectDB(cfg.MongoURI)
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()
	db := store.NewMongoStore(client, cfg.Database)

	// Initialize controllers
	userController := controllers.NewUserController(db.Users, emailService)
	productController := controllers.NewProductController(db.Products)
	orderController := controllers.NewOrderController(db.Orders, emailService)
	reviewController := controllers.NewReviewController(db.Reviews)
	paymentController := controllers.NewPaymentController(utils.NewStripeIntents(cfg.StripeSecretKey), db.Orders)

	guard := middleware.NewGuard(db.Users)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RequestID)

	// Register routes
	routes.RegisterRoutes(router, guard, userController, productController, orderController, reviewController, paymentController)

	// Start the server
	fmt.Printf("Server is running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
