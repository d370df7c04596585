package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds all process-wide configuration. Loaded once at startup and
// immutable afterwards.
type App struct {
	// Network
	Port string `envconfig:"PORT" default:"8000"`
	// DB
	MongoURI string `envconfig:"MONGO_URI" required:"true"`
	Database string `envconfig:"MONGO_DB" default:"marketplace"`
	// Auth
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLHrs int    `envconfig:"TOKEN_TTL_HOURS" default:"8760"`
	// Payments
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	// Mail (optional; notifications are disabled when the token is empty)
	PostmarkToken string `envconfig:"POSTMARK_API_TOKEN"`
	EmailSender   string `envconfig:"EMAIL_SENDER"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
