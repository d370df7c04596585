package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key
var JwtKey []byte // loaded from .env at startup

// TokenTTL is the validity window of issued tokens.
var TokenTTL = 365 * 24 * time.Hour

// Claims represents the JWT claims. Tokens bind only the email; the role
// is looked up live on every guarded request.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed token for the given email.
func GenerateJWT(email string) (string, error) {
	expirationTime := time.Now().Add(TokenTTL)
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseJWT validates a token's signature and expiry and returns its claims.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
