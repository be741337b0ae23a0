package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// A private key for context access
type contextKey string

const userContextKey = contextKey("user")

// TokenVerifier is the slice of the Firebase auth client the middleware needs.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware creates a middleware that verifies Firebase ID tokens and
// attaches the verified token to the request context. The principal's email
// (not the UID) is what downstream handlers key on.
func AuthMiddleware(client TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access!"})
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := client.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			log.Printf("Error verifying Firebase ID token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access!"})
			return
		}

		// Store the verified token claims in the context for handlers to use
		ctx := context.WithValue(c.Request.Context(), userContextKey, token)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ForContext finds the verified token from the context.
func ForContext(ctx context.Context) *auth.Token {
	raw, _ := ctx.Value(userContextKey).(*auth.Token)
	return raw
}

// EmailFromContext returns the verified principal's email, or "" when the
// request carried no valid token.
func EmailFromContext(ctx context.Context) string {
	token := ForContext(ctx)
	if token == nil {
		return ""
	}
	email, _ := token.Claims["email"].(string)
	return email
}
