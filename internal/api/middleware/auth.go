package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/order-fulfillment/internal/auth"
)

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ExtractToken extracts JWT token from cookie or Authorization header
func ExtractToken(r *http.Request) string {
	// Try cookie first (for browser)
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	// Fall back to Authorization header (for API clients)
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type contextKey string

const (
	CustomerContextKey contextKey = "customer"
)

// AuthMiddleware validates JWT tokens and adds customer claims to context
func AuthMiddleware(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractToken(r)
			if tokenString == "" {
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateAccessToken(tokenString)
			if err != nil {
				respondError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CustomerContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCustomerFromContext retrieves customer claims from the request context
func GetCustomerFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(CustomerContextKey).(*auth.Claims)
	return claims, ok
}

// GetCustomerID is a helper to get just the customer ID from context
func GetCustomerID(ctx context.Context) string {
	claims, ok := GetCustomerFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.CustomerID
}
