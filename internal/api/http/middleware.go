package http

import (
	"net/http"
	"strings"

	"toolshed-backend/internal/logger"
	"toolshed-backend/internal/security"
)

// AuthMiddleware validates the bearer token and attaches the actor's ID
// to the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Debug("Token validation failed", "error", err)
			respondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), userID)))
	})
}
