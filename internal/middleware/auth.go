package middleware

import (
	"bingoo_backend/pkg/token"
	"context"
	"net/http"
	"strconv"
	"strings"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// Auth - проверяет access токен из заголовка Authorization
// и кладет ID пользователя в контекст запроса
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing access token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(strings.TrimPrefix(header, "Bearer "), secretKey)
			if err != nil {
				http.Error(w, "invalid access token", http.StatusUnauthorized)
				return
			}

			userID, err := strconv.Atoi(claims.ID)
			if err != nil {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID - кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext - достает ID пользователя, положенный middleware
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}
