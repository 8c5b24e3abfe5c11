package middleware

import (
	"context"
	"net/http"

	"mcsons/globals"
	"mcsons/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Name   string   `json:"name"`
	UserID string   `json:"userId"`
	Role   []string `json:"role"`
	jwt.RegisteredClaims
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
			return globals.JwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// Store identity in context
		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin wraps Authenticate and rejects non-admin callers.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !utils.IsAdminRequest(r) {
			utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, ps)
	})
}

