package middleware

import (
	"net/http"

	"invoice-desk/internal/auth"
	"invoice-desk/internal/logger"
	"invoice-desk/internal/utils"
)

// RequireAuth rejects requests that carry no valid access token, either as the
// access_token cookie or as a bearer Authorization header.
func RequireAuth(svc auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.Username)
			ctx = logger.WithUsername(ctx, claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
