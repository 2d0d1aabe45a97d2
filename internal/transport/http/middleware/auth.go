package middleware

import (
	"net/http"
	"strings"

	"github.com/shortlyhq/shortly/internal/constants"
	"github.com/shortlyhq/shortly/internal/infrastructure/auth"
	"github.com/shortlyhq/shortly/pkg/httputils"
)

// JWTAuth verifies the Bearer token and stores the authenticated claims on
// the request context for handlers to read via auth.GetIdentity.
func JWTAuth(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
				return
			}

			claims, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), claims)))
		})
	}
}
