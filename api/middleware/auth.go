package middleware

import (
	"net/http"
	"strings"

	"github.com/wanderstay/wanderstay-backend/api/responses"
	pkgauth "github.com/wanderstay/wanderstay-backend/pkg/auth"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	pkgerrors "github.com/wanderstay/wanderstay-backend/pkg/errors"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the guest
// identity.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithGuestID(r.Context(), claims.GuestID)
			if claims.PhoneNumber != "" {
				ctx = withPhoneNumber(ctx, claims.PhoneNumber)
			}
			if logg != nil {
				ctx = logg.WithGuestID(ctx, claims.GuestID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
