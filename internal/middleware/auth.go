package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/placementdrive/listing-server-go/internal/errors"
	"github.com/placementdrive/listing-server-go/internal/httputil"
	"github.com/placementdrive/listing-server-go/internal/token"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// GetClaims returns the verified token claims placed on the context by
// the auth middleware, or nil outside a protected route.
func GetClaims(ctx context.Context) *token.Claims {
	if claims, ok := ctx.Value(ClaimsContextKey).(*token.Claims); ok {
		return claims
	}
	return nil
}

// Authorizer validates a bearer token and returns its claims.
// *service.AuthService is the production implementation.
type Authorizer interface {
	Authorize(ctx context.Context, tokenStr string) (*token.Claims, error)
}

// AuthMiddleware guards protected routes. The token check runs before the
// wrapped handler, so a rejected request never reaches the operation.
type AuthMiddleware struct {
	auth Authorizer
}

func NewAuthMiddleware(auth Authorizer) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractBearerToken(r)
		if tokenStr == "" {
			httputil.WriteError(w, apperrors.Unauthorized("Missing bearer token"))
			return
		}

		claims, err := m.auth.Authorize(r.Context(), tokenStr)
		if err != nil {
			if apperrors.GetCode(err) == apperrors.ErrCodeDatabase {
				log.Error().Err(err).Msg("auth middleware: database error")
			}
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
