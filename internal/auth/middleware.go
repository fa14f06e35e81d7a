package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/sirupsen/logrus"
)

type claimsKey struct{}

var ErrNoClaims = errors.New("no user claims in context")

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			config.Message(w, http.StatusUnauthorized, "Missing Authorization Header")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				log.Debug("expired token")
				config.Message(w, http.StatusUnauthorized, "Token has expired")
				return
			}
			log.WithError(err).Warn("invalid token")
			config.Message(w, http.StatusForbidden, "Signature verification failed or token is invalid")
			return
		}

		ctx := WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := GetUserClaimsFromContext(r.Context())
			if err != nil {
				config.Message(w, http.StatusUnauthorized, "Missing Authorization Header")
				return
			}
			if claims.Role != role {
				config.WithContext(r.Context()).Warnf("role %s required", role)
				config.Message(w, http.StatusForbidden, role+" access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, claimsKey{}, claims)
	return config.WithLogFields(ctx, logrus.Fields{
		"principal_id":   claims.UserID,
		"principal_role": claims.Role,
	})
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if strings.HasPrefix(strings.ToLower(h), "bearer ") {
			return strings.TrimSpace(h[len("bearer "):])
		}
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
