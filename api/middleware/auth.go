package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/JGP1992/theitaliancorner-sub001/api/responses"
	pkgAuth "github.com/JGP1992/theitaliancorner-sub001/pkg/auth"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/auth/session"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/requestctx"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "access_token"

// Auth validates a bearer token (or the access token cookie) and seeds the
// request context with the claims.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := AccessToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxRole, claims.Role)
			ctx = context.WithValue(ctx, ctxPermissions, claims.Permissions)
			ctx = context.WithValue(ctx, ctxAccessID, claims.ID)
			ctx = requestctx.WithActor(ctx, requestctx.Actor{UserID: claims.UserID, Role: claims.Role})

			if logg != nil {
				ctx = logg.WithActor(ctx, claims.UserID.String(), claims.Role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessToken extracts the raw access token from the Authorization header,
// falling back to the access token cookie.
func AccessToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		token := raw
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[7:])
		}
		return token
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
