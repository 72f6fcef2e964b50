package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JGP1992/theitaliancorner-sub001/api/responses"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

const maxLoginBodyBytes = 16 << 10

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// loginCounter is one fixed-window bucket checked before a login attempt.
type loginCounter struct {
	dimension string
	limit     int64
	subject   func(r *http.Request, email string) string
}

// LoginRateLimit throttles login attempts per client IP and per email
// address. Emails are hashed before they are used as counter keys.
func LoginRateLimit(cfg config.AuthRateLimitConfig, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	counters := make([]loginCounter, 0, 2)
	if cfg.LoginIPLimit > 0 {
		counters = append(counters, loginCounter{
			dimension: "ip",
			limit:     int64(cfg.LoginIPLimit),
			subject:   func(r *http.Request, _ string) string { return clientIP(r) },
		})
	}
	if cfg.LoginEmailLimit > 0 {
		counters = append(counters, loginCounter{
			dimension: "email",
			limit:     int64(cfg.LoginEmailLimit),
			subject: func(_ *http.Request, email string) string {
				if email == "" {
					return ""
				}
				return hashValue(email)
			},
		})
	}

	return func(next http.Handler) http.Handler {
		if store == nil || cfg.LoginWindow <= 0 || len(counters) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBodyBytes))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unable to read request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			email := loginEmail(body)

			for _, c := range counters {
				subject := c.subject(r, email)
				if subject == "" {
					continue
				}
				allowed, attempts, err := store.FixedWindowAllow(ctx, "login:"+c.dimension+":"+subject, c.limit, cfg.LoginWindow)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiter unavailable"))
					return
				}
				if !allowed {
					if logg != nil {
						logg.Warn(logg.WithFields(ctx, map[string]any{
							"dimension": c.dimension,
							"attempts":  attempts,
							"limit":     c.limit,
						}), "auth.login.throttled")
					}
					w.Header().Set("Retry-After", strconv.Itoa(int(cfg.LoginWindow.Seconds())))
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func loginEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
