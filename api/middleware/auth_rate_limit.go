package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pitlanehq/garage-backend/api/responses"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy holds the fixed-window limits applied to one auth
// surface. A zero window or all-zero limits disables the middleware.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	p := AuthRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
	if p.name == "" {
		p.name = "auth"
	}
	return p
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// limitCheck is one counter to bump and test for this request.
type limitCheck struct {
	scope string
	key   string
	limit int64
}

// AuthRateLimit counts login attempts per client IP and per submitted email
// in redis fixed windows and rejects with 429 once either limit is crossed.
// The body is buffered so the downstream handler can still read the email.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			checks := make([]limitCheck, 0, 2)
			if policy.ipLimit > 0 {
				if ip := clientIP(r); ip != "" {
					checks = append(checks, limitCheck{
						scope: "ip",
						key:   fmt.Sprintf("ratelimit:%s:ip:%s", policy.name, ip),
						limit: int64(policy.ipLimit),
					})
				}
			}
			if policy.emailLimit > 0 {
				email, err := peekEmail(r)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				if email != "" {
					checks = append(checks, limitCheck{
						scope: "email",
						key:   fmt.Sprintf("ratelimit:%s:email:%s", policy.name, digest(email)),
						limit: int64(policy.emailLimit),
					})
				}
			}

			for _, check := range checks {
				count, err := store.IncrWithTTL(ctx, check.key, policy.window)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count > check.limit {
					if logg != nil {
						logCtx := logg.WithFields(ctx, map[string]any{
							"policy":         policy.name,
							"scope":          check.scope,
							"attempts":       count,
							"limit":          check.limit,
							"window_seconds": int(policy.window.Seconds()),
						})
						logg.Warn(logCtx, "auth.rate_limit.blocked")
					}
					responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// peekEmail reads the body to pull the email field, then restores it for the
// login handler.
func peekEmail(r *http.Request) (string, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", nil
	}
	return strings.ToLower(strings.TrimSpace(body.Email)), nil
}

// clientIP prefers proxy headers over RemoteAddr.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
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

func digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
