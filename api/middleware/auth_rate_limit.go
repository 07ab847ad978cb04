package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/universe-backend/api/responses"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/angelmondragon/universe-backend/pkg/logger"
)

// maxAuthBodyBytes bounds how much of a signup or login body is buffered to
// read the identifier.
const maxAuthBodyBytes = 1 << 20

// RateLimiter is satisfied by the redis client.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy defines the throttling parameters for an auth route.
type AuthRateLimitPolicy struct {
	name            string
	window          time.Duration
	ipLimit         int
	identifierLimit int
}

// NewAuthRateLimitPolicy builds a policy with the supplied window and limits.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, identifierLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:            strings.ToLower(strings.TrimSpace(name)),
		window:          window,
		ipLimit:         ipLimit,
		identifierLimit: identifierLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.identifierLimit > 0)
}

func (p AuthRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

func (p AuthRateLimitPolicy) ipScope(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("ip:%s:%s", p.normalizedName(), ip)
}

func (p AuthRateLimitPolicy) identifierScope(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("identifier:%s:%s", p.normalizedName(), hash)
}

// AuthRateLimit enforces per-IP and per-identifier counters for the signup and
// login routes. A nil limiter disables throttling.
func AuthRateLimit(policy AuthRateLimitPolicy, limiter RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := ClientIP(r)
			if policy.ipLimit > 0 {
				if scope := policy.ipScope(ip); scope != "" {
					if allowed, count, err := limiter.FixedWindowAllow(ctx, scope, int64(policy.ipLimit), policy.window); err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					} else if !allowed {
						respondRateLimited(ctx, logg, w, policy, "ip", ip, "", count, policy.ipLimit)
						return
					}
				}
			}

			if policy.identifierLimit > 0 && r.Body != nil {
				body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAuthBodyBytes))
				if err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body too large"))
						return
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if identifier := normalizeIdentifier(extractIdentifier(body)); identifier != "" {
					hash := hashValue(identifier)
					if allowed, count, err := limiter.FixedWindowAllow(ctx, policy.identifierScope(hash), int64(policy.identifierLimit), policy.window); err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					} else if !allowed {
						respondRateLimited(ctx, logg, w, policy, "identifier", "", hash, count, policy.identifierLimit)
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, scope, ip, identifierHash string, count int64, limit int) {
	if logg != nil {
		fields := map[string]any{
			"scope":          scope,
			"policy":         policy.normalizedName(),
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		}
		if ip != "" {
			fields["ip"] = ip
		}
		if identifierHash != "" {
			fields["identifier_hash"] = identifierHash
		}
		logCtx := logg.WithFields(ctx, fields)
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	err := pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded")
	responses.WriteError(ctx, nil, w, err)
}

// extractIdentifier reads the login identifier, falling back to the signup
// email and student id.
func extractIdentifier(payload []byte) string {
	var body struct {
		Identifier string `json:"identifier"`
		Email      string `json:"email"`
		StudentID  string `json:"student_id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	switch {
	case body.Identifier != "":
		return body.Identifier
	case body.Email != "":
		return body.Email
	}
	return body.StudentID
}

func normalizeIdentifier(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
