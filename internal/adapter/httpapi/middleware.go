package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/sujayx07/TruthScope/internal/adapter/repository"
	"github.com/sujayx07/TruthScope/internal/domain"
)

// userContextKey is where the auth middleware stores the resolved user.
const userContextKey = "truthscope.user"

// CurrentUser returns the user resolved by the auth middleware, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// Auth extracts the caller's subject ID from the Authorization header and
// resolves it to a user row, creating a free-tier row on first sight. Token
// verification against the identity provider is handled upstream; this
// service only needs the subject.
func Auth(users domain.UserRepository, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization header missing or invalid"})
			}
			subject := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if subject == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "empty credential"})
			}

			user, err := users.GetOrCreate(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, repository.ErrEmptySubjectID) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "empty credential"})
				}
				logger.Error("user lookup failed", "error", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "user lookup failed"})
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// TierLimiter throttles free-tier callers with a per-user token bucket.
// Paid tiers pass through.
type TierLimiter struct {
	rate  rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewTierLimiter(r float64, burst int) *TierLimiter {
	return &TierLimiter{
		rate:     rate.Limit(r),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (t *TierLimiter) limiterFor(userID string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	limiter, ok := t.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(t.rate, t.burst)
		t.limiters[userID] = limiter
	}
	return limiter
}

// Middleware enforces the free-tier limit. Must run after Auth.
func (t *TierLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			if user.Tier == domain.TierFree && !t.limiterFor(user.ID.String()).Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "free tier rate limit exceeded"})
			}
			return next(c)
		}
	}
}
