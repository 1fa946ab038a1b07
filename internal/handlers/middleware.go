package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"aicademy/internal/models"
	"aicademy/internal/security"
	"aicademy/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	ParentContextKey ContextKey = "parent"
	KidIDContextKey  ContextKey = "kid_id"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService    *service.AuthService
	kidTokenSecret string
	rateLimiter    *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, kidTokenSecret string, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService:    authService,
		kidTokenSecret: kidTokenSecret,
		rateLimiter:    rateLimiter,
	}
}

// RequireAuth requires a valid parent session cookie
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session_id")
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
			return
		}

		parent, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			// Clear the stale cookie so clients stop sending it
			http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
			respondWithError(w, http.StatusUnauthorized, "Session is no longer valid", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), ParentContextKey, parent)
		next(w, r.WithContext(ctx))
	}
}

// RequireKidToken requires a valid kid activity token in the
// Authorization header (Bearer scheme)
func (m *Middleware) RequireKidToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			respondWithError(w, http.StatusUnauthorized, "Kid activity token required", "", nil)
			return
		}

		kidID, err := security.ParseKidToken(tokenString, m.kidTokenSecret)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired activity token", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), KidIDContextKey, kidID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the per-IP request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, slow down", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ParentFromContext retrieves the authenticated parent from the request context
func ParentFromContext(ctx context.Context) *models.Parent {
	parent, ok := ctx.Value(ParentContextKey).(*models.Parent)
	if !ok {
		return nil
	}
	return parent
}

// KidIDFromContext retrieves the authenticated kid ID from the request context
func KidIDFromContext(ctx context.Context) (int64, bool) {
	kidID, ok := ctx.Value(KidIDContextKey).(int64)
	return kidID, ok
}
