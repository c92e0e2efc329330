package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"authbackend/auth"
	"authbackend/models"
	"authbackend/repository"

	"go.uber.org/zap"
)

type userKey struct{}

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, u models.PublicUser) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext retrieves the authenticated user from the context (if any).
func UserFromContext(ctx context.Context) (models.PublicUser, bool) {
	u, ok := ctx.Value(userKey{}).(models.PublicUser)
	return u, ok
}

// Auth holds what the request-identity middleware needs.
type Auth struct {
	Repo   repository.UserRepository
	Tokens *auth.TokenService
	Log    *zap.Logger
}

// RequireAuth verifies the bearer token and loads the matching user into the
// request context. The password hash never enters the context.
func (a *Auth) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Token Missing - Please Login")
			return
		}

		userID, err := a.Tokens.Verify(tokenStr)
		if err != nil {
			a.Log.Warn("token verification failed", zap.Error(err), zap.String("path", r.URL.Path))
			writeError(w, http.StatusUnauthorized, "Invalid or Expired Token")
			return
		}

		user, err := a.Repo.GetUserByID(r.Context(), userID)
		if err != nil {
			a.Log.Error("failed to load user for token", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "Invalid or Expired Token")
			return
		}
		if user == nil {
			writeError(w, http.StatusNotFound, "User Not Found")
			return
		}

		ctx := WithUser(r.Context(), user.Public())
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin authorizes an already-authenticated request for admin-only
// access. Must run after RequireAuth.
func (a *Auth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			// RequireAuth did not run first; this is a wiring bug.
			a.Log.Error("admin check without authenticated user", zap.String("path", r.URL.Path))
			writeErrorDetail(w, http.StatusInternalServerError, "Invalid Token or Server Error", "no authenticated user in request context")
			return
		}

		switch user.Role {
		case models.RoleAdmin:
			next(w, r)
		case models.RoleUser:
			writeError(w, http.StatusForbidden, "Access Denied - Admin Only")
		default:
			writeError(w, http.StatusForbidden, "Access Denied - Admin Only")
		}
	}
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
