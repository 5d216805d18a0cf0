package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

type authUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
}

// Auth verifies bearer tokens and resolves the calling user. Tokens are
// HS256 JWTs whose subject is the user id.
type Auth struct {
	logger *logger.Logger
	secret []byte
	users  authUserStorage
}

func NewAuth(log *logger.Logger, secret string, users authUserStorage) *Auth {
	return &Auth{
		logger: log,
		secret: []byte(secret),
		users:  users,
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token subject")
			return
		}

		user, err := a.users.Get(r.Context(), uint(userID))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated user placed by the middleware.
func CurrentUser(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userContextKey).(*entity.User)
	return user
}
