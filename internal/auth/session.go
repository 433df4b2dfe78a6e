package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

// Session identifies the authenticated user for the lifetime of one token.
// It is acquired at login and passed explicitly into every protected service
// operation; nothing reads the current user from ambient state.
type Session struct {
	UserID string
	Email  string
}

const tokenTTL = 72 * time.Hour

type ctxKey struct{}

func NewToken(secret string, s Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":   s.UserID,
		"email": s.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseToken(secret, token string) (*Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, httpx.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, httpx.ErrUnauthorized
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, httpx.ErrUnauthorized
	}
	return &Session{UserID: sub, Email: email}, nil
}

// Middleware authenticates the bearer token and attaches the resulting
// Session to the request context.
func Middleware(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrUnauthorized, "missing_bearer")
			return
		}
		sess, err := ParseToken(secret, strings.TrimSpace(h[7:]))
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrUnauthorized, "invalid_token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func SessionFromCtx(r *http.Request) (*Session, error) {
	s, _ := r.Context().Value(ctxKey{}).(*Session)
	if s == nil {
		return nil, httpx.ErrUnauthorized
	}
	return s, nil
}
