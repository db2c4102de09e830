package middleware

import (
	"context"
	"net/http"

	"github.com/biblo/backend/respond"
	"github.com/golang-jwt/jwt/v5"
)

// TokenHeader carries the token on every authenticated request.
const TokenHeader = "x-auth-token"

type contextKey string

const claimsKey contextKey = "claims"

// Claims is the identity payload embedded in every issued token. Tokens are
// stateless: no expiry is set and there is no server-side session or
// revocation list.
type Claims struct {
	UserID  string `json:"_id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the given identity.
func SignToken(secret, userID string, isAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: userID, IsAdmin: isAdmin})
	return token.SignedString([]byte(secret))
}

// Auth verifies the x-auth-token header and attaches the decoded claims to
// the request context. A missing header is 401; a token that fails to parse
// or verify is 400, matching the existing contract.
func Auth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				respond.Error(w, http.StatusUnauthorized, "Unauthorized - The request requires user authentication")
				return
			}
			token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				respond.Error(w, http.StatusBadRequest, "Bad Request - Invalid token")
				return
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				respond.Error(w, http.StatusBadRequest, "Bad Request - Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin rejects authenticated callers whose token does not carry the admin
// flag. Must run after Auth.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin {
			respond.Error(w, http.StatusForbidden, "Forbidden - User is not admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
