package auth

import (
	"context"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	config "github.com/openwms/procflow/internal/config"
	uuid "github.com/openwms/procflow/pkg/common/uuid"
)

const USERKEY = "AUTH_USER_KEY"

// EditorUser is the identity attached to every designer request.
type EditorUser struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type editorClaims struct {
	jwt.RegisteredClaims
	User *EditorUser `json:"user"`
}

// SignToken issues an HS256 editor token.
func SignToken(user *EditorUser, ttl time.Duration) (string, error) {
	claims := &editorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UUID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		User: user,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Global().Auth.Secret))
}

// ParseToken verifies the signature and expiry, returning the embedded user.
func ParseToken(tokenStr string) (*EditorUser, error) {
	claims := &editorClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return []byte(config.Global().Auth.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims.User, nil
}

// GetCurrentUser pulls the editor identity out of the request context,
// nil when unauthenticated.
func GetCurrentUser(ctx context.Context) *EditorUser {
	v := ctx.Value(userKey{})
	if u, ok := v.(*EditorUser); ok {
		return u
	}
	return nil
}

type userKey struct{}

func withUser(ctx context.Context, u *EditorUser) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}
