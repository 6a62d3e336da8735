package carbon

import (
	"context"
	"fmt"
	"strings"
	"time"

	model "github.com/glkeru/carbon/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey struct{}

// Claims - токен основного приложения
type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("env CARBON_AUTH_SECRET is not set")
	}
	return &Authenticator{[]byte(secret)}, nil
}

// Issue - выпустить токен (dev и тесты)
func (a *Authenticator) Issue(identity model.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  identity.Role,
		Name:  identity.Name,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Identity - проверить токен и получить вызывающего
func (a *Authenticator) Identity(token string) (model.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.Identity{}, fmt.Errorf("%v: %w", err, model.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return model.Identity{}, fmt.Errorf("token without subject: %w", model.ErrUnauthorized)
	}
	role := strings.ToUpper(claims.Role)
	if role == "" {
		role = model.RoleUser
	}
	return model.Identity{
		UserID: claims.Subject,
		Role:   role,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}

// BearerIdentity - значение заголовка "Bearer <token>"
func (a *Authenticator) BearerIdentity(header string) (model.Identity, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return model.Identity{}, fmt.Errorf("missing bearer token: %w", model.ErrUnauthorized)
	}
	return a.Identity(token)
}

func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// IdentityFromContext - пустая Identity, если запрос не аутентифицирован
func IdentityFromContext(ctx context.Context) model.Identity {
	identity, _ := ctx.Value(ctxKey{}).(model.Identity)
	return identity
}
