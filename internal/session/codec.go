package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jamalparfum/storefront/internal/domain"
)

var ErrInvalidUserCookie = errors.New("invalid user cookie")

type userClaims struct {
	User domain.User `json:"user"`
	jwt.RegisteredClaims
}

// userCodec signs the cached user profile so the role cannot be edited client side
type userCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func newUserCodec(secret string, ttl time.Duration) *userCodec {
	return &userCodec{secret: []byte(secret), ttl: ttl, issuer: "storefront"}
}

func (c *userCodec) encode(user *domain.User, now time.Time) (string, error) {
	claims := userClaims{
		User: *user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign user cookie: %w", err)
	}
	return signed, nil
}

func (c *userCodec) decode(raw string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(raw, &userClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUserCookie, err)
	}

	claims, ok := token.Claims.(*userClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidUserCookie
	}

	user := claims.User
	return &user, nil
}
