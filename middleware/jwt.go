package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims extends jwt.RegisteredClaims with the authenticated username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var errInvalidToken = errors.New("invalid token")

// IssueToken signs a token binding username to an expiry ttl from now.
func IssueToken(username string, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseToken verifies signature and expiry and returns the embedded username.
// Malformed, tampered and expired tokens all come back as the same error.
func ParseToken(tokenString string, key []byte) (string, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return "", errInvalidToken
	}
	if claims.Username == "" {
		return "", errInvalidToken
	}
	return claims.Username, nil
}

// JWT returns an Echo middleware that validates the Authorization header
// token using the provided signing key. On success the verified username is
// stored on the context under "username" and is the only source of identity
// for downstream handlers.
func JWT(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			username, err := ParseToken(token, key)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("username", username)
			return next(c)
		}
	}
}
