package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingHeader = errors.New("missing Authorization header")
	errEmptyToken    = errors.New("empty token")
)

// bearerToken supports both "Bearer <token>" and a bare "<token>".
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingHeader
	}
	scheme, rest, ok := strings.Cut(header, " ")
	switch {
	case ok && strings.EqualFold(scheme, "Bearer"):
		header = strings.TrimSpace(rest)
	case !ok && strings.EqualFold(header, "Bearer"):
		header = ""
	}
	if header == "" {
		return "", errEmptyToken
	}
	return header, nil
}

// Parse validates an HS256 token and its issuer (when expectedIssuer is set).
func Parse(tokenStr string, secret []byte, expectedIssuer string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if expectedIssuer != "" {
		opts = append(opts, jwt.WithIssuer(expectedIssuer))
	}
	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success sets user id (subject) into c.Locals("userId").
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		tokenStr, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		claims, err := Parse(tokenStr, secretBytes, expectedIssuer)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		c.Locals("userId", claims.Subject)
		return c.Next()
	}
}
