package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/solarent/beacon/pkg/internal/services"
	"github.com/spf13/viper"
)

// authMiddleware resolves the actor from a bearer token issued by the
// external identity provider. It never rejects: requests without a valid
// token simply carry no "user" local, and each handler decides whether
// that means 401 or an empty result.
func authMiddleware(c *fiber.Ctx) error {
	raw := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(raw, "Bearer ") {
		return c.Next()
	}

	token, err := jwt.Parse(strings.TrimPrefix(raw, "Bearer "), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(viper.GetString("security.jwt_secret")), nil
	})
	if err != nil || !token.Valid {
		return c.Next()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Next()
	}
	name, _ := claims["sub"].(string)
	if len(name) == 0 {
		return c.Next()
	}
	nick, _ := claims["nick"].(string)

	if account, err := services.LoadOrCreateAccount(name, nick); err == nil {
		c.Locals("user", account)
	}

	return c.Next()
}
