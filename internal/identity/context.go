package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated caller extracted from verified JWT
// claims. The guard middleware stores the parsed token in ctx locals;
// everything downstream goes through here.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
}

// IsAdmin branches only on the literal admin role. Unknown role strings
// deliberately take the non-admin path.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// FromContext extracts the caller identity from JWT claims in context.
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, err
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return Identity{UserID: userID, Email: email, Name: name, Role: role}, nil
}
