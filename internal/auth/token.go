package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated caller carried by a session token.
type Principal struct {
	ID       uuid.UUID
	Username string
	Role     string
	Status   string // vendor approval status, empty for other roles
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanActAs reports whether p may act on resources of the account id.
func (p Principal) CanActAs(id uuid.UUID) bool {
	return p.IsAdmin() || p.ID == id
}

func IssueToken(secret string, ttl time.Duration, p Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":      p.ID.String(),
		"username": p.Username,
		"role":     p.Role,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	if p.Status != "" {
		claims["status"] = p.Status
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, raw string) (Principal, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	switch role {
	case RoleCustomer, RoleVendor, RoleAdmin:
	default:
		return Principal{}, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	status, _ := claims["status"].(string)

	return Principal{ID: id, Username: username, Role: role, Status: status}, nil
}
