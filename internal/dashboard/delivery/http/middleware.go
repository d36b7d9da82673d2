package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is the echo context key holding the authenticated user's uuid.
const ContextKeyUserID = "user_id"

// Claims are the JWT claims issued by the external auth service.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTAuth verifies an HS256 bearer token and stores the `id` claim as user_id.
func JWTAuth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(key) == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication is not configured"})
			}

			parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing or malformed bearer token"})
			}

			claims := &Claims{}
			token, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token subject"})
			}

			c.Set(ContextKeyUserID, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user set by JWTAuth.
func UserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	return userID, ok
}
