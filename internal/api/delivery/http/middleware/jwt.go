// Package middleware holds the JWT auth middleware for the API service.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is where the middleware stores the authenticated user ID.
const userIDContextKey = "user_id"

// JWT returns an echo middleware that requires a valid Bearer token signed
// with the given secret and stores the user ID in the request context.
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing or malformed token"})
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token claims"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token subject"})
			}

			c.Set(userIDContextKey, uint(sub))
			return next(c)
		}
	}
}

// UserID returns the authenticated user ID stored by the JWT middleware, or
// zero when the request is unauthenticated.
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDContextKey).(uint)
	return id
}
