package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"youthBanking/domain"
	"youthBanking/pkg/logger"
	jsonres "youthBanking/pkg/response"
	"youthBanking/pkg/utils"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks that an issued token is still live in redis.
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
}

type authError struct {
	status  int
	code    string
	message string
}

func (e *authError) respond(c echo.Context) error {
	return c.JSON(e.status, jsonres.Error(e.code, e.message, nil))
}

func bearerToken(c echo.Context) (string, *authError) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", &authError{http.StatusUnauthorized, "UNAUTHORIZED", "Missing authorization header"}
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", &authError{http.StatusUnauthorized, "UNAUTHORIZED", "Invalid authorization format"}
	}

	return tokenParts[1], nil
}

func parseClaims(tokenString string) (*utils.JWTClaims, uint, *authError) {
	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		return nil, 0, &authError{http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token"}
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || expAt == nil || time.Now().After(expAt.Time) {
		return nil, 0, &authError{http.StatusForbidden, "FORBIDDEN", "Token expired"}
	}

	userID, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		logger.Warn("Invalid user ID in token", "user_id", claims.UserID)
		return nil, 0, &authError{http.StatusForbidden, "FORBIDDEN", "Invalid user ID in token"}
	}

	return claims, uint(userID), nil
}

func setIdentity(c echo.Context, userID uint, role, token string) {
	c.Set("user_id", userID)
	c.Set("role", role)
	c.Set("token", token)
}

// AuthMiddleware checks the JWT only.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, aerr := bearerToken(c)
			if aerr != nil {
				return aerr.respond(c)
			}

			claims, userID, aerr := parseClaims(tokenString)
			if aerr != nil {
				return aerr.respond(c)
			}

			setIdentity(c, userID, claims.Role, tokenString)
			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis checks the JWT and that the session was not
// logged out.
func AuthMiddlewareWithRedis(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, aerr := bearerToken(c)
			if aerr != nil {
				return aerr.respond(c)
			}

			claims, userID, aerr := parseClaims(tokenString)
			if aerr != nil {
				return aerr.respond(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			storedUserID, err := tokenValidator.ValidateTokenFromRedis(ctx, tokenString)
			if err != nil {
				logger.Warn("Token not found in Redis", "user_id", claims.UserID, "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired or invalid", nil,
				))
			}

			if storedUserID != claims.UserID {
				logger.Warn("UserID mismatch between JWT and Redis", "jwt_user_id", claims.UserID, "redis_user_id", storedUserID)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			setIdentity(c, userID, claims.Role, tokenString)
			return next(c)
		}
	}
}

// OptionalAuth sets the identity when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, aerr := bearerToken(c)
			if aerr != nil {
				return next(c)
			}

			if claims, userID, aerr := parseClaims(tokenString); aerr == nil {
				setIdentity(c, userID, claims.Role, tokenString)
			}
			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, ok := c.Get("role").(string)
			if !ok || !strings.EqualFold(roleStr, domain.RoleAdmin) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}
