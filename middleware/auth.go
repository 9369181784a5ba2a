package middleware

import (
	"strings"

	"journal-workflow/config"
	"journal-workflow/helper"
	"journal-workflow/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var HTTPHelper = &helper.HTTPHelper{}

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
	ctxRole     = "role"
)

// Claims are issued by the identity service. This module only verifies them.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.JWTSecret, nil
		})

		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		if !token.Valid {
			HTTPHelper.SendUnauthorizedError(c, "Token is not valid", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Token carries no valid user id", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		role := models.UserRole(claims.Role)
		if !role.Valid() {
			HTTPHelper.SendUnauthorizedError(c, "Token carries an unknown role", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, role)

		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			HTTPHelper.SendUnauthorizedError(c, "User role not found", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		HTTPHelper.SendForbiddenError(c, "Insufficient permissions", HTTPHelper.EmptyJsonMap())
		c.Abort()
	}
}

// CurrentActor returns the caller set by AuthMiddleware.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	id, ok := c.Get(ctxUserID)
	if !ok {
		return models.Actor{}, false
	}
	role, ok := c.Get(ctxRole)
	if !ok {
		return models.Actor{}, false
	}
	userID, ok := id.(uuid.UUID)
	if !ok {
		return models.Actor{}, false
	}
	userRole, ok := role.(models.UserRole)
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{ID: userID, Role: userRole}, true
}
