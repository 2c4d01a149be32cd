package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"santunan/models"
)

const contextUserKey = "currentUser"

// jwtAuthMiddleware requires a valid bearer token and loads the user behind it.
func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromBearer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token tidak ditemukan atau tidak valid. Silakan login terlebih dahulu.",
			})
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// optionalAuthMiddleware loads the user when a valid token is present and
// proceeds anonymously otherwise. Claim creation uses it so submissions can
// be attributed when possible.
func optionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := userFromBearer(c); ok {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// adminOnly must run after jwtAuthMiddleware.
func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Akses ditolak. Anda bukan admin.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func userFromBearer(c *gin.Context) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	rawID, ok := claims["userId"].(float64)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := db.First(&user, uint(rawID)).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
