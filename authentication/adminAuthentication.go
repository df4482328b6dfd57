package authentication

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"docpoint/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Generating jwt token for admin
func GenerateAdminToken(email string) (string, error) {
	claims := &models.AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func AuthenticateAdmin(signedStringToken string) (string, error) {
	var adminClaims models.AdminClaims
	token, err := jwt.ParseWithClaims(signedStringToken, &adminClaims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok {
		return "", errors.New("couldn't parse claims")
	}
	return claims.Email, nil
}

func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Admin Authorization is missing"})
			return
		}

		authHeader := strings.Replace(tokenString, "Bearer ", "", 1)
		email, err := AuthenticateAdmin(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.Set("adminEmail", email)
	}
}
