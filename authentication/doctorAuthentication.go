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

// Generating jwt token for doctor
func GenerateDoctorToken(doctorID uint, email string) (string, error) {
	claims := &models.DoctorClaims{
		DoctorID: doctorID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func AuthenticateDoctor(signedStringToken string) (uint, error) {
	var doctorClaims models.DoctorClaims
	token, err := jwt.ParseWithClaims(signedStringToken, &doctorClaims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*models.DoctorClaims)
	if !ok {
		return 0, errors.New("couldn't parse claims")
	}
	return claims.DoctorID, nil
}

func DoctorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Doctor Authorization is missing"})
			return
		}

		authHeader := strings.Replace(tokenString, "Bearer ", "", 1)
		doctorID, err := AuthenticateDoctor(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.Set("doctorID", doctorID)
	}
}
