package authentication

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"docpoint/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secretKey"
	}
	return []byte(secret)
}

// Generating jwt token for patient
func GeneratePatientToken(patientID uint, email string) (string, error) {
	claims := &models.PatientClaims{
		PatientID: patientID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func AuthenticatePatient(signedStringToken string) (uint, error) {
	var patientClaims models.PatientClaims
	token, err := jwt.ParseWithClaims(signedStringToken, &patientClaims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*models.PatientClaims)
	if !ok {
		return 0, errors.New("couldn't parse claims")
	}
	return claims.PatientID, nil
}

// PatientAuthMiddleware validates the bearer token and puts the caller's
// patient id into the request context.
func PatientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User Authorization is missing"})
			return
		}

		authHeader := strings.Replace(tokenString, "Bearer ", "", 1)
		patientID, err := AuthenticatePatient(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.Set("patientID", patientID)
	}
}
