package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/datatypes"
)

type Patient struct {
	PatientID uint           `json:"patient_id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"unique;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Image     string         `json:"image"`
	Phone     string         `json:"phone"`
	Address   datatypes.JSON `json:"address"`
	Gender    string         `json:"gender"`
	Dob       string         `json:"dob"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	Reports   []Report       `json:"reports,omitempty"`
}

type PatientClaims struct {
	PatientID uint   `json:"patientID"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
