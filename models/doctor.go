package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/datatypes"
)

type Doctor struct {
	DoctorID   uint           `json:"doctor_id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null"`
	Email      string         `json:"email" gorm:"unique;not null"`
	Password   string         `json:"-" gorm:"not null"`
	Image      string         `json:"image"`
	Speciality string         `json:"speciality" gorm:"not null"`
	Degree     string         `json:"degree"`
	Experience string         `json:"experience"`
	About      string         `json:"about"`
	Fees       uint32         `json:"fees" gorm:"not null"`
	Address    datatypes.JSON `json:"address"`
	Available  bool           `json:"available" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

type DoctorClaims struct {
	DoctorID uint   `json:"doctorID"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
