package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"docpoint/authentication"
	"docpoint/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validate = validator.New()

// UserController serves patient registration, login and profile handling.
type UserController struct {
	db   *gorm.DB
	blob BlobStore
}

func NewUserController(db *gorm.DB, blob BlobStore) *UserController {
	return &UserController{db: db, blob: blob}
}

// Register handles patient signup and returns a signed token.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	if err := validate.Var(req.Email, "email"); err != nil {
		respondError(c, http.StatusBadRequest, "Please enter a valid email")
		return
	}
	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "Please enter a strong password")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	patient := models.Patient{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := uc.db.Create(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "Patient already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to register patient")
		return
	}

	token, err := authentication.GeneratePatientToken(patient.PatientID, patient.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondOK(c, gin.H{"token": token})
}

// Login authenticates a patient by email and password.
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	var patient models.Patient
	if err := uc.db.Where("email = ?", req.Email).First(&patient).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "User does not exist")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := authentication.GeneratePatientToken(patient.PatientID, patient.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondOK(c, gin.H{"token": token})
}

// GetProfile returns the caller's own profile. Password never serializes.
func (uc *UserController) GetProfile(c *gin.Context) {
	patientID := c.GetUint("patientID")

	var patient models.Patient
	if err := uc.db.First(&patient, patientID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondOK(c, gin.H{"userData": patient})
}

// UpdateProfile updates profile fields. The optional multipart image goes to
// the blob store and only its URL is kept.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	patientID := c.GetUint("patientID")

	name := c.PostForm("name")
	phone := c.PostForm("phone")
	dob := c.PostForm("dob")
	gender := c.PostForm("gender")
	if name == "" || phone == "" || dob == "" || gender == "" {
		respondError(c, http.StatusBadRequest, "Data Missing")
		return
	}

	updates := map[string]interface{}{
		"name":   name,
		"phone":  phone,
		"dob":    dob,
		"gender": gender,
	}

	if address := c.PostForm("address"); address != "" {
		if !json.Valid([]byte(address)) {
			respondError(c, http.StatusBadRequest, "Invalid address")
			return
		}
		updates["address"] = datatypes.JSON(address)
	}

	if file, _, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := uc.blob.UploadImage(c.Request.Context(), file, "")
		if err != nil {
			log.Println("Error uploading profile image:", err)
			respondError(c, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		updates["image"] = imageURL
	}

	if err := uc.db.Model(&models.Patient{}).Where("patient_id = ?", patientID).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	respondMessage(c, "Profile Updated")
}
