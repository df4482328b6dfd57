package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"docpoint/authentication"
	"docpoint/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminController serves the admin dashboard: doctor management and the
// global appointment views. The admin credential pair comes from the
// environment; there is no admin table.
type AdminController struct {
	db     *gorm.DB
	blob   BlobStore
	ledger *SlotLedger
	cache  *redis.Client
}

func NewAdminController(db *gorm.DB, blob BlobStore, ledger *SlotLedger, cache *redis.Client) *AdminController {
	return &AdminController{db: db, blob: blob, ledger: ledger, cache: cache}
}

// Login checks the configured admin credentials and returns a token.
func (ac *AdminController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	if req.Email != os.Getenv("ADMIN_EMAIL") || req.Password != os.Getenv("ADMIN_PASSWORD") {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := authentication.GenerateAdminToken(req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondOK(c, gin.H{"token": token})
}

// AddDoctor creates a doctor from a multipart form, uploading the profile
// image to the blob store.
func (ac *AdminController) AddDoctor(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	speciality := c.PostForm("speciality")
	degree := c.PostForm("degree")
	experience := c.PostForm("experience")
	about := c.PostForm("about")
	fees := c.PostForm("fees")
	address := c.PostForm("address")

	if name == "" || email == "" || password == "" || speciality == "" || fees == "" {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}
	if err := validate.Var(email, "email"); err != nil {
		respondError(c, http.StatusBadRequest, "Please enter a valid email")
		return
	}
	if len(password) < 8 {
		respondError(c, http.StatusBadRequest, "Please enter a strong password")
		return
	}
	feeAmount, err := strconv.ParseUint(fees, 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid fees")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	doctor := models.Doctor{
		Name:       name,
		Email:      email,
		Password:   string(hashedPassword),
		Speciality: speciality,
		Degree:     degree,
		Experience: experience,
		About:      about,
		Fees:       uint32(feeAmount),
		Available:  true,
	}
	if address != "" && json.Valid([]byte(address)) {
		doctor.Address = datatypes.JSON(address)
	}

	if file, _, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := ac.blob.UploadImage(c.Request.Context(), file, "")
		if err != nil {
			log.Println("Error uploading doctor image:", err)
			respondError(c, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		doctor.Image = imageURL
	}

	if err := ac.db.Create(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "Doctor already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to add doctor")
		return
	}
	ac.invalidateListing(c)
	respondMessage(c, "Doctor Added")
}

func (ac *AdminController) invalidateListing(c *gin.Context) {
	if ac.cache == nil {
		return
	}
	if err := ac.cache.Del(c.Request.Context(), doctorListCacheKey).Err(); err != nil {
		log.Println("Error invalidating doctor list cache:", err)
	}
}

// AllDoctors lists every doctor with their booked slots.
func (ac *AdminController) AllDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := ac.db.Order("doctor_id").Find(&doctors).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}

	listing := make([]doctorListing, 0, len(doctors))
	for _, doctor := range doctors {
		booked, err := ac.ledger.BookedSlots(doctor.DoctorID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch doctors")
			return
		}
		listing = append(listing, doctorListing{Doctor: doctor, SlotsBooked: booked})
	}
	respondOK(c, gin.H{"doctors": listing})
}

// ChangeAvailability toggles any doctor's availability flag.
func (ac *AdminController) ChangeAvailability(c *gin.Context) {
	var req struct {
		DoctorID uint `json:"doctor_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	var doctor models.Doctor
	if err := ac.db.First(&doctor, req.DoctorID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Doctor not found")
		return
	}
	if err := ac.db.Model(&doctor).Update("available", !doctor.Available).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to change availability")
		return
	}
	ac.invalidateListing(c)
	respondMessage(c, "Availability Changed")
}

// AllAppointments returns every appointment, newest first.
func (ac *AdminController) AllAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := ac.db.Order("created_at DESC").Find(&appointments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}
	respondOK(c, gin.H{"appointments": appointments})
}

// CancelAppointment cancels any appointment and frees its slot.
func (ac *AdminController) CancelAppointment(c *gin.Context) {
	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	var appointment models.Appointment
	if err := ac.db.First(&appointment, appointmentID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	if appointment.Cancelled {
		respondError(c, http.StatusBadRequest, "Appointment has already been cancelled")
		return
	}

	if err := ac.db.Model(&appointment).Update("cancelled", true).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	if err := ac.ledger.Release(appointment.DoctorID, appointment.SlotDate, appointment.SlotTime); err != nil {
		log.Println("Error releasing slot on cancellation:", err)
	}
	respondMessage(c, "Appointment Cancelled")
}

// Dashboard returns the entity counts and the latest five appointments.
func (ac *AdminController) Dashboard(c *gin.Context) {
	var doctorCount, patientCount, appointmentCount int64
	if err := ac.db.Model(&models.Doctor{}).Count(&doctorCount).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}
	if err := ac.db.Model(&models.Patient{}).Count(&patientCount).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}
	if err := ac.db.Model(&models.Appointment{}).Count(&appointmentCount).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	var latest []models.Appointment
	if err := ac.db.Order("created_at DESC").Limit(5).Find(&latest).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	respondOK(c, gin.H{"dashData": gin.H{
		"doctors":            doctorCount,
		"patients":           patientCount,
		"appointments":       appointmentCount,
		"latestAppointments": latest,
	}})
}
