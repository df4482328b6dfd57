package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"docpoint/authentication"
	"docpoint/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const doctorListCacheKey = "doctors:list"

// DoctorController serves the public doctor listing and the doctor portal.
type DoctorController struct {
	db     *gorm.DB
	ledger *SlotLedger
	cache  *redis.Client
}

func NewDoctorController(db *gorm.DB, ledger *SlotLedger, cache *redis.Client) *DoctorController {
	return &DoctorController{db: db, ledger: ledger, cache: cache}
}

// doctorListing is the public shape of a doctor: no password, booked slots
// attached for the frontend to gray out.
type doctorListing struct {
	models.Doctor
	SlotsBooked map[string][]string `json:"slots_booked"`
}

func (dc *DoctorController) buildListing() ([]doctorListing, error) {
	var doctors []models.Doctor
	if err := dc.db.Order("doctor_id").Find(&doctors).Error; err != nil {
		return nil, err
	}
	listing := make([]doctorListing, 0, len(doctors))
	for _, doctor := range doctors {
		booked, err := dc.ledger.BookedSlots(doctor.DoctorID)
		if err != nil {
			return nil, err
		}
		listing = append(listing, doctorListing{Doctor: doctor, SlotsBooked: booked})
	}
	return listing, nil
}

// ListDoctors returns every doctor with booked slots, cached briefly in redis.
func (dc *DoctorController) ListDoctors(c *gin.Context) {
	if dc.cache != nil {
		if cached, err := dc.cache.Get(c.Request.Context(), doctorListCacheKey).Result(); err == nil {
			respondOK(c, gin.H{"doctors": json.RawMessage(cached)})
			return
		}
	}

	listing, err := dc.buildListing()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}

	if dc.cache != nil {
		if data, err := json.Marshal(listing); err == nil {
			if err := dc.cache.Set(c.Request.Context(), doctorListCacheKey, data, 30*time.Second).Err(); err != nil {
				log.Println("Error caching doctor list:", err)
			}
		}
	}
	respondOK(c, gin.H{"doctors": listing})
}

// invalidateListing drops the cached doctor list after a doctor mutation.
func (dc *DoctorController) invalidateListing(ctx context.Context) {
	if dc.cache == nil {
		return
	}
	if err := dc.cache.Del(ctx, doctorListCacheKey).Err(); err != nil {
		log.Println("Error invalidating doctor list cache:", err)
	}
}

// Login authenticates a doctor by email and password.
func (dc *DoctorController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	var doctor models.Doctor
	if err := dc.db.Where("email = ?", req.Email).First(&doctor).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := authentication.GenerateDoctorToken(doctor.DoctorID, doctor.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondOK(c, gin.H{"token": token})
}

// ChangeAvailability toggles the caller's availability flag.
func (dc *DoctorController) ChangeAvailability(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var doctor models.Doctor
	if err := dc.db.First(&doctor, doctorID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Doctor not found")
		return
	}
	if err := dc.db.Model(&doctor).Update("available", !doctor.Available).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to change availability")
		return
	}
	dc.invalidateListing(c.Request.Context())
	respondMessage(c, "Availability Changed")
}

// Appointments lists the caller's appointments, newest first.
func (dc *DoctorController) Appointments(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var appointments []models.Appointment
	if err := dc.db.Where("doctor_id = ?", doctorID).Order("created_at DESC").Find(&appointments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}
	respondOK(c, gin.H{"appointments": appointments})
}

func (dc *DoctorController) ownAppointment(c *gin.Context) (models.Appointment, bool) {
	doctorID := c.GetUint("doctorID")

	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid appointment id")
		return models.Appointment{}, false
	}

	var appointment models.Appointment
	if err := dc.db.First(&appointment, appointmentID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Appointment not found")
		return appointment, false
	}
	if appointment.DoctorID != doctorID {
		respondError(c, http.StatusUnauthorized, "Unauthorized action")
		return appointment, false
	}
	return appointment, true
}

// CompleteAppointment marks the appointment completed. The slot stays
// claimed; completion never frees it.
func (dc *DoctorController) CompleteAppointment(c *gin.Context) {
	appointment, ok := dc.ownAppointment(c)
	if !ok {
		return
	}
	if appointment.Cancelled {
		respondError(c, http.StatusBadRequest, "Appointment has been cancelled")
		return
	}
	if err := dc.db.Model(&appointment).Update("is_completed", true).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to complete appointment")
		return
	}
	respondMessage(c, "Appointment Completed")
}

// CancelAppointment cancels one of the caller's appointments and frees the
// slot, same release semantics as the patient flow.
func (dc *DoctorController) CancelAppointment(c *gin.Context) {
	appointment, ok := dc.ownAppointment(c)
	if !ok {
		return
	}
	if appointment.Cancelled {
		respondError(c, http.StatusBadRequest, "Appointment has already been cancelled")
		return
	}
	if err := dc.db.Model(&appointment).Update("cancelled", true).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	if err := dc.ledger.Release(appointment.DoctorID, appointment.SlotDate, appointment.SlotTime); err != nil {
		log.Println("Error releasing slot on cancellation:", err)
	}
	respondMessage(c, "Appointment Cancelled")
}

// Dashboard summarizes the caller's earnings, patients and latest bookings.
func (dc *DoctorController) Dashboard(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var appointments []models.Appointment
	if err := dc.db.Where("doctor_id = ?", doctorID).Order("created_at DESC").Find(&appointments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	var earnings uint64
	patients := make(map[uint]struct{})
	for _, appointment := range appointments {
		if appointment.Payment || appointment.IsCompleted {
			earnings += uint64(appointment.Amount)
		}
		patients[appointment.PatientID] = struct{}{}
	}

	latest := appointments
	if len(latest) > 5 {
		latest = latest[:5]
	}

	respondOK(c, gin.H{"dashData": gin.H{
		"earnings":           earnings,
		"appointments":       len(appointments),
		"patients":           len(patients),
		"latestAppointments": latest,
	}})
}

// Profile returns the caller's own record.
func (dc *DoctorController) Profile(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var doctor models.Doctor
	if err := dc.db.First(&doctor, doctorID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Doctor not found")
		return
	}
	respondOK(c, gin.H{"profileData": doctor})
}

// UpdateProfile lets the doctor edit fee, address, about and availability.
func (dc *DoctorController) UpdateProfile(c *gin.Context) {
	doctorID := c.GetUint("doctorID")

	var req struct {
		Fees      *uint32         `json:"fees"`
		About     *string         `json:"about"`
		Available *bool           `json:"available"`
		Address   json.RawMessage `json:"address"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	updates := map[string]interface{}{}
	if req.Fees != nil {
		updates["fees"] = *req.Fees
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if len(req.Address) > 0 {
		updates["address"] = datatypes.JSON(req.Address)
	}
	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := dc.db.Model(&models.Doctor{}).Where("doctor_id = ?", doctorID).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	dc.invalidateListing(c.Request.Context())
	respondMessage(c, "Profile Updated")
}
