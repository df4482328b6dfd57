package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"docpoint/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingController handles the appointment lifecycle for patients.
type BookingController struct {
	db     *gorm.DB
	ledger *SlotLedger
	mail   Mailer
	sms    Notifier
}

func NewBookingController(db *gorm.DB, ledger *SlotLedger, mail Mailer, sms Notifier) *BookingController {
	return &BookingController{db: db, ledger: ledger, mail: mail, sms: sms}
}

type bookRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	SlotDate string `json:"slot_date" binding:"required"`
	SlotTime string `json:"slot_time" binding:"required"`
}

func validateSlot(slotDate, slotTime string) error {
	if _, err := time.Parse("2006-01-02", slotDate); err != nil {
		return errors.New("Invalid date format")
	}
	if _, err := time.Parse("15:04", slotTime); err != nil {
		return errors.New("Invalid time format")
	}
	return nil
}

func snapshot(v interface{}) datatypes.JSON {
	// Password fields carry `json:"-"` so the snapshot never holds them.
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}

// BookAppointment reserves the slot, then persists an appointment carrying
// denormalized copies of the patient and doctor records.
func (bc *BookingController) BookAppointment(c *gin.Context) {
	patientID := c.GetUint("patientID")

	var req bookRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}
	if err := validateSlot(req.SlotDate, req.SlotTime); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var patient models.Patient
	if err := bc.db.First(&patient, patientID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := bc.ledger.Reserve(req.DoctorID, req.SlotDate, req.SlotTime); err != nil {
		switch {
		case errors.Is(err, ErrDoctorNotFound):
			respondError(c, http.StatusNotFound, "Doctor not found")
		case errors.Is(err, ErrDoctorUnavailable):
			respondError(c, http.StatusBadRequest, "Doctor Not Available")
		case errors.Is(err, ErrSlotTaken):
			respondError(c, http.StatusConflict, "Slot Not Available")
		default:
			log.Println("Error reserving slot:", err)
			respondError(c, http.StatusInternalServerError, "Failed to book appointment")
		}
		return
	}

	var doctor models.Doctor
	if err := bc.db.First(&doctor, req.DoctorID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Doctor not found")
		return
	}

	appointment := models.Appointment{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		SlotDate:    req.SlotDate,
		SlotTime:    req.SlotTime,
		PatientData: snapshot(patient),
		DoctorData:  snapshot(doctor),
		Amount:      doctor.Fees,
	}
	if err := bc.db.Create(&appointment).Error; err != nil {
		// Free the claim again so the failed booking does not hold the slot.
		if relErr := bc.ledger.Release(req.DoctorID, req.SlotDate, req.SlotTime); relErr != nil {
			log.Println("Error releasing slot after failed booking:", relErr)
		}
		respondError(c, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	bc.notifyBooking(appointment, doctor, patient)

	respondOK(c, gin.H{"message": "Appointment Booked", "appointment": appointment})
}

// notifyBooking sends the confirmation mail and SMS. Both are best effort;
// failures are logged and never fail the booking.
func (bc *BookingController) notifyBooking(appointment models.Appointment, doctor models.Doctor, patient models.Patient) {
	if bc.mail != nil {
		receipt, err := GenerateReceiptPDF(appointment, doctor, patient, false)
		if err != nil {
			log.Println("Error generating booking receipt:", err)
		} else {
			msg := fmt.Sprintf("Your appointment with Dr. %s on %s at %s has been booked.",
				doctor.Name, appointment.SlotDate, appointment.SlotTime)
			if err := bc.mail.Send(patient.Email, "Appointment Booked", msg, "receipt.pdf", receipt); err != nil {
				log.Println("Error sending booking email:", err)
			}
		}
	}
	if bc.sms != nil && patient.Phone != "" {
		msg := fmt.Sprintf("Appointment booked with Dr. %s on %s at %s", doctor.Name, appointment.SlotDate, appointment.SlotTime)
		if err := bc.sms.SendSMS(patient.Phone, msg); err != nil {
			log.Println("Error sending booking SMS:", err)
		}
	}
}

// ListAppointments returns the caller's own appointments, newest first.
func (bc *BookingController) ListAppointments(c *gin.Context) {
	patientID := c.GetUint("patientID")

	var appointments []models.Appointment
	if err := bc.db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&appointments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}
	respondOK(c, gin.H{"appointments": appointments})
}

// CancelAppointment soft-cancels the caller's own appointment and frees the
// slot. A cancelled appointment stays cancelled.
func (bc *BookingController) CancelAppointment(c *gin.Context) {
	patientID := c.GetUint("patientID")

	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	var appointment models.Appointment
	if err := bc.db.First(&appointment, appointmentID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	if appointment.PatientID != patientID {
		respondError(c, http.StatusUnauthorized, "Unauthorized action")
		return
	}
	if appointment.Cancelled {
		respondError(c, http.StatusBadRequest, "Appointment has already been cancelled")
		return
	}

	if err := bc.db.Model(&appointment).Update("cancelled", true).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}

	// Cancellation already happened; a release failure must not undo it.
	if err := bc.ledger.Release(appointment.DoctorID, appointment.SlotDate, appointment.SlotTime); err != nil {
		log.Println("Error releasing slot on cancellation:", err)
	}

	respondMessage(c, "Appointment Cancelled")
}
