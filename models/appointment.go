package models

import (
	"time"

	"gorm.io/datatypes"
)

// Appointment carries denormalized copies of the patient and doctor records as
// they looked at booking time. Appointments are never hard-deleted; cancelling
// sets the flag and frees the slot claim.
type Appointment struct {
	AppointmentID uint           `json:"appointment_id" gorm:"primaryKey"`
	PatientID     uint           `json:"patient_id" gorm:"index;not null"`
	DoctorID      uint           `json:"doctor_id" gorm:"index;not null"`
	SlotDate      string         `json:"slot_date" gorm:"not null"`
	SlotTime      string         `json:"slot_time" gorm:"not null"`
	PatientData   datatypes.JSON `json:"patient_data"`
	DoctorData    datatypes.JSON `json:"doctor_data"`
	Amount        uint32         `json:"amount"`
	Cancelled     bool           `json:"cancelled" gorm:"default:false"`
	Payment       bool           `json:"payment" gorm:"default:false"`
	IsCompleted   bool           `json:"is_completed" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
}
