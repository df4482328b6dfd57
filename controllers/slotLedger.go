package controllers

import (
	"errors"

	"docpoint/models"

	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorUnavailable = errors.New("doctor not available")
	ErrSlotTaken         = errors.New("slot not available")
)

// SlotLedger tracks which (doctor, date, time) combinations are booked.
// Reserve is a single conditional insert backed by the slot_claims unique
// index, so two concurrent reservations for the same slot cannot both succeed.
type SlotLedger struct {
	db *gorm.DB
}

func NewSlotLedger(db *gorm.DB) *SlotLedger {
	return &SlotLedger{db: db}
}

// Reserve books the slot. It fails with ErrDoctorUnavailable when the doctor
// is flagged unavailable and with ErrSlotTaken when the slot is already held.
func (l *SlotLedger) Reserve(doctorID uint, slotDate, slotTime string) error {
	var doctor models.Doctor
	if err := l.db.First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}
	if !doctor.Available {
		return ErrDoctorUnavailable
	}

	claim := models.SlotClaim{
		DoctorID: doctorID,
		SlotDate: slotDate,
		SlotTime: slotTime,
	}
	if err := l.db.Create(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

// Release frees the slot. Removing an absent claim is a no-op, not an error.
func (l *SlotLedger) Release(doctorID uint, slotDate, slotTime string) error {
	return l.db.
		Where("doctor_id = ? AND slot_date = ? AND slot_time = ?", doctorID, slotDate, slotTime).
		Delete(&models.SlotClaim{}).Error
}

// BookedSlots returns the doctor's ledger as a date -> booked times map, the
// shape the doctor listings expose to the frontend.
func (l *SlotLedger) BookedSlots(doctorID uint) (map[string][]string, error) {
	var claims []models.SlotClaim
	if err := l.db.Where("doctor_id = ?", doctorID).Order("slot_date, slot_time").Find(&claims).Error; err != nil {
		return nil, err
	}
	booked := make(map[string][]string)
	for _, claim := range claims {
		booked[claim.SlotDate] = append(booked[claim.SlotDate], claim.SlotTime)
	}
	return booked, nil
}
