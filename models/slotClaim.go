package models

// SlotClaim is one booked (doctor, date, time) entry of the slot ledger. The
// composite unique index makes a reservation an atomic conditional insert: a
// second claim for the same slot fails at the storage layer instead of racing
// a read-then-write.
type SlotClaim struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	DoctorID uint   `json:"doctor_id" gorm:"uniqueIndex:idx_doctor_slot;not null"`
	SlotDate string `json:"slot_date" gorm:"uniqueIndex:idx_doctor_slot;not null"`
	SlotTime string `json:"slot_time" gorm:"uniqueIndex:idx_doctor_slot;not null"`
}
