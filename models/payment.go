package models

import "time"

// PaymentOrder records one order or checkout session created against a
// payment gateway for an appointment.
type PaymentOrder struct {
	OrderID       string    `json:"order_id" gorm:"primaryKey"`
	Gateway       string    `json:"gateway" gorm:"not null"`
	AppointmentID uint      `json:"appointment_id" gorm:"index;not null"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
