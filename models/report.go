package models

import "time"

// Report is a patient-owned uploaded PDF. ReportID is the stable handle;
// insertion order (ID) is kept only for the legacy index-addressed routes.
type Report struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	ReportID    string    `json:"report_id" gorm:"uniqueIndex;not null"`
	PatientID   uint      `json:"patient_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url" gorm:"not null"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}
