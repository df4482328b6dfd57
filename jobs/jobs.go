package jobs

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"docpoint/controllers"
	"docpoint/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartDailyScheduler wires the reminder job. It runs every morning and
// mails patients with an appointment the next day.
func StartDailyScheduler(db *gorm.DB, mail controllers.Mailer) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 8 * * *", func() {
		sendAppointmentReminders(db, mail)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
	return c
}

func sendAppointmentReminders(db *gorm.DB, mail controllers.Mailer) {
	if mail == nil {
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	var appointments []models.Appointment
	err := db.Where("slot_date = ? AND cancelled = ?", tomorrow, false).Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		var patient models.Patient
		if err := json.Unmarshal(appointment.PatientData, &patient); err != nil || patient.Email == "" {
			if err := db.First(&patient, appointment.PatientID).Error; err != nil {
				log.Printf("Error loading patient for reminder %d: %v", appointment.AppointmentID, err)
				continue
			}
		}
		var doctor models.Doctor
		if err := json.Unmarshal(appointment.DoctorData, &doctor); err != nil {
			log.Printf("Error decoding doctor snapshot for reminder %d: %v", appointment.AppointmentID, err)
			continue
		}

		body := fmt.Sprintf("Dear %s,\n\nThis is a reminder for your appointment with Dr. %s tomorrow (%s) at %s.\n\nPlease arrive on time. If you need to cancel, do so as soon as possible.",
			patient.Name, doctor.Name, appointment.SlotDate, appointment.SlotTime)
		if err := mail.Send(patient.Email, "Appointment Reminder", body, "", nil); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.AppointmentID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.AppointmentID, patient.Email)
	}
}
