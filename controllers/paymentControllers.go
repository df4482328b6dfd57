package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"docpoint/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentController handles the two gateway flows. Each flow verifies the
// appointment is neither cancelled nor missing before creating a charge and
// flips the payment flag only when the gateway reports the order paid.
type PaymentController struct {
	db       *gorm.DB
	razorpay OrderGateway
	stripe   CheckoutGateway
	mail     Mailer
}

func NewPaymentController(db *gorm.DB, razorpay OrderGateway, stripe CheckoutGateway, mail Mailer) *PaymentController {
	return &PaymentController{db: db, razorpay: razorpay, stripe: stripe, mail: mail}
}

func currency() string {
	cur := os.Getenv("CURRENCY")
	if cur == "" {
		cur = "INR"
	}
	return cur
}

// chargeableAppointment loads the appointment and rejects cancelled or
// missing ones with the shared message the original flows used.
func (pc *PaymentController) chargeableAppointment(c *gin.Context, appointmentID uint) (models.Appointment, bool) {
	var appointment models.Appointment
	if err := pc.db.First(&appointment, appointmentID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Appointment Cancelled or not found")
		return appointment, false
	}
	if appointment.Cancelled {
		respondError(c, http.StatusBadRequest, "Appointment Cancelled or not found")
		return appointment, false
	}
	return appointment, true
}

// PaymentRazorpay creates a razorpay order for the appointment amount.
func (pc *PaymentController) PaymentRazorpay(c *gin.Context) {
	var req struct {
		AppointmentID uint `json:"appointment_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	appointment, ok := pc.chargeableAppointment(c, req.AppointmentID)
	if !ok {
		return
	}

	// Gateway amounts are in the smallest currency unit.
	amount := int64(appointment.Amount) * 100
	receipt := strconv.FormatUint(uint64(appointment.AppointmentID), 10)
	orderID, err := pc.razorpay.CreateOrder(amount, currency(), receipt)
	if err != nil {
		log.Println("Error creating razorpay order:", err)
		respondError(c, http.StatusInternalServerError, "Failed to create razorpay order")
		return
	}

	order := models.PaymentOrder{
		OrderID:       orderID,
		Gateway:       "razorpay",
		AppointmentID: appointment.AppointmentID,
		Amount:        amount,
		Currency:      currency(),
		Status:        "created",
	}
	if err := pc.db.Create(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to record payment order")
		return
	}

	respondOK(c, gin.H{"order": gin.H{
		"id":       orderID,
		"amount":   amount,
		"currency": currency(),
		"receipt":  receipt,
	}})
}

// VerifyRazorpay fetches the order and marks the appointment paid only when
// razorpay reports it paid.
func (pc *PaymentController) VerifyRazorpay(c *gin.Context) {
	var req struct {
		OrderID string `json:"razorpay_order_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	status, receipt, err := pc.razorpay.FetchOrder(req.OrderID)
	if err != nil {
		log.Println("Error fetching razorpay order:", err)
		respondError(c, http.StatusInternalServerError, "Failed to verify payment")
		return
	}
	if status != "paid" {
		respondError(c, http.StatusBadRequest, "Payment Failed")
		return
	}

	appointmentID, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Payment Failed")
		return
	}

	pc.confirmPayment(c, uint(appointmentID), req.OrderID)
}

// PaymentStripe creates a stripe checkout session for the appointment.
func (pc *PaymentController) PaymentStripe(c *gin.Context) {
	var req struct {
		AppointmentID uint `json:"appointment_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	appointment, ok := pc.chargeableAppointment(c, req.AppointmentID)
	if !ok {
		return
	}

	origin := c.GetHeader("Origin")
	reference := strconv.FormatUint(uint64(appointment.AppointmentID), 10)
	amount := int64(appointment.Amount) * 100
	successURL := fmt.Sprintf("%s/verify?success=true&appointmentId=%d", origin, appointment.AppointmentID)
	cancelURL := fmt.Sprintf("%s/verify?success=false&appointmentId=%d", origin, appointment.AppointmentID)

	sessionID, sessionURL, err := pc.stripe.CreateSession(amount, currency(), reference, successURL, cancelURL)
	if err != nil {
		log.Println("Error creating stripe session:", err)
		respondError(c, http.StatusInternalServerError, "Failed to create stripe session")
		return
	}

	order := models.PaymentOrder{
		OrderID:       sessionID,
		Gateway:       "stripe",
		AppointmentID: appointment.AppointmentID,
		Amount:        amount,
		Currency:      currency(),
		Status:        "created",
	}
	if err := pc.db.Create(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to record payment order")
		return
	}

	respondOK(c, gin.H{"session_url": sessionURL, "session_id": sessionID})
}

// VerifyStripe checks the session against the gateway; the payment flag only
// flips when stripe reports the session paid for the referenced appointment.
func (pc *PaymentController) VerifyStripe(c *gin.Context) {
	var req struct {
		AppointmentID uint   `json:"appointment_id" binding:"required"`
		SessionID     string `json:"session_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Details")
		return
	}

	paymentStatus, reference, err := pc.stripe.SessionStatus(req.SessionID)
	if err != nil {
		log.Println("Error fetching stripe session:", err)
		respondError(c, http.StatusInternalServerError, "Failed to verify payment")
		return
	}
	if paymentStatus != "paid" || reference != strconv.FormatUint(uint64(req.AppointmentID), 10) {
		respondError(c, http.StatusBadRequest, "Payment Failed")
		return
	}

	pc.confirmPayment(c, req.AppointmentID, req.SessionID)
}

// confirmPayment flips the appointment's payment flag, updates the order row
// and emails the paid receipt.
func (pc *PaymentController) confirmPayment(c *gin.Context, appointmentID uint, orderID string) {
	var appointment models.Appointment
	if err := pc.db.First(&appointment, appointmentID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "Appointment Cancelled or not found")
		return
	}
	if appointment.Cancelled {
		respondError(c, http.StatusBadRequest, "Appointment Cancelled or not found")
		return
	}

	if err := pc.db.Model(&appointment).Update("payment", true).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update payment status")
		return
	}
	if err := pc.db.Model(&models.PaymentOrder{}).Where("order_id = ?", orderID).Update("status", "paid").Error; err != nil {
		log.Println("Error updating payment order status:", err)
	}

	pc.sendReceipt(appointment)
	respondMessage(c, "Payment Successful")
}

// sendReceipt mails the paid receipt PDF. Best effort.
func (pc *PaymentController) sendReceipt(appointment models.Appointment) {
	if pc.mail == nil {
		return
	}
	var patient models.Patient
	if err := json.Unmarshal(appointment.PatientData, &patient); err != nil || patient.Email == "" {
		// Snapshots omit the password, so Email is the only field needed here.
		if err := pc.db.First(&patient, appointment.PatientID).Error; err != nil {
			log.Println("Error loading patient for receipt mail:", err)
			return
		}
	}
	var doctor models.Doctor
	if err := json.Unmarshal(appointment.DoctorData, &doctor); err != nil {
		log.Println("Error decoding doctor snapshot:", err)
		return
	}

	receipt, err := GenerateReceiptPDF(appointment, doctor, patient, true)
	if err != nil {
		log.Println("Error generating payment receipt:", err)
		return
	}
	msg := fmt.Sprintf("Payment received for your appointment with Dr. %s on %s at %s.",
		doctor.Name, appointment.SlotDate, appointment.SlotTime)
	if err := pc.mail.Send(patient.Email, "Payment Successful", msg, "receipt.pdf", receipt); err != nil {
		log.Println("Error sending payment receipt email:", err)
	}
}
