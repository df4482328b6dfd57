package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"docpoint/authentication"
	"docpoint/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newPaymentRouter(pc *PaymentController) *gin.Engine {
	r := gin.New()
	user := r.Group("/api/user")
	user.Use(authentication.PatientAuthMiddleware())
	{
		user.POST("/payment-razorpay", pc.PaymentRazorpay)
		user.POST("/verify-razorpay", pc.VerifyRazorpay)
		user.POST("/payment-stripe", pc.PaymentStripe)
		user.POST("/verify-stripe", pc.VerifyStripe)
	}
	return r
}

func seedAppointment(t *testing.T, db *gorm.DB, doctor models.Doctor, patient models.Patient) models.Appointment {
	t.Helper()
	patientData, err := json.Marshal(patient)
	require.NoError(t, err)
	doctorData, err := json.Marshal(doctor)
	require.NoError(t, err)
	appointment := models.Appointment{
		PatientID:   patient.PatientID,
		DoctorID:    doctor.DoctorID,
		SlotDate:    "2024-03-10",
		SlotTime:    "10:00",
		PatientData: datatypes.JSON(patientData),
		DoctorData:  datatypes.JSON(doctorData),
		Amount:      doctor.Fees,
	}
	require.NoError(t, db.Create(&appointment).Error)
	return appointment
}

func TestRazorpayOrderAndVerify(t *testing.T) {
	db := openTestDB(t)
	gateway := newFakeOrderGateway()
	mail := &fakeMailer{}
	pc := NewPaymentController(db, gateway, newFakeCheckoutGateway(), mail)
	r := newPaymentRouter(pc)

	doctor := seedDoctor(t, db, "pay@test.com", 500, true)
	patient := seedPatient(t, db, "pay.patient@test.com")
	appointment := seedAppointment(t, db, doctor, patient)
	token := patientToken(t, patient)

	w := performRequest(r, http.MethodPost, "/api/user/payment-razorpay", token,
		jsonBody(fmt.Sprintf(`{"appointment_id":%d}`, appointment.AppointmentID)), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Order amount is in the smallest currency unit.
	order := gateway.orders["order_1"]
	require.NotNil(t, order)
	assert.EqualValues(t, int64(doctor.Fees)*100, order.amount)

	// Verification with a non-paid order leaves the flag false.
	w = performRequest(r, http.MethodPost, "/api/user/verify-razorpay", token,
		jsonBody(`{"razorpay_order_id":"order_1"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment Failed")

	require.NoError(t, db.First(&appointment, appointment.AppointmentID).Error)
	assert.False(t, appointment.Payment)

	// Once the gateway reports paid, verification flips the flag.
	order.status = "paid"
	w = performRequest(r, http.MethodPost, "/api/user/verify-razorpay", token,
		jsonBody(`{"razorpay_order_id":"order_1"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&appointment, appointment.AppointmentID).Error)
	assert.True(t, appointment.Payment)

	var paymentOrder models.PaymentOrder
	require.NoError(t, db.First(&paymentOrder, "order_id = ?", "order_1").Error)
	assert.Equal(t, "paid", paymentOrder.Status)
}

func TestRazorpayOrderForCancelledAppointment(t *testing.T) {
	db := openTestDB(t)
	pc := NewPaymentController(db, newFakeOrderGateway(), newFakeCheckoutGateway(), nil)
	r := newPaymentRouter(pc)

	doctor := seedDoctor(t, db, "cxl@test.com", 500, true)
	patient := seedPatient(t, db, "cxl.patient@test.com")
	appointment := seedAppointment(t, db, doctor, patient)
	require.NoError(t, db.Model(&appointment).Update("cancelled", true).Error)

	w := performRequest(r, http.MethodPost, "/api/user/payment-razorpay", patientToken(t, patient),
		jsonBody(fmt.Sprintf(`{"appointment_id":%d}`, appointment.AppointmentID)), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Appointment Cancelled or not found")
}

func TestStripeSessionAndVerify(t *testing.T) {
	db := openTestDB(t)
	gateway := newFakeCheckoutGateway()
	pc := NewPaymentController(db, newFakeOrderGateway(), gateway, nil)
	r := newPaymentRouter(pc)

	doctor := seedDoctor(t, db, "stripe@test.com", 700, true)
	patient := seedPatient(t, db, "stripe.patient@test.com")
	appointment := seedAppointment(t, db, doctor, patient)
	token := patientToken(t, patient)

	w := performRequest(r, http.MethodPost, "/api/user/payment-stripe", token,
		jsonBody(fmt.Sprintf(`{"appointment_id":%d}`, appointment.AppointmentID)), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "session_url")

	// Unpaid session does not flip the flag.
	w = performRequest(r, http.MethodPost, "/api/user/verify-stripe", token,
		jsonBody(fmt.Sprintf(`{"appointment_id":%d,"session_id":"cs_1"}`, appointment.AppointmentID)), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, db.First(&appointment, appointment.AppointmentID).Error)
	assert.False(t, appointment.Payment)

	gateway.sessions["cs_1"].status = "paid"
	w = performRequest(r, http.MethodPost, "/api/user/verify-stripe", token,
		jsonBody(fmt.Sprintf(`{"appointment_id":%d,"session_id":"cs_1"}`, appointment.AppointmentID)), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&appointment, appointment.AppointmentID).Error)
	assert.True(t, appointment.Payment)
}

func TestStripeVerifyWrongAppointment(t *testing.T) {
	db := openTestDB(t)
	gateway := newFakeCheckoutGateway()
	pc := NewPaymentController(db, newFakeOrderGateway(), gateway, nil)
	r := newPaymentRouter(pc)

	doctor := seedDoctor(t, db, "wrong@test.com", 700, true)
	patient := seedPatient(t, db, "wrong.patient@test.com")
	first := seedAppointment(t, db, doctor, patient)
	second := models.Appointment{
		PatientID: patient.PatientID,
		DoctorID:  doctor.DoctorID,
		SlotDate:  "2024-03-11",
		SlotTime:  "10:00",
		Amount:    doctor.Fees,
	}
	require.NoError(t, db.Create(&second).Error)
	token := patientToken(t, patient)

	// Session created for the first appointment.
	w := performRequest(r, http.MethodPost, "/api/user/payment-stripe", token,
		jsonBody(fmt.Sprintf(`{"appointment_id":%d}`, first.AppointmentID)), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	gateway.sessions["cs_1"].status = "paid"

	// Verifying it against a different appointment must not flip anything.
	w = performRequest(r, http.MethodPost, "/api/user/verify-stripe", token,
		jsonBody(fmt.Sprintf(`{"appointment_id":%d,"session_id":"cs_1"}`, second.AppointmentID)), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, db.First(&second, second.AppointmentID).Error)
	assert.False(t, second.Payment)
}

func TestPaymentReceiptMail(t *testing.T) {
	db := openTestDB(t)
	gateway := newFakeOrderGateway()
	mail := &fakeMailer{}
	pc := NewPaymentController(db, gateway, newFakeCheckoutGateway(), mail)
	r := newPaymentRouter(pc)

	doctor := seedDoctor(t, db, "receipt@test.com", 500, true)
	patient := seedPatient(t, db, "receipt.patient@test.com")
	appointment := seedAppointment(t, db, doctor, patient)
	token := patientToken(t, patient)

	w := performRequest(r, http.MethodPost, "/api/user/payment-razorpay", token,
		jsonBody(fmt.Sprintf(`{"appointment_id":%d}`, appointment.AppointmentID)), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	gateway.orders["order_1"].status = "paid"
	w = performRequest(r, http.MethodPost, "/api/user/verify-razorpay", token,
		jsonBody(`{"razorpay_order_id":"order_1"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, patient.Email, mail.sent[0].to)
	assert.Equal(t, "Payment Successful", mail.sent[0].subject)
}
