package routes

import (
	"docpoint/authentication"
	"docpoint/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers bundles the handler sets wired in main.
type Controllers struct {
	User    *controllers.UserController
	Booking *controllers.BookingController
	Payment *controllers.PaymentController
	Report  *controllers.ReportController
	Doctor  *controllers.DoctorController
	Admin   *controllers.AdminController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// public routes
	r.POST("/api/user/register", ctrl.User.Register)
	r.POST("/api/user/login", ctrl.User.Login)
	r.POST("/api/doctor/login", ctrl.Doctor.Login)
	r.POST("/api/admin/login", ctrl.Admin.Login)
	r.GET("/api/doctor/list", ctrl.Doctor.ListDoctors)

	user := r.Group("/api/user")
	user.Use(authentication.PatientAuthMiddleware())
	{
		user.GET("/get-profile", ctrl.User.GetProfile)
		user.POST("/update-profile", ctrl.User.UpdateProfile)
		user.POST("/book-appointment", ctrl.Booking.BookAppointment)
		user.GET("/appointments", ctrl.Booking.ListAppointments)
		user.POST("/cancel-appointment/:id", ctrl.Booking.CancelAppointment)
		user.POST("/payment-razorpay", ctrl.Payment.PaymentRazorpay)
		user.POST("/verify-razorpay", ctrl.Payment.VerifyRazorpay)
		user.POST("/payment-stripe", ctrl.Payment.PaymentStripe)
		user.POST("/verify-stripe", ctrl.Payment.VerifyStripe)
		user.POST("/upload-report", ctrl.Report.UploadReport)
		user.GET("/reports", ctrl.Report.ListReports)
		user.DELETE("/report/:ref", ctrl.Report.DeleteReport)
		user.GET("/report-pdf/:ref", ctrl.Report.GetReportPDF)
	}

	doctor := r.Group("/api/doctor")
	doctor.Use(authentication.DoctorAuthMiddleware())
	{
		doctor.POST("/change-availability", ctrl.Doctor.ChangeAvailability)
		doctor.GET("/appointments", ctrl.Doctor.Appointments)
		doctor.POST("/complete-appointment/:id", ctrl.Doctor.CompleteAppointment)
		doctor.POST("/cancel-appointment/:id", ctrl.Doctor.CancelAppointment)
		doctor.GET("/dashboard", ctrl.Doctor.Dashboard)
		doctor.GET("/profile", ctrl.Doctor.Profile)
		doctor.POST("/update-profile", ctrl.Doctor.UpdateProfile)
	}

	admin := r.Group("/api/admin")
	admin.Use(authentication.AdminAuthMiddleware())
	{
		admin.POST("/add-doctor", ctrl.Admin.AddDoctor)
		admin.GET("/all-doctors", ctrl.Admin.AllDoctors)
		admin.POST("/change-availability", ctrl.Admin.ChangeAvailability)
		admin.GET("/appointments", ctrl.Admin.AllAppointments)
		admin.POST("/cancel-appointment/:id", ctrl.Admin.CancelAppointment)
		admin.GET("/dashboard", ctrl.Admin.Dashboard)
	}

	return r
}
