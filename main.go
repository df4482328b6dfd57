package main

import (
	"log"
	"os"
	"strconv"

	"docpoint/configuration"
	"docpoint/controllers"
	"docpoint/jobs"
	"docpoint/routes"
)

func main() {
	configuration.LoadEnv()

	db, err := configuration.ConfigDB()
	if err != nil {
		panic(err)
	}

	cache, err := configuration.InitRedis()
	if err != nil {
		// The doctor list cache is an optimization; run without it.
		log.Println("Redis unavailable, continuing without cache:", err)
		cache = nil
	}

	cld, err := configuration.InitCloudinary()
	if err != nil {
		panic(err)
	}
	blob := controllers.NewCloudinaryStore(cld)

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}
	mail := controllers.NewGomailMailer(os.Getenv("SMTP_HOST"), smtpPort, os.Getenv("SMTP_EMAIL"), os.Getenv("SMTP_PASSWORD"))

	sms := controllers.NewTwilioNotifier(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTHTOKEN"),
		os.Getenv("TWILIO_PHONENUMBER"),
	)

	razorpay := controllers.NewRazorpayGateway(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	stripe := controllers.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"))

	ledger := controllers.NewSlotLedger(db)

	r := routes.SetupRouter(routes.Controllers{
		User:    controllers.NewUserController(db, blob),
		Booking: controllers.NewBookingController(db, ledger, mail, sms),
		Payment: controllers.NewPaymentController(db, razorpay, stripe, mail),
		Report:  controllers.NewReportController(db, blob, nil),
		Doctor:  controllers.NewDoctorController(db, ledger, cache),
		Admin:   controllers.NewAdminController(db, blob, ledger, cache),
	})

	jobs.StartDailyScheduler(db, mail)

	if err := r.Run(); err != nil {
		panic(err)
	}
}
