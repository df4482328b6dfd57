package controllers

import (
	"bytes"
	"fmt"
	"io"

	"docpoint/models"

	"github.com/go-gomail/gomail"
	"github.com/jung-kurt/gofpdf"
)

type gomailMailer struct {
	host     string
	port     int
	from     string
	password string
}

// NewGomailMailer builds the SMTP mailer used for booking and payment mails.
func NewGomailMailer(host string, port int, from, password string) Mailer {
	return &gomailMailer{host: host, port: port, from: from, password: password}
}

func (m *gomailMailer) Send(to, subject, body, attachmentName string, attachment []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if len(attachment) > 0 {
		msg.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// GenerateReceiptPDF renders the booking or payment receipt attached to the
// confirmation mails.
func GenerateReceiptPDF(appointment models.Appointment, doctor models.Doctor, patient models.Patient, paid bool) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 128)
	pdf.CellFormat(0, 10, "DocPoint - Doctor Appointment Booking", "", 1, "C", false, 0, "")

	title := "Appointment Receipt"
	if paid {
		title = "Payment Receipt"
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, title, "1", 1, "C", false, 0, "")

	addReceiptDetail(pdf, "Appointment ID", fmt.Sprintf("%d", appointment.AppointmentID), true)
	addReceiptDetail(pdf, "Doctor Name", doctor.Name, true)
	addReceiptDetail(pdf, "Speciality", doctor.Speciality, true)
	addReceiptDetail(pdf, "Patient Name", patient.Name, true)
	addReceiptDetail(pdf, "Date", appointment.SlotDate, true)
	addReceiptDetail(pdf, "Time Slot", appointment.SlotTime, true)

	status := "Due"
	if paid {
		status = "Paid"
	}
	addReceiptDetail(pdf, "Payment Status", status, false)
	pdf.SetFont("Arial", "B", 13)
	addReceiptDetail(pdf, "Amount", fmt.Sprintf("%d", appointment.Amount), true)

	pdf.SetY(pdf.GetY() + 12)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addReceiptDetail adds a detail line to the PDF
func addReceiptDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
