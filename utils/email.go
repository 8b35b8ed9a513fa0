package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"

	"github.com/slotline/booking-app/models"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendBookingConfirmation emails the customer their booking reference.
// Best-effort: failures are logged by callers, never surfaced to the request.
func SendBookingConfirmation(appointment *models.Appointment, businessName string) error {
	if appointment.CustomerEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("Booking Confirmed - %s", businessName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment with %s has been requested.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Booking Reference:</strong> %s</li>
		</ul>
		<p>Keep your booking reference; you will need it to view or cancel the appointment.</p>
	`, appointment.CustomerName, businessName,
		appointment.Date, appointment.StartTime, appointment.EndTime,
		appointment.BookingReference)

	return SendEmail(appointment.CustomerEmail, subject, body)
}

// SendCancellationNotice emails the customer that the appointment was cancelled.
func SendCancellationNotice(appointment *models.Appointment) error {
	if appointment.CustomerEmail == "" {
		return nil
	}
	subject := "Appointment Cancelled"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment on %s at %s (reference %s) has been cancelled.</p>
	`, appointment.CustomerName, appointment.Date, appointment.StartTime,
		appointment.BookingReference)

	return SendEmail(appointment.CustomerEmail, subject, body)
}
