package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"time"

	"github.com/greenvale/resort-booking/config"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/models/booking_models"
	gomail "gopkg.in/gomail.v2"
)

const bookingConfirmedTemplate = "templates/email/booking_confirmed.html"

func init() {
	config.LoadEnv()
}

func sendEmail(toEmail, subject, templatePath string, data interface{}) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", os.Getenv("FROM_EMAIL"))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)

	t, err := template.ParseFiles(templatePath)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to parse email template %s: %v", templatePath, err)
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", templatePath, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	mailer.SetBody("text/html", body.String())

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		logger.ErrorLogger.Errorf("Invalid SMTP port: %v", err)
		return fmt.Errorf("invalid SMTP port: %w", err)
	}

	smtpHost := os.Getenv("SMTP_HOST")
	dialer := gomail.NewDialer(smtpHost, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	dialer.TLSConfig = &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         smtpHost,
	}

	if err := dialer.DialAndSend(mailer); err != nil {
		logger.ErrorLogger.Errorf("Failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.InfoLogger.Infof("Sent email to %s", toEmail)
	return nil
}

// SendBookingConfirmation mails the guest after their token payment verifies.
// NOTIFY_EMAIL, when set, receives a copy so the property is alerted too.
func SendBookingConfirmation(booking *booking_models.Booking, locationName, toEmail string) error {
	logger.InfoLogger.Infof("Sending booking confirmation for %s to %s", booking.ID, toEmail)

	data := struct {
		Name            string
		LocationName    string
		BookingID       string
		CheckInDate     string
		CheckOutDate    string
		Guests          int
		TotalPrice      int64
		AmountPaid      int64
		RemainingAmount int64
		Year            int
	}{
		Name:            booking.Name,
		LocationName:    locationName,
		BookingID:       booking.ID.String(),
		CheckInDate:     booking.CheckInDate.Format("02 Jan 2006"),
		CheckOutDate:    booking.CheckOutDate.Format("02 Jan 2006"),
		Guests:          booking.Adults + booking.Kids,
		TotalPrice:      booking.TotalPrice,
		AmountPaid:      booking.AmountPaid,
		RemainingAmount: booking.RemainingAmount,
		Year:            time.Now().Year(),
	}

	if err := sendEmail(toEmail, "Your Booking is Confirmed", bookingConfirmedTemplate, data); err != nil {
		return err
	}

	if notify := os.Getenv("NOTIFY_EMAIL"); notify != "" && notify != toEmail {
		if err := sendEmail(notify, "New Booking Confirmed", bookingConfirmedTemplate, data); err != nil {
			logger.WarnLogger.Warnf("Failed to notify property about booking %s: %v", booking.ID, err)
		}
	}
	return nil
}
