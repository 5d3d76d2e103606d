package pdf

import (
	"bytes"
	"fmt"

	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/models/booking_models"
	"github.com/jung-kurt/gofpdf"
)

// GenerateBookingReceipt renders a one-page PDF receipt for a confirmed
// booking. Amounts are shown in rupees; "Rs." is used because the core
// fonts have no rupee glyph.
func GenerateBookingReceipt(booking *booking_models.Booking, locationName string) ([]byte, error) {
	logger.InfoLogger.Infof("Generating PDF receipt for booking %s", booking.ID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(27, 67, 50)
	pdf.CellFormat(0, 12, "Booking Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, locationName, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(60, 9, label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(40, 40, 40)
		pdf.CellFormat(0, 9, value, "B", 1, "R", false, 0, "")
	}

	row("Booking ID", booking.ID.String())
	row("Guest Name", booking.Name)
	row("Phone", booking.Phone)
	row("Check-in", booking.CheckInDate.Format("02 Jan 2006"))
	row("Check-out", booking.CheckOutDate.Format("02 Jan 2006"))
	row("Adults", fmt.Sprintf("%d", booking.Adults))
	row("Kids", fmt.Sprintf("%d", booking.Kids))
	if booking.WithFood {
		row("Food", "Included")
	} else {
		row("Food", "Not included")
	}
	row("Status", booking.Status)

	pdf.Ln(6)
	row("Total Price", fmt.Sprintf("Rs. %d", booking.TotalPrice))
	row("Amount Paid", fmt.Sprintf("Rs. %d", booking.AmountPaid))
	row("Payable at Check-in", fmt.Sprintf("Rs. %d", booking.RemainingAmount))

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(150, 150, 150)
	pdf.MultiCell(0, 5, "Please carry a valid government ID and present this receipt at check-in. The remaining amount is payable at the property.", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logger.ErrorLogger.Errorf("Failed to render PDF for booking %s: %v", booking.ID, err)
		return nil, fmt.Errorf("failed to render receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}
