// Package notifier sends booking confirmations over email and SMS and runs
// those sends as detached background tasks.
package notifier

import (
	"context"
	"fmt"
)

type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, toEmail, bookingID string) error
}

type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

func ConfirmationSubject(bookingID string) string {
	return fmt.Sprintf("Booking Confirmation - %s", bookingID)
}

func ConfirmationText(bookingID string) string {
	return fmt.Sprintf("Thank you for booking. Your booking ID is %s.", bookingID)
}

func ConfirmationSMS(bookingID string) string {
	return fmt.Sprintf("Your booking (%s) is confirmed!", bookingID)
}
