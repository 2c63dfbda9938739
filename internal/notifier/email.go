package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
)

// SESSendEmailAPI is the part of *sesv2.Client used for confirmations.
type SESSendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesEmailSender struct {
	client     SESSendEmailAPI
	from       string
	overrideTo string
	log        *zap.Logger
}

func NewSESEmailSender(client SESSendEmailAPI, cfg *config.NotifyConfig, log *zap.Logger) EmailSender {
	return &sesEmailSender{
		client:     client,
		from:       cfg.EmailFrom,
		overrideTo: cfg.EmailOverrideTo,
		log:        log,
	}
}

func (s *sesEmailSender) recipient(toEmail string) string {
	if s.overrideTo != "" {
		return s.overrideTo
	}
	return toEmail
}

func (s *sesEmailSender) SendBookingConfirmation(ctx context.Context, toEmail, bookingID string) error {
	to := s.recipient(toEmail)

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(ConfirmationSubject(bookingID))},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(ConfirmationText(bookingID))},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send confirmation email for booking %q: %w", bookingID, err)
	}

	s.log.Info("Email sent",
		zap.String("booking_id", bookingID),
		zap.String("to", to),
		zap.String("message_id", aws.ToString(out.MessageId)))

	return nil
}
