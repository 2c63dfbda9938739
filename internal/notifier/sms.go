package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// SNSPublishAPI is the part of *sns.Client used for SMS.
type SNSPublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type snsSMSSender struct {
	client SNSPublishAPI
	log    *zap.Logger
}

func NewSNSSMSSender(client SNSPublishAPI, log *zap.Logger) SMSSender {
	return &snsSMSSender{client: client, log: log}
}

func (s *snsSMSSender) Send(ctx context.Context, phoneNumber, message string) error {
	out, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("publish sms to %q: %w", phoneNumber, err)
	}

	s.log.Info("SMS sent",
		zap.String("phone_number", phoneNumber),
		zap.String("message_id", aws.ToString(out.MessageId)))

	return nil
}
