package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func TestEmailConfirmationGoesToGuest(t *testing.T) {
	ses := &fakeSES{}
	sender := NewSESEmailSender(ses, &config.NotifyConfig{EmailFrom: "bookings@hotel.example"}, zaptest.NewLogger(t))

	require.NoError(t, sender.SendBookingConfirmation(context.Background(), "jane@x.com", "B1"))

	in := ses.input
	require.NotNil(t, in)
	assert.Equal(t, "bookings@hotel.example", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"jane@x.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Booking Confirmation - B1", aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, "Thank you for booking. Your booking ID is B1.", aws.ToString(in.Content.Simple.Body.Text.Data))
}

func TestEmailConfirmationOverrideRecipient(t *testing.T) {
	ses := &fakeSES{}
	cfg := &config.NotifyConfig{EmailFrom: "bookings@hotel.example", EmailOverrideTo: "frontdesk@hotel.example"}
	sender := NewSESEmailSender(ses, cfg, zaptest.NewLogger(t))

	require.NoError(t, sender.SendBookingConfirmation(context.Background(), "jane@x.com", "B1"))
	assert.Equal(t, []string{"frontdesk@hotel.example"}, ses.input.Destination.ToAddresses)
}

func TestEmailConfirmationError(t *testing.T) {
	cause := errors.New("MessageRejected")
	sender := NewSESEmailSender(&fakeSES{err: cause}, &config.NotifyConfig{}, zaptest.NewLogger(t))

	err := sender.SendBookingConfirmation(context.Background(), "jane@x.com", "B1")
	assert.ErrorIs(t, err, cause)
}

func TestSMSSend(t *testing.T) {
	client := &fakeSNS{}
	sender := NewSNSSMSSender(client, zaptest.NewLogger(t))

	require.NoError(t, sender.Send(context.Background(), "+15551234567", ConfirmationSMS("B1")))
	assert.Equal(t, "+15551234567", aws.ToString(client.input.PhoneNumber))
	assert.Equal(t, "Your booking (B1) is confirmed!", aws.ToString(client.input.Message))
}

func TestSMSSendError(t *testing.T) {
	cause := errors.New("InvalidParameter")
	sender := NewSNSSMSSender(&fakeSNS{err: cause}, zaptest.NewLogger(t))

	assert.ErrorIs(t, sender.Send(context.Background(), "", "hi"), cause)
}

func TestDispatcherGoDoesNotBlock(t *testing.T) {
	d := NewDispatcher(time.Second, zaptest.NewLogger(t))
	release := make(chan struct{})
	var done atomic.Bool

	start := time.Now()
	d.Go(context.Background(), "slow", func(context.Context) error {
		<-release
		done.Store(true)
		return nil
	})
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.False(t, done.Load())

	close(release)
	require.NoError(t, d.Wait(context.Background()))
	assert.True(t, done.Load())
}

func TestDispatcherLogsFailuresAndPanics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := NewDispatcher(time.Second, zap.New(core))

	d.Go(context.Background(), "email", func(context.Context) error {
		return errors.New("relay down")
	}, zap.String("booking_id", "B1"))
	d.Go(context.Background(), "sms", func(context.Context) error {
		panic("boom")
	})
	require.NoError(t, d.Wait(context.Background()))

	failed := logs.FilterMessage("Notification task failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "email", failed[0].ContextMap()["task"])
	assert.Equal(t, "B1", failed[0].ContextMap()["booking_id"])
	assert.Equal(t, "relay down", failed[0].ContextMap()["error"])

	panicked := logs.FilterMessage("Notification task panicked").All()
	require.Len(t, panicked, 1)
	assert.Equal(t, "sms", panicked[0].ContextMap()["task"])
}

func TestDispatcherTaskOutlivesCanceledRequest(t *testing.T) {
	d := NewDispatcher(time.Second, zaptest.NewLogger(t))
	reqCtx, cancel := context.WithCancel(context.Background())

	var taskErr atomic.Value
	started := make(chan struct{})
	d.Go(reqCtx, "email", func(ctx context.Context) error {
		<-started
		taskErr.Store(ctx.Err() == nil)
		return nil
	})
	cancel()
	close(started)

	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, true, taskErr.Load())
}

func TestDispatcherTaskTimeout(t *testing.T) {
	d := NewDispatcher(20*time.Millisecond, zaptest.NewLogger(t))

	var got atomic.Value
	d.Go(context.Background(), "sms", func(ctx context.Context) error {
		<-ctx.Done()
		got.Store(ctx.Err())
		return ctx.Err()
	})
	require.NoError(t, d.Wait(context.Background()))
	assert.ErrorIs(t, got.Load().(error), context.DeadlineExceeded)
}

func TestDispatcherWaitHonorsContext(t *testing.T) {
	d := NewDispatcher(time.Second, zaptest.NewLogger(t))
	release := make(chan struct{})
	d.Go(context.Background(), "stuck", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, d.Wait(context.Background()))
}
