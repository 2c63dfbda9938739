package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/domain"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/notifier"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/repository"
)

var tracer = otel.Tracer("hotel-booking/internal/service")

type BookingService interface {
	// SubmitBooking stores the booking and queues the guest notifications.
	// The returned error reflects the store write only.
	SubmitBooking(ctx context.Context, req domain.BookingRequest) error
}

type bookingService struct {
	repo       repository.BookingRepository
	email      notifier.EmailSender
	sms        notifier.SMSSender
	dispatcher *notifier.Dispatcher
	log        *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	email notifier.EmailSender,
	sms notifier.SMSSender,
	dispatcher *notifier.Dispatcher,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:       repo,
		email:      email,
		sms:        sms,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (s *bookingService) SubmitBooking(ctx context.Context, req domain.BookingRequest) error {
	ctx, span := tracer.Start(ctx, "BookingService.SubmitBooking")
	defer span.End()
	span.SetAttributes(attribute.String("booking.id", req.BookingID))

	if err := s.repo.Put(ctx, req.Booking()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store write failed")
		s.log.Error("Booking failed",
			zap.String("booking_id", req.BookingID),
			zap.Error(err))
		return fmt.Errorf("submit booking: %w", err)
	}

	bookingID := zap.String("booking_id", req.BookingID)
	s.dispatcher.Go(ctx, "email", func(ctx context.Context) error {
		return s.email.SendBookingConfirmation(ctx, req.GuestEmail, req.BookingID)
	}, bookingID)
	s.dispatcher.Go(ctx, "sms", func(ctx context.Context) error {
		return s.sms.Send(ctx, req.PhoneNumber, notifier.ConfirmationSMS(req.BookingID))
	}, bookingID)

	s.log.Info("Booking accepted",
		zap.String("booking_id", req.BookingID),
		zap.String("room_type", req.RoomType))

	return nil
}
