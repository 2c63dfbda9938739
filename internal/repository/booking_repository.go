package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/domain"
)

// DynamoDBPutItemAPI is the part of *dynamodb.Client used by the booking store.
type DynamoDBPutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type BookingRepository interface {
	// Put creates or replaces the record keyed by booking.BookingID.
	Put(ctx context.Context, booking domain.Booking) error
}

type bookingRepository struct {
	client DynamoDBPutItemAPI
	table  string
	log    *zap.Logger
}

func NewBookingRepository(client DynamoDBPutItemAPI, cfg *config.DynamoDBConfig, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		client: client,
		table:  cfg.BookingsTable,
		log:    log,
	}
}

func (r *bookingRepository) Put(ctx context.Context, booking domain.Booking) error {
	item, err := attributevalue.MarshalMap(booking)
	if err != nil {
		return fmt.Errorf("marshal booking %q: %w", booking.BookingID, err)
	}

	// No ConditionExpression: a repeated BookingID overwrites the earlier item.
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		r.log.Error("Failed to put booking to DynamoDB",
			zap.String("table", r.table),
			zap.String("booking_id", booking.BookingID),
			zap.Error(err))
		return fmt.Errorf("put booking %q: %w", booking.BookingID, err)
	}

	r.log.Info("Booking stored",
		zap.String("table", r.table),
		zap.String("booking_id", booking.BookingID))

	return nil
}
