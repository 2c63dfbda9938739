package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
)

// S3UploadAPI is satisfied by *manager.Uploader, which streams bodies of unknown length.
type S3UploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3Repository interface {
	// UploadFile stores body under key and returns the object's public URL.
	UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type s3Repository struct {
	uploader S3UploadAPI
	cfg      *config.S3Config
	log      *zap.Logger
}

func NewS3Repository(uploader S3UploadAPI, cfg *config.S3Config, log *zap.Logger) S3Repository {
	return &s3Repository{
		uploader: uploader,
		cfg:      cfg,
		log:      log,
	}
}

func (r *s3Repository) UploadFile(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.cfg.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if r.cfg.PublicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	output, err := r.uploader.Upload(ctx, input)
	if err != nil {
		r.log.Error("Failed to upload file to S3",
			zap.String("bucket", r.cfg.BucketName),
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("upload %q: %w", key, err)
	}

	r.log.Info("File uploaded to S3",
		zap.String("key", key),
		zap.String("location", output.Location))

	return output.Location, nil
}
