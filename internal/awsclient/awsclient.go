// Package awsclient builds the process-wide AWS service clients once at startup.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
)

type Clients struct {
	DynamoDB *dynamodb.Client
	S3       *s3.Client
	SES      *sesv2.Client
	SNS      *sns.Client
}

func LoadConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return awsCfg, nil
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Clients, error) {
	awsCfg, err := LoadConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}

	clients := &Clients{
		DynamoDB: dynamodb.NewFromConfig(awsCfg),
		S3: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = cfg.S3.UsePathStyle
		}),
		SES: sesv2.NewFromConfig(awsCfg),
		SNS: sns.NewFromConfig(awsCfg),
	}

	log.Info("AWS clients initialized",
		zap.String("region", awsCfg.Region),
		zap.String("endpoint", cfg.AWS.Endpoint),
		zap.Bool("static_credentials", cfg.AWS.AccessKeyID != ""))

	return clients, nil
}
