package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/domain"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/repository"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/pkg/utils"
)

type ImageService interface {
	UploadRoomImage(ctx context.Context, file io.Reader, filename string, size int64) (*domain.UploadedImage, error)
}

type imageService struct {
	s3Repo repository.S3Repository
	cfg    *config.S3Config
	log    *zap.Logger
	clock  *keyClock
}

func NewImageService(s3Repo repository.S3Repository, cfg *config.S3Config, log *zap.Logger) ImageService {
	return &imageService{
		s3Repo: s3Repo,
		cfg:    cfg,
		log:    log,
		clock:  newKeyClock(time.Now),
	}
}

func (s *imageService) UploadRoomImage(ctx context.Context, file io.Reader, filename string, size int64) (*domain.UploadedImage, error) {
	ctx, span := tracer.Start(ctx, "ImageService.UploadRoomImage")
	defer span.End()

	key := s.cfg.ImagePrefix + strconv.FormatInt(s.clock.next(), 10) + "-" + filename
	span.SetAttributes(attribute.String("s3.key", key))

	contentType, body, err := utils.DetectContentType(file, filename)
	if err != nil {
		return nil, fmt.Errorf("detect content type of %q: %w", filename, err)
	}

	url, err := s.s3Repo.UploadFile(ctx, key, body, contentType)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	image := &domain.UploadedImage{
		Key:          key,
		URL:          url,
		OriginalName: filename,
		Size:         size,
		ContentType:  contentType,
		UploadedAt:   time.Now(),
	}

	s.log.Info("Room image uploaded",
		zap.String("key", key),
		zap.String("filename", filename),
		zap.String("content_type", contentType),
		zap.Int64("size", size))

	return image, nil
}

// keyClock hands out millisecond timestamps that never repeat within the process,
// so two uploads of the same filename always get different keys.
type keyClock struct {
	last atomic.Int64
	now  func() time.Time
}

func newKeyClock(now func() time.Time) *keyClock {
	return &keyClock{now: now}
}

func (c *keyClock) next() int64 {
	for {
		prev := c.last.Load()
		ts := c.now().UnixMilli()
		if ts <= prev {
			ts = prev + 1
		}
		if c.last.CompareAndSwap(prev, ts) {
			return ts
		}
	}
}
