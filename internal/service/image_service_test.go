package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
)

type storedObject struct {
	body        []byte
	contentType string
}

type memoryS3Repo struct {
	mu      sync.Mutex
	objects map[string]storedObject
	err     error
}

func (r *memoryS3Repo) UploadFile(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.objects == nil {
		r.objects = map[string]storedObject{}
	}
	r.objects[key] = storedObject{body: b, contentType: contentType}
	return "https://boutiquehotelroomimages.s3.us-east-1.amazonaws.com/" + key, nil
}

var roomKeyPattern = regexp.MustCompile(`^rooms/(\d+)-room\.jpg$`)

func jpegBytes(n int) []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x42}, n-4)...)
}

func newTestImageService(t *testing.T, repo *memoryS3Repo) ImageService {
	t.Helper()
	return NewImageService(repo, &config.S3Config{BucketName: "boutiquehotelroomimages", ImagePrefix: "rooms/"}, zaptest.NewLogger(t))
}

func TestUploadRoomImage(t *testing.T) {
	repo := &memoryS3Repo{}
	svc := newTestImageService(t, repo)
	data := jpegBytes(10 * 1024)

	img, err := svc.UploadRoomImage(context.Background(), bytes.NewReader(data), "room.jpg", int64(len(data)))
	require.NoError(t, err)

	assert.Regexp(t, roomKeyPattern, img.Key)
	assert.Equal(t, "https://boutiquehotelroomimages.s3.us-east-1.amazonaws.com/"+img.Key, img.URL)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, "room.jpg", img.OriginalName)
	assert.Equal(t, int64(len(data)), img.Size)

	stored := repo.objects[img.Key]
	assert.Equal(t, data, stored.body)
	assert.Equal(t, "image/jpeg", stored.contentType)
}

func TestUploadRoomImageSameNameGetsDistinctKeys(t *testing.T) {
	repo := &memoryS3Repo{}
	svc := newTestImageService(t, repo)

	first, err := svc.UploadRoomImage(context.Background(), bytes.NewReader(jpegBytes(64)), "room.jpg", 64)
	require.NoError(t, err)
	second, err := svc.UploadRoomImage(context.Background(), bytes.NewReader(jpegBytes(64)), "room.jpg", 64)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
	assert.Regexp(t, roomKeyPattern, first.Key)
	assert.Regexp(t, roomKeyPattern, second.Key)
	assert.Len(t, repo.objects, 2)
}

func TestUploadRoomImageStorageError(t *testing.T) {
	cause := errors.New("AccessDenied")
	svc := newTestImageService(t, &memoryS3Repo{err: cause})

	img, err := svc.UploadRoomImage(context.Background(), bytes.NewReader(jpegBytes(64)), "room.jpg", 64)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, img)
}

func TestKeyClockIsStrictlyIncreasing(t *testing.T) {
	frozen := time.UnixMilli(1735689600000)
	clock := newKeyClock(func() time.Time { return frozen })

	assert.Equal(t, int64(1735689600000), clock.next())
	assert.Equal(t, int64(1735689600001), clock.next())
	assert.Equal(t, int64(1735689600002), clock.next())
}

func TestKeyClockConcurrentCallersNeverCollide(t *testing.T) {
	clock := newKeyClock(time.Now)
	const callers = 50

	var mu sync.Mutex
	seen := make(map[int64]struct{}, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ts := clock.next()
			mu.Lock()
			seen[ts] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, callers)
}
