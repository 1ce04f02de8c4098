package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/gcs"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
)

// UploadService stores photo bytes in the object bucket and resolves the
// public address the stored object will be served from. The address must
// resolve before any row-store write happens, so both come back together.
type UploadService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, fileName string, file io.Reader) (key string, url string, err error)
}

type uploadService struct {
	log    *logger.Logger
	bucket gcs.BucketService
	now    func() time.Time
}

func NewUploadService(baseLog *logger.Logger, bucket gcs.BucketService) UploadService {
	serviceLog := baseLog.With("service", "UploadService")
	return &uploadService{log: serviceLog, bucket: bucket, now: time.Now}
}

// ObjectKey builds the bucket key for a photo: owner-scoped prefix plus a
// timestamp name. Uploading twice in the same nanosecond overwrites, which
// the bucket write tolerates.
func ObjectKey(ownerID uuid.UUID, at time.Time, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("photos/%s/%d%s", ownerID, at.UnixNano(), ext)
}

func (us *uploadService) Upload(ctx context.Context, ownerID uuid.UUID, fileName string, file io.Reader) (string, string, error) {
	key := ObjectKey(ownerID, us.now(), fileName)

	if err := us.bucket.UploadFile(ctx, key, file); err != nil {
		us.log.Error("bucket write failed", "key", key, "error", err)
		return "", "", fmt.Errorf("%w: %w", errs.ErrUploadFailed, err)
	}

	url := us.bucket.GetPublicURL(key)
	if url == "" {
		// The object is already stored; the caller gets the key so it can
		// report the orphan.
		us.log.Error("public address did not resolve for stored object", "key", key)
		return key, "", errs.ErrAddressResolutionFailed
	}

	us.log.Info("photo object stored", "key", key, "owner_id", ownerID)
	return key, url, nil
}
