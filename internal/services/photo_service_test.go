package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/repos/testutil"
	"github.com/fotolog/fotolog-backend/internal/types"
)

func seedPhoto(t *testing.T, photoRepo repos.PhotoRepo, bucket *memBucket, owner uuid.UUID) *types.Photo {
	t.Helper()
	key := "photos/" + owner.String() + "/1.png"
	bucket.objects[key] = []byte("png")
	photo := &types.Photo{
		ID:        uuid.New(),
		OwnerID:   owner,
		BucketKey: key,
		URL:       "https://cdn.test/" + key,
		CreatedAt: time.Now(),
	}
	if _, err := photoRepo.Create(context.Background(), nil, []*types.Photo{photo}); err != nil {
		t.Fatalf("seed photo: %v", err)
	}
	return photo
}

func TestPhotoDeleteRemovesObjectThenRow(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	photoRepo := repos.NewPhotoRepo(tx, log)
	bucket := newMemBucket()
	svc := NewPhotoService(log, photoRepo, bucket)

	photo := seedPhoto(t, photoRepo, bucket, uuid.New())

	if err := svc.Delete(context.Background(), photo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := bucket.objects[photo.BucketKey]; ok {
		t.Fatalf("object still in bucket")
	}
	if _, err := photoRepo.GetByID(context.Background(), nil, photo.ID); err == nil {
		t.Fatalf("row still present")
	}
}

func TestPhotoDeleteProceedsWhenBucketFails(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	photoRepo := repos.NewPhotoRepo(tx, log)
	bucket := newMemBucket()
	bucket.failDelete = true
	svc := NewPhotoService(log, photoRepo, bucket)

	photo := seedPhoto(t, photoRepo, bucket, uuid.New())

	if err := svc.Delete(context.Background(), photo.ID); err != nil {
		t.Fatalf("delete should succeed despite bucket failure: %v", err)
	}
	if _, ok := bucket.objects[photo.BucketKey]; !ok {
		t.Fatalf("expected the object to dangle in the bucket")
	}
	if _, err := photoRepo.GetByID(context.Background(), nil, photo.ID); err == nil {
		t.Fatalf("row must be gone even when the object delete failed")
	}
}

func TestPhotoDeleteMissing(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	svc := NewPhotoService(log, repos.NewPhotoRepo(tx, log), newMemBucket())

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPhotoDeleteOwnedChecksOwnership(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	photoRepo := repos.NewPhotoRepo(tx, log)
	bucket := newMemBucket()
	svc := NewPhotoService(log, photoRepo, bucket)

	owner := uuid.New()
	photo := seedPhoto(t, photoRepo, bucket, owner)

	if err := svc.DeleteOwned(context.Background(), uuid.New(), photo.ID); !errors.Is(err, errs.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for foreign photo, got %v", err)
	}
	if err := svc.DeleteOwned(context.Background(), owner, photo.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
