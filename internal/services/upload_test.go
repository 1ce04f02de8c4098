package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/repos/testutil"
)

func TestObjectKeyShape(t *testing.T) {
	owner := uuid.New()
	at := time.Unix(1700000000, 123456789)

	key := ObjectKey(owner, at, "Cat.PNG")
	want := fmt.Sprintf("photos/%s/%d.png", owner, at.UnixNano())
	if key != want {
		t.Fatalf("expected %q, got %q", want, key)
	}

	key = ObjectKey(owner, at, "noextension")
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("expected default extension, got %q", key)
	}
}

func TestUploadReturnsKeyAndResolvedURL(t *testing.T) {
	bucket := newMemBucket()
	upload := NewUploadService(testutil.Logger(t), bucket)
	owner := uuid.New()

	key, url, err := upload.Upload(context.Background(), owner, "cat.png", bytes.NewReader([]byte("png")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.test/"+key {
		t.Fatalf("url %q does not address key %q", url, key)
	}
	if _, ok := bucket.objects[key]; !ok {
		t.Fatalf("object missing from bucket")
	}
}

func TestUploadBucketFailure(t *testing.T) {
	bucket := newMemBucket()
	bucket.failUpload = true
	upload := NewUploadService(testutil.Logger(t), bucket)

	_, _, err := upload.Upload(context.Background(), uuid.New(), "cat.png", bytes.NewReader([]byte("png")))
	if !errors.Is(err, errs.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}
