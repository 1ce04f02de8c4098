package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/auth"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

// memBucket is an in-memory stand-in for the object store.
type memBucket struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failUpload bool
	failDelete bool
	noURL      bool
}

func newMemBucket() *memBucket {
	return &memBucket{objects: map[string][]byte{}}
}

func (b *memBucket) UploadFile(ctx context.Context, key string, file io.Reader) error {
	if b.failUpload {
		return errors.New("bucket write refused")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *memBucket) DeleteFile(ctx context.Context, key string) error {
	if b.failDelete {
		return errors.New("bucket delete refused")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memBucket) DownloadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *memBucket) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var keys []string
	for k := range b.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *memBucket) GetPublicURL(key string) string {
	if b.noURL {
		return ""
	}
	return "https://cdn.test/" + key
}

// fakeProvider resolves exactly one identity for the token "good".
type fakeProvider struct {
	identity *auth.Identity
	down     bool
}

func (p *fakeProvider) SignUp(ctx context.Context, email, credential string) (*auth.Identity, error) {
	if p.down {
		return nil, fmt.Errorf("sign up: %w", errs.ErrProviderUnavailable)
	}
	return p.identity, nil
}

func (p *fakeProvider) SignInWithPassword(ctx context.Context, email, credential string) (*auth.Identity, string, error) {
	if p.down {
		return nil, "", fmt.Errorf("sign in: %w", errs.ErrProviderUnavailable)
	}
	return p.identity, "good", nil
}

func (p *fakeProvider) IdentityFromToken(ctx context.Context, tokenString string) (*auth.Identity, error) {
	if p.down {
		return nil, fmt.Errorf("token check: %w", errs.ErrProviderUnavailable)
	}
	if tokenString == "good" && p.identity != nil {
		return p.identity, nil
	}
	return nil, errs.ErrNotAuthenticated
}

func (p *fakeProvider) UpdateCredential(ctx context.Context, identityID uuid.UUID, newCredential string) error {
	if p.down {
		return fmt.Errorf("update: %w", errs.ErrProviderUnavailable)
	}
	return nil
}

// stalledSession never answers; it waits out the caller's deadline.
type stalledSession struct{}

func (stalledSession) CurrentIdentity(ctx context.Context) (*auth.Identity, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// stalledBucket accepts nothing; writes hang until the context gives up.
type stalledBucket struct {
	*memBucket
}

func (b *stalledBucket) UploadFile(ctx context.Context, key string, file io.Reader) error {
	<-ctx.Done()
	return ctx.Err()
}

// flakyPhotoRepo fails the next N Create calls, then delegates.
type flakyPhotoRepo struct {
	repos.PhotoRepo
	failures int
}

func (r *flakyPhotoRepo) Create(ctx context.Context, tx *gorm.DB, photos []*types.Photo) ([]*types.Photo, error) {
	if r.failures > 0 {
		r.failures--
		return nil, errors.New("row store refused the insert")
	}
	return r.PhotoRepo.Create(ctx, tx, photos)
}
