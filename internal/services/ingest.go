package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/types"
)

const (
	defaultAuthTimeout      = 5 * time.Second
	defaultProvisionTimeout = 5 * time.Second
	defaultUploadTimeout    = 60 * time.Second
	defaultRegisterTimeout  = 5 * time.Second
)

// IngestInput carries one photo through the pipeline. An empty Caption is
// stored as no caption.
type IngestInput struct {
	FileName string
	Caption  string
	File     io.Reader
}

// IngestService runs the photo ingestion pipeline: resolve the caller's
// identity, make sure their user row exists, store the object, register the
// row. Stages run strictly in order and the first failure stops the run;
// errors come back as *StageError. There is no automatic retry, a caller
// that tries again starts a fresh run with a fresh object key.
type IngestService interface {
	Run(ctx context.Context, in IngestInput) (*types.Photo, error)
	// RunFor ingests on behalf of a known user, skipping the auth and
	// provisioning stages. Used by the admin surface.
	RunFor(ctx context.Context, ownerID uuid.UUID, in IngestInput) (*types.Photo, error)
}

type ingestService struct {
	log       *logger.Logger
	session   SessionService
	provision ProvisionService
	upload    UploadService
	registrar RegistrarService

	authTimeout      time.Duration
	provisionTimeout time.Duration
	uploadTimeout    time.Duration
	registerTimeout  time.Duration
}

func NewIngestService(
	baseLog *logger.Logger,
	session SessionService,
	provision ProvisionService,
	upload UploadService,
	registrar RegistrarService,
) IngestService {
	serviceLog := baseLog.With("service", "IngestService")
	return &ingestService{
		log:              serviceLog,
		session:          session,
		provision:        provision,
		upload:           upload,
		registrar:        registrar,
		authTimeout:      defaultAuthTimeout,
		provisionTimeout: defaultProvisionTimeout,
		uploadTimeout:    defaultUploadTimeout,
		registerTimeout:  defaultRegisterTimeout,
	}
}

func (is *ingestService) Run(ctx context.Context, in IngestInput) (*types.Photo, error) {
	authCtx, cancelAuth := context.WithTimeout(ctx, is.authTimeout)
	identity, err := is.session.CurrentIdentity(authCtx)
	cancelAuth()
	if err != nil {
		return nil, stageFail(StageAuth, err)
	}
	if identity == nil {
		return nil, stageFail(StageAuth, errs.ErrNotAuthenticated)
	}

	provCtx, cancelProv := context.WithTimeout(ctx, is.provisionTimeout)
	err = is.provision.EnsureUserRecord(provCtx, nil, identity)
	cancelProv()
	if err != nil {
		return nil, stageFail(StageProvision, err)
	}

	return is.store(ctx, identity.ID, in)
}

func (is *ingestService) RunFor(ctx context.Context, ownerID uuid.UUID, in IngestInput) (*types.Photo, error) {
	return is.store(ctx, ownerID, in)
}

func (is *ingestService) store(ctx context.Context, ownerID uuid.UUID, in IngestInput) (*types.Photo, error) {
	upCtx, cancelUp := context.WithTimeout(ctx, is.uploadTimeout)
	key, url, err := is.upload.Upload(upCtx, ownerID, in.FileName, in.File)
	cancelUp()
	if err != nil {
		return nil, stageFail(StageUpload, err)
	}

	var caption *string
	if in.Caption != "" {
		caption = &in.Caption
	}

	regCtx, cancelReg := context.WithTimeout(ctx, is.registerTimeout)
	photo, err := is.registrar.RegisterPhoto(regCtx, nil, ownerID, key, url, caption)
	cancelReg()
	if err != nil {
		// The object is already in the bucket; surface its address so the
		// failure names the orphan.
		stageErr := stageFail(StageRegister, err)
		stageErr.ObjectURL = url
		return nil, stageErr
	}

	is.log.Info("ingestion pipeline completed", "photo_id", photo.ID, "owner_id", ownerID)
	return photo, nil
}
