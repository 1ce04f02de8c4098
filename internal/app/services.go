package app

import (
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/auth"
	"github.com/fotolog/fotolog-backend/internal/platform/gcs"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/services"
)

type Services struct {
	Provider  auth.Provider
	Bucket    gcs.BucketService
	Session   services.SessionService
	Provision services.ProvisionService
	Upload    services.UploadService
	Registrar services.RegistrarService
	Ingest    services.IngestService
	Audit     services.AuditService
	Account   services.AccountService
	User      services.UserService
	Photo     services.PhotoService
	Admin     services.AdminService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	bucket, err := gcs.NewBucketService(log)
	if err != nil {
		return Services{}, err
	}

	provider := auth.NewProvider(db, log, cfg.JWTSecretKey, cfg.AccessTokenTTL)

	session := services.NewSessionService(log, provider)
	provision := services.NewProvisionService(log, reposet.User)
	upload := services.NewUploadService(log, bucket)
	registrar := services.NewRegistrarService(log, reposet.Photo)
	ingest := services.NewIngestService(log, session, provision, upload, registrar)
	audit := services.NewAuditService(log, reposet.UserAction)
	account := services.NewAccountService(log, provider, reposet.User, audit)
	user := services.NewUserService(log, reposet.User, provider)
	photo := services.NewPhotoService(log, reposet.Photo, bucket)
	admin := services.NewAdminService(log, reposet.User, reposet.UserAction, photo, ingest)

	return Services{
		Provider:  provider,
		Bucket:    bucket,
		Session:   session,
		Provision: provision,
		Upload:    upload,
		Registrar: registrar,
		Ingest:    ingest,
		Audit:     audit,
		Account:   account,
		User:      user,
		Photo:     photo,
		Admin:     admin,
	}, nil
}
