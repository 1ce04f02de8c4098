package app

import (
	"time"

	"github.com/fotolog/fotolog-backend/internal/platform/envutil"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	MaxUploadBytes int64
	Environment    string
	Version        string
}

func LoadConfig(log *logger.Logger) Config {
	port := envutil.GetEnv("PORT", "8080", log)
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	maxUploadMB := envutil.GetEnvAsInt("MAX_UPLOAD_MB", 25, log)
	environment := envutil.GetEnv("APP_ENV", "development", log)
	version := envutil.GetEnv("APP_VERSION", "dev", log)
	return Config{
		Port:           port,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		MaxUploadBytes: int64(maxUploadMB) << 20,
		Environment:    environment,
		Version:        version,
	}
}
