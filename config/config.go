package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	MongoURI string `envconfig:"MONGODB_URI" required:"true"`
	DBName   string `envconfig:"MONGODB_DB" default:"biblo"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// JWTSecret signs every issued token; startup is fatal without it.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// S3 settings are optional; uploads are disabled when the bucket is unset.
	S3Bucket      string `envconfig:"AWS_S3_BUCKET"`
	S3Region      string `envconfig:"AWS_REGION" default:"us-east-1"`
	S3AccessKeyID string `envconfig:"AWS_ACCESS_KEY_ID"`
	S3SecretKey   string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	MaxUploadMB   int64  `envconfig:"MAX_UPLOAD_MB" default:"10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
