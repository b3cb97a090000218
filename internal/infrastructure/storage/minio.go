package storage

import (
	"fmt"

	"careconnect-api/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

func NewMinioClient(cfg config.MinioConfig) (*minio.Client, error) {
	endpoint := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	logrus.Info("Successfully connected to MinIO")

	return client, nil
}
