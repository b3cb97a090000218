package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"careconnect-api/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// FileStorage stores uploaded bytes and returns a public URL
type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader) (string, error)
}

type minioStorage struct {
	client *minio.Client
	cfg    config.MinioConfig
}

func NewMinioStorage(client *minio.Client, cfg config.MinioConfig) FileStorage {
	return &minioStorage{
		client: client,
		cfg:    cfg,
	}
}

func (s *minioStorage) Upload(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader) (string, error) {
	// Random object name keeps uploads from clobbering each other while
	// preserving the original extension
	objectName := uuid.New().String() + filepath.Ext(fileHeader.Filename)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store object %s: %w", objectName, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.cfg.PublicURL, s.cfg.Bucket, objectName), nil
}
