package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/puanla/receipt-ocr-service/internal/models"
)

// Store holds the object storage client for receipt images. Requests may
// reference an image either by HTTP URL or by object path inside the
// configured bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// New connects to the configured endpoint and verifies the bucket exists.
func New(cfg models.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// FetchImage downloads a receipt image by object path and returns its bytes
// with the stored content type. A leading "{bucket}/" prefix is accepted.
func (s *Store) FetchImage(ctx context.Context, objectPath string) ([]byte, string, error) {
	objectName := s.stripBucket(objectPath)

	stat, err := s.client.StatObject(ctx, s.bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat object %s: %w", objectName, err)
	}
	contentType := stat.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object %s: %w", objectName, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, "", fmt.Errorf("failed to read object %s: %w", objectName, err)
	}
	return buf.Bytes(), contentType, nil
}

// UploadReceiptImage stores an uploaded receipt image under a YYYY/MM path
// and returns the full object path including the bucket.
func (s *Store) UploadReceiptImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	now := time.Now()
	objectName := fmt.Sprintf("%d/%02d/%s", now.Year(), now.Month(), filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return fmt.Sprintf("%s/%s", s.bucket, objectName), nil
}

// DeleteImage removes a stored receipt image.
func (s *Store) DeleteImage(ctx context.Context, objectPath string) error {
	return s.client.RemoveObject(ctx, s.bucket, s.stripBucket(objectPath), minio.RemoveObjectOptions{})
}

func (s *Store) stripBucket(objectPath string) string {
	return strings.TrimPrefix(objectPath, s.bucket+"/")
}

// GetFileExtension maps a content type to a filename extension.
func GetFileExtension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
