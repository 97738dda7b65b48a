package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// UploadFile uploads reader to objectName in the export bucket.
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile removes an object.
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// PresignGet returns a GET link for objectName valid for expiry.
func PresignGet(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	u, err := Client.PresignedGetObject(ctx, BucketName, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return u.String(), nil
}

// Store adapts the package-level client to the object store used by services.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := UploadFile(ctx, objectName, reader, size, contentType)
	return err
}

func (s *Store) Remove(ctx context.Context, objectName string) error {
	return DeleteFile(ctx, objectName)
}

func (s *Store) PresignGet(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return PresignGet(ctx, objectName, expiry)
}
