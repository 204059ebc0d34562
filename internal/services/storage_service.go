// internal/services/storage_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/draft"
)

type StorageService struct {
	cfg      *config.Config
	s3Client *s3.S3
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{cfg: cfg}

	if !cfg.AWS.UseLocalStorage {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWS.Region),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWS.AccessKeyID,
				cfg.AWS.SecretAccessKey,
				"",
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
	} else {
		if err := os.MkdirAll(cfg.AWS.LocalStorageDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create local storage dir: %w", err)
		}
		logrus.WithField("dir", cfg.AWS.LocalStorageDir).Info("Using local file storage")
	}

	return svc, nil
}

// UploadDocument vets and stores one attachment, returning a reference
// the draft layer can slot. Size and type limits match the slot rules so
// a stored file can never be rejected at snapshot time.
func (s *StorageService) UploadDocument(fileHeader *multipart.FileHeader, folder string) (*draft.FileRef, error) {
	if fileHeader.Size > draft.MaxDocumentSize {
		return nil, draft.ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !draft.AllowedMimeTypes[contentType] {
		return nil, draft.ErrUnsupportedMimeType
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	var url string
	if s.s3Client != nil {
		url, err = s.uploadToS3(file, key, contentType, fileHeader.Size)
	} else {
		url, err = s.uploadToLocal(file, key)
	}
	if err != nil {
		return nil, err
	}

	return &draft.FileRef{
		FileName: fileHeader.Filename,
		FileKey:  key,
		FileURL:  url,
		Size:     fileHeader.Size,
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToS3(file multipart.File, key, contentType string, size int64) (string, error) {
	buffer := make([]byte, size)
	if _, err := io.ReadFull(file, buffer); err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buffer),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key), nil
}

func (s *StorageService) uploadToLocal(file multipart.File, key string) (string, error) {
	destPath := filepath.Join(s.cfg.AWS.LocalStorageDir, key)
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", err
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		return "", err
	}

	return "/uploads/" + key, nil
}

// PresignedURL returns a temporary download link for an S3-stored file.
// Locally stored files are served statically and need no signing.
func (s *StorageService) PresignedURL(key string, expiry time.Duration) (string, error) {
	if s.s3Client == nil {
		return "/uploads/" + key, nil
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.cfg.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return url, nil
}

// DeleteDocument removes a stored file; used when a slot is replaced.
func (s *StorageService) DeleteDocument(key string) error {
	if key == "" {
		return errors.New("empty storage key")
	}

	if s.s3Client == nil {
		return os.Remove(filepath.Join(s.cfg.AWS.LocalStorageDir, key))
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	return err
}
