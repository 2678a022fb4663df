// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/centremall/mall-backend/internal/apperrors"
	"github.com/centremall/mall-backend/internal/config"
)

// StorageService stores product images either on local disk or on S3 when
// AWS credentials are configured. Stored paths are returned as the public
// URLs served back in product payloads.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local disk storage for development
		if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
		return &StorageService{config: cfg}, nil
	}

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

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// SaveImages validates and stores up to MaxPerRequest image files, returning
// their public URLs in upload order.
func (s *StorageService) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > s.config.Uploads.MaxPerRequest {
		return nil, apperrors.InvalidInput(fmt.Sprintf("at most %d images per request", s.config.Uploads.MaxPerRequest))
	}

	maxSize := int64(s.config.Uploads.MaxFileSizeMB) * 1024 * 1024
	urls := make([]string, 0, len(files))

	for _, header := range files {
		if header.Size > maxSize {
			s.RemoveImages(urls)
			return nil, apperrors.InvalidInput(fmt.Sprintf("file %s exceeds the %dMB limit", header.Filename, s.config.Uploads.MaxFileSizeMB))
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !isAllowedImageExt(ext) {
			s.RemoveImages(urls)
			return nil, apperrors.InvalidInput(fmt.Sprintf("file type %s is not allowed", ext))
		}

		file, err := header.Open()
		if err != nil {
			s.RemoveImages(urls)
			return nil, apperrors.Internal("failed to open uploaded file", err)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			s.RemoveImages(urls)
			return nil, apperrors.Internal("failed to read uploaded file", err)
		}

		if !isImagePayload(data) {
			s.RemoveImages(urls)
			return nil, apperrors.InvalidInput(fmt.Sprintf("file %s is not a valid image", header.Filename))
		}

		filename := uuid.New().String() + ext

		var url string
		if s.s3Client != nil {
			url, err = s.uploadToS3(data, "products/"+filename, header.Header.Get("Content-Type"))
		} else {
			url, err = s.saveToDisk(data, filename)
		}
		if err != nil {
			s.RemoveImages(urls)
			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}

// RemoveImages deletes stored images by their public URLs. Failures are
// logged and skipped so a missing file never blocks the caller.
func (s *StorageService) RemoveImages(urls []string) {
	for _, url := range urls {
		if err := s.remove(url); err != nil {
			logrus.WithError(err).WithField("url", url).Warn("Failed to remove stored image")
		}
	}
}

func (s *StorageService) saveToDisk(data []byte, filename string) (string, error) {
	path := filepath.Join(s.config.Uploads.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.Internal("failed to write uploaded file", err)
	}
	return s.config.Uploads.PublicPrefix + "/" + filename, nil
}

func (s *StorageService) uploadToS3(data []byte, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", apperrors.Internal("failed to upload to S3", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key), nil
}

func (s *StorageService) remove(url string) error {
	if s.s3Client != nil {
		prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.config.AWS.S3Bucket, s.config.AWS.Region)
		key := strings.TrimPrefix(url, prefix)
		_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.config.AWS.S3Bucket),
			Key:    aws.String(key),
		})
		return err
	}

	filename := filepath.Base(url)
	path := filepath.Join(s.config.Uploads.Dir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func isAllowedImageExt(ext string) bool {
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// isImagePayload checks the sniffed content type rather than trusting the
// client-supplied extension.
func isImagePayload(data []byte) bool {
	return strings.HasPrefix(http.DetectContentType(data), "image/")
}
