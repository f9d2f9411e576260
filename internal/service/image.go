package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/config"
)

const maxImageBytes = 5 << 20

// ImageService stores user-uploaded images (profile pictures) in S3 and
// returns their public URLs.
type ImageService struct {
	s3Config *config.S3Config
	logger   *zap.Logger
}

func NewImageService(s3Config *config.S3Config, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{s3Config: s3Config, logger: logger}
}

// UploadProfilePicture reads the image (bounded) and uploads it under a
// fresh key in the profile-pictures prefix.
func (s *ImageService) UploadProfilePicture(ctx context.Context, userID uuid.UUID, r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("profile-pictures/%s/%s", userID, uuid.New())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	s.logger.Info("uploaded profile picture",
		zap.String("user_id", userID.String()),
		zap.String("url", url))
	return url, nil
}
