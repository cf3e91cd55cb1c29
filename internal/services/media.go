package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gizindir-panel/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 5 * time.Minute

// imageExtensions lists the accepted profile image content types
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// MediaService issues pre-signed uploads for profile images
type MediaService struct {
	presign  *s3.PresignClient
	bucket   string
	region   string
	endpoint string
	baseURL  string
}

// NewMediaService creates a media service from the AWS configuration
func NewMediaService(ctx context.Context, cfg config.AWSConfig) (*MediaService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// S3-compatible providers need a custom endpoint and path-style addressing
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &MediaService{
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.S3Bucket,
		region:   cfg.Region,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// UploadResponse holds a pre-signed upload and the resulting public URL
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignProfileImage generates a pre-signed PUT URL for a user's profile image
func (s *MediaService) PresignProfileImage(ctx context.Context, userID int64, contentType string) (*UploadResponse, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, invalid("content_type", "oneof=image/jpeg image/png image/webp")
	}

	key := fmt.Sprintf("profile-images/%d/%s.%s", userID, uuid.New().String(), ext)

	request, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		ImageURL:  s.objectURL(key),
		ExpiresIn: int(uploadURLTTL.Seconds()),
	}, nil
}

func (s *MediaService) objectURL(key string) string {
	switch {
	case s.baseURL != "":
		return s.baseURL + "/" + key
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}
