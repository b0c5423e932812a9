package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/alumnet/reunion/internal/config"
	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/mbeoliero/kit/log"
)

// MediaService uploads files to S3-compatible object storage
type MediaService struct {
	cfg      *config.StorageConfig
	client   *s3.Client
	uploader *manager.Uploader
}

// NewMediaService creates a new MediaService
func NewMediaService(cfg *config.Config) *MediaService {
	storage := &cfg.Storage

	s3Opts := []func(*s3.Options){}
	if storage.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(storage.Endpoint)
			o.UsePathStyle = storage.UsePathStyle
		})
	}

	awsCfg := aws.Config{
		Region: storage.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			storage.AccessKeyID,
			storage.SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &MediaService{
		cfg:      storage,
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

// UploadResult represents a completed upload
type UploadResult struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	PublicUrl string `json:"public_url"`
}

// Upload stores one file under the caller's prefix in the requested
// bucket. Keys are {userId}/{unixmilli}-{uuid}{ext} so uploads never
// collide and stay attributable.
func (s *MediaService) Upload(ctx context.Context, userId, bucket, filename, contentType string, body io.Reader) (*UploadResult, error) {
	if !constant.ValidBucket(bucket) {
		return nil, errcode.ErrBadBucket
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("%s/%d-%s%s", userId, entity.NowUnixMilli(), uuid.New().String(), ext)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.CtxError(ctx, "upload failed: bucket=%s, key=%s, err=%v", bucket, key, err)
		return nil, errcode.ErrUploadFailed
	}

	log.CtxInfo(ctx, "file uploaded: bucket=%s, key=%s", bucket, key)
	return &UploadResult{
		Bucket:    bucket,
		Key:       key,
		PublicUrl: s.PublicURL(bucket, key),
	}, nil
}

// Delete removes one object; used when admins delete content rows
func (s *MediaService) Delete(ctx context.Context, bucket, key string) error {
	if !constant.ValidBucket(bucket) {
		return errcode.ErrBadBucket
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.CtxWarn(ctx, "delete object failed: bucket=%s, key=%s, err=%v", bucket, key, err)
		return err
	}
	return nil
}

// PublicURL builds the browsable URL of an uploaded object
func (s *MediaService) PublicURL(bucket, key string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s", base, bucket, key)
}

// HealthCheck verifies the storage credentials can reach the endpoint
func (s *MediaService) HealthCheck(ctx context.Context) error {
	_, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
