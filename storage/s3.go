// Package storage uploads finished videos and their composition plans to S3.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"clipsmith/types"
)

// StoreConfig configures the artifact store. Empty values fall back to the
// standard AWS config/credential chain.
type StoreConfig struct {
	Bucket string
	// Region to use for requests, e.g. "us-east-1". If empty, AWS defaults apply.
	Region string
	// Prefix is prepended to every object key, e.g. "videos".
	Prefix string
	// UsePathStyle forces path-style addressing (useful for S3-compatible providers).
	UsePathStyle bool
}

// Store wraps the AWS SDK S3 client with the narrow surface the processor
// needs: upload a rendered video, upload its plan, and check for collisions.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewStore creates a Store using the default AWS configuration chain.
func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// UploadVideo uploads the rendered mp4 under <prefix>/<videoID>.mp4 and
// returns the object key.
func (s *Store) UploadVideo(ctx context.Context, videoID, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	key := s.key(videoID + ".mp4")
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}
	return key, nil
}

// UploadPlan uploads the composition plan as JSON next to the video, so a
// render can always be traced back to the decisions that produced it.
func (s *Store) UploadPlan(ctx context.Context, plan *types.CompositionPlan) (string, error) {
	raw, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode plan: %w", err)
	}

	key := s.key(plan.VideoID + ".plan.json")
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload plan: %w", err)
	}
	return key, nil
}

// Exists returns true if a video was already uploaded for videoID; false on
// 404/NotFound.
func (s *Store) Exists(ctx context.Context, videoID string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(videoID + ".mp4")),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, err
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}
